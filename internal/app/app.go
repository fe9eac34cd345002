package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/controller"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/service"
	"quiz_app_backend/pkg/configwatcher"
	"quiz_app_backend/pkg/database"
	"quiz_app_backend/pkg/logger"
	"quiz_app_backend/pkg/monitoring"
	"quiz_app_backend/pkg/security"
	"quiz_app_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	role     *repository.RoleRepository
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	answer   *repository.AnswerRepository
	userQuiz *repository.UserQuizRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	user     *service.UserService
	role     *service.RoleService
	quiz     *service.QuizService
	question *service.QuestionService
	answer   *service.AnswerService
	session  *service.QuizSessionService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	role     *controller.RoleController
	quiz     *controller.QuizController
	question *controller.QuestionController
	answer   *controller.AnswerController
	session  *controller.QuizSessionController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		role:     repository.NewRoleRepository(db),
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		answer:   repository.NewAnswerRepository(db),
		userQuiz: repository.NewUserQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.role, cfg)
	s.user = service.NewUserService(repos.user, repos.role)
	s.role = service.NewRoleService(repos.role)
	s.session = service.NewQuizSessionService(repos.user, repos.quiz, repos.question, repos.userQuiz, rdb)
	s.quiz = service.NewQuizService(repos.quiz, repos.question, s.session)
	s.question = service.NewQuestionService(repos.question, repos.answer, s.session)
	s.answer = service.NewAnswerService(repos.answer, repos.question, s.session)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		user:     controller.NewUserController(s.user, s.storage),
		role:     controller.NewRoleController(s.role),
		quiz:     controller.NewQuizController(s.quiz, s.storage),
		question: controller.NewQuestionController(s.question),
		answer:   controller.NewAnswerController(s.answer),
		session:  controller.NewQuizSessionController(s.session),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration finished, exiting (migrate-only mode)")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：监听配置文件，变更后替换运行时配置
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		newCfg.ForceMigrate = cfg.ForceMigrate
		app.Config = newCfg
		logger.Log.Info("configuration reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
