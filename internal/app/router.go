package app

import (
	"quiz_app_backend/docs"
	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/middleware"
	"quiz_app_backend/internal/model"
	"quiz_app_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerQuizTakingRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerQuizTakingRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/password", c.user.ChangePassword)
	rg.POST("/user/avatar", c.user.UploadAvatar)

	// 答题流程
	rg.POST("/quizzes/prepare", c.session.Prepare)
	rg.POST("/quizzes/take", c.session.Take)
	rg.POST("/quizzes/submit", c.session.Submit)
	rg.GET("/quizzes/:id/result", c.session.GetResult)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		// 编辑可维护题库与测验
		editor := admin.Group("/")
		editor.Use(middleware.RoleMiddleware(model.RoleAdmin, model.RoleEditor))
		{
			editor.POST("/quizzes", c.quiz.CreateQuiz)
			editor.GET("/quizzes", c.quiz.SearchQuizzes)
			editor.GET("/quizzes/:id", c.quiz.GetQuiz)
			editor.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			editor.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
			editor.GET("/quizzes/:id/questions", c.quiz.GetQuestions)
			editor.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
			editor.DELETE("/quizzes/:id/questions/:questionId", c.quiz.RemoveQuestion)
			editor.POST("/quizzes/:id/thumbnail", c.quiz.UploadThumbnail)
			editor.GET("/quizzes/:id/attempts", c.session.ListAttempts)

			editor.POST("/questions", c.question.CreateQuestion)
			editor.GET("/questions", c.question.SearchQuestions)
			editor.GET("/questions/:id", c.question.GetQuestion)
			editor.PUT("/questions/:id", c.question.UpdateQuestion)
			editor.DELETE("/questions/:id", c.question.DeleteQuestion)

			editor.POST("/questions/:id/answers", c.answer.CreateAnswer)
			editor.GET("/questions/:id/answers", c.answer.ListAnswers)
			editor.GET("/answers/:id", c.answer.GetAnswer)
			editor.PUT("/answers/:id", c.answer.UpdateAnswer)
			editor.DELETE("/answers/:id", c.answer.DeleteAnswer)
		}

		// 用户与角色管理仅限管理员
		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			// 管理端建号复用注册流程
			adminOnly.POST("/users", c.auth.Register)
			adminOnly.GET("/users", c.user.SearchUsers)
			adminOnly.GET("/users/:id", c.user.GetUser)
			adminOnly.PUT("/users/:id", c.user.UpdateUser)
			adminOnly.DELETE("/users/:id", c.user.DeleteUser)

			adminOnly.POST("/roles", c.role.CreateRole)
			adminOnly.GET("/roles", c.role.SearchRoles)
			adminOnly.GET("/roles/:id", c.role.GetRole)
			adminOnly.PUT("/roles/:id", c.role.UpdateRole)
			adminOnly.DELETE("/roles/:id", c.role.DeleteRole)
		}
	}
}
