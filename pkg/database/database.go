package database

import (
	"fmt"
	"log"
	"time"

	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizQuestion{},
		&model.UserQuiz{},
		&model.UserAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults 初始化默认角色、管理员账号和一份示例测验
func seedDefaults(db *gorm.DB) {
	var roleCount int64
	db.Model(&model.Role{}).Count(&roleCount)
	if roleCount == 0 {
		defaultRoles := []model.Role{
			{Name: model.RoleAdmin, Description: "系统管理员，拥有全部权限", IsActive: true},
			{Name: model.RoleEditor, Description: "题库编辑，可维护测验与题目", IsActive: true},
			{Name: model.RoleUser, Description: "普通考生", IsActive: true},
		}
		for _, r := range defaultRoles {
			db.Create(&r)
		}
	}

	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin@123456"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to seed admin user: %v", err)
			return
		}
		var adminRole model.Role
		if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
			log.Printf("failed to load admin role: %v", err)
			return
		}
		admin := model.User{
			FirstName:   "System",
			LastName:    "Admin",
			UserName:    "admin",
			Email:       "admin@quizapp.local",
			Password:    string(hashed),
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:    true,
			Roles:       []model.Role{adminRole},
		}
		db.Create(&admin)
	}

	var quizCount int64
	db.Model(&model.Quiz{}).Count(&quizCount)
	if quizCount == 0 {
		question := model.Question{
			Content:      "Go 语言中哪个关键字用于启动一个新的 goroutine？",
			QuestionType: model.SingleChoice,
			IsActive:     true,
			Answers: []model.Answer{
				{Content: "go", IsCorrect: true, IsActive: true},
				{Content: "run", IsActive: true},
				{Content: "spawn", IsActive: true},
				{Content: "thread", IsActive: true},
			},
		}
		if err := db.Create(&question).Error; err != nil {
			log.Printf("failed to seed sample question: %v", err)
			return
		}
		quiz := model.Quiz{
			Title:       "Go 基础示例测验",
			Description: "系统自带的示例测验，可在管理后台删除",
			Duration:    600,
			IsActive:    true,
		}
		if err := db.Create(&quiz).Error; err != nil {
			log.Printf("failed to seed sample quiz: %v", err)
			return
		}
		db.Create(&model.QuizQuestion{QuizID: quiz.ID, QuestionID: question.ID, Order: 1})
	}
}
