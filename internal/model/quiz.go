package model

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"size:2000" json:"description"`
	Duration      int            `gorm:"not null" json:"duration"` // 时长（秒），仅供前端展示，服务端不强制
	ThumbnailURL  string         `gorm:"size:500" json:"thumbnailUrl"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	QuizQuestions []QuizQuestion `gorm:"foreignKey:QuizID" json:"quizQuestions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion 测验与题目的多对多关联，携带题目顺序
type QuizQuestion struct {
	QuizID     string    `gorm:"primaryKey;type:varchar(36)" json:"quizId"`
	QuestionID string    `gorm:"primaryKey;type:varchar(36)" json:"questionId"`
	Order      int       `gorm:"column:display_order;not null;default:0" json:"order"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
