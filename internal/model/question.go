package model

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillInBlank    QuestionType = "fill_in_blank"
	ShortAnswer    QuestionType = "short_answer"
	LongAnswer     QuestionType = "long_answer"
)

// IsChoice 仅选择类题目参与自动判分
func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MultipleChoice || t == TrueFalse
}

// swagger:model Question
type Question struct {
	UUIDBase
	Content      string       `gorm:"size:5000;not null" json:"content"`
	QuestionType QuestionType `gorm:"size:30;not null;default:'single_choice'" json:"questionType"`
	IsActive     bool         `gorm:"default:true" json:"isActive"`
	Answers      []Answer     `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
