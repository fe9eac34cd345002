package model

// UserAnswer 考生提交的单条作答记录。IsCorrect 在交卷时按当时的标准答案
// 快照写入，之后题库修改不影响历史成绩。
// swagger:model UserAnswer
type UserAnswer struct {
	UUIDBase
	UserQuizID string `gorm:"type:varchar(36);index;not null" json:"userQuizId"`
	QuestionID string `gorm:"type:varchar(36);not null" json:"questionId"`
	AnswerID   string `gorm:"type:varchar(36);not null" json:"answerId"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
