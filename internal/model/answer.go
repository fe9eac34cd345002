package model

// Answer 选项。IsCorrect 是判分的依据，答题接口一律通过投影 DTO 输出，
// 不允许把该字段序列化给考生。
// swagger:model Answer
type Answer struct {
	UUIDBase
	Content    string `gorm:"size:5000;not null" json:"content"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
	QuestionID string `gorm:"type:varchar(36);index;not null" json:"questionId"`
}

func (Answer) TableName() string {
	return "answers"
}
