package model

import "time"

// UserQuiz 一次答题（Attempt）。QuizCode 是恢复答题的幂等键，
// 唯一索引保证同一个码只会绑定一条记录。
// swagger:model UserQuiz
type UserQuiz struct {
	UUIDBase
	UserID      string       `gorm:"type:varchar(36);index:idx_user_quiz,priority:1;not null" json:"userId"`
	QuizID      string       `gorm:"type:varchar(36);index:idx_user_quiz,priority:2;not null" json:"quizId"`
	QuizCode    string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"quizCode"`
	StartedAt   *time.Time   `json:"startedAt"`
	FinishedAt  *time.Time   `json:"finishedAt"`
	UserAnswers []UserAnswer `gorm:"foreignKey:UserQuizID" json:"userAnswers,omitempty"`
}

func (UserQuiz) TableName() string {
	return "user_quizzes"
}

// Finished 判断该次答题是否已交卷
func (uq *UserQuiz) Finished() bool {
	return uq.FinishedAt != nil
}
