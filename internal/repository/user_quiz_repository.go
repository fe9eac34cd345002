package repository

import (
	"strings"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

// UserQuizRepository 答题台账：一条 UserQuiz 对应一次答题，
// quiz_code 上的唯一索引兜底并发建码。
type UserQuizRepository struct {
	DB *gorm.DB
}

func NewUserQuizRepository(db *gorm.DB) *UserQuizRepository {
	return &UserQuizRepository{DB: db}
}

func (r *UserQuizRepository) FindByCode(code string) (*model.UserQuiz, error) {
	var uq model.UserQuiz
	err := r.DB.Where("quiz_code = ?", code).First(&uq).Error
	if err != nil {
		return nil, err
	}
	return &uq, nil
}

func (r *UserQuizRepository) FindByUserQuizCode(userID, quizID, code string) (*model.UserQuiz, error) {
	var uq model.UserQuiz
	err := r.DB.Where("user_id = ? AND quiz_id = ? AND quiz_code = ?", userID, quizID, code).
		First(&uq).Error
	if err != nil {
		return nil, err
	}
	return &uq, nil
}

// Create 写入新答题记录，唯一索引冲突时返回 ErrCodeConflict，
// 调用方按"码已被占用"回退为查询
func (r *UserQuizRepository) Create(uq *model.UserQuiz) error {
	if err := r.DB.Create(uq).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return util.ErrCodeConflict
		}
		return err
	}
	return nil
}

// CommitSubmission 在一个事务里写交卷时间和全部作答记录，
// 避免出现"已交卷但没有答案"的中间状态
func (r *UserQuizRepository) CommitSubmission(uq *model.UserQuiz, answers []model.UserAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserQuiz{}).
			Where("id = ?", uq.ID).
			Update("finished_at", uq.FinishedAt).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AnswersForUserQuiz 取某考生在某测验下所有答题（跨 attempt）的作答记录
func (r *UserQuizRepository) AnswersForUserQuiz(userID, quizID string) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.
		Joins("JOIN user_quizzes ON user_quizzes.id = user_answers.user_quiz_id").
		Where("user_quizzes.user_id = ? AND user_quizzes.quiz_id = ?", userID, quizID).
		Find(&answers).Error
	return answers, err
}

// AttemptsForUser 某考生在某测验下的全部答题记录（管理端查看）
func (r *UserQuizRepository) AttemptsForUser(userID, quizID string) ([]model.UserQuiz, error) {
	var attempts []model.UserQuiz
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("started_at").
		Preload("UserAnswers").
		Find(&attempts).Error
	return attempts, err
}
