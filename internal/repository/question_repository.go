package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Answers").First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *QuestionRepository) Search(keyword string, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{})
	if keyword != "" {
		query = query.Where("content LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Answers").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

// FindForQuiz 按关联表里的顺序取出某测验的全部题目（含选项）
func (r *QuestionRepository) FindForQuiz(quizID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Joins("JOIN quiz_questions ON quiz_questions.question_id = questions.id").
		Where("quiz_questions.quiz_id = ?", quizID).
		Order("quiz_questions.display_order").
		Preload("Answers").
		Find(&questions).Error
	return questions, err
}

// QuizIDsForQuestion 反查引用了该题目的测验，供缓存失效用
func (r *QuestionRepository) QuizIDsForQuestion(questionID string) ([]string, error) {
	var quizIDs []string
	err := r.DB.Model(&model.QuizQuestion{}).
		Where("question_id = ?", questionID).
		Pluck("quiz_id", &quizIDs).Error
	return quizIDs, err
}

// OrdersForQuiz 返回某测验 questionID -> 顺序 的映射
func (r *QuestionRepository) OrdersForQuiz(quizID string) (map[string]int, error) {
	var links []model.QuizQuestion
	if err := r.DB.Where("quiz_id = ?", quizID).Find(&links).Error; err != nil {
		return nil, err
	}
	orders := make(map[string]int, len(links))
	for _, l := range links {
		orders[l.QuestionID] = l.Order
	}
	return orders, nil
}
