package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *AnswerRepository) FindByID(id string) (*model.Answer, error) {
	var answer model.Answer
	if err := r.DB.First(&answer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindByQuestion(questionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("question_id = ?", questionID).Order("created_at").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) Update(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

func (r *AnswerRepository) Delete(id string) error {
	return r.DB.Delete(&model.Answer{}, "id = ?", id).Error
}
