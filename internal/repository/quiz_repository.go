package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// CreateWithQuestions 新建测验并一次性写入题目关联
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz, links []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].QuizID = quiz.ID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("QuizQuestions").First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) Search(keyword string, page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := r.DB.Model(&model.Quiz{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("QuizQuestions").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, total, err
}

// ReplaceQuestions 按新的题目集合对关联做差量更新，保留顺序字段
func (r *QuizRepository) ReplaceQuestions(quizID string, links []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing []model.QuizQuestion
		if err := tx.Where("quiz_id = ?", quizID).Find(&existing).Error; err != nil {
			return err
		}

		wanted := make(map[string]model.QuizQuestion, len(links))
		for _, l := range links {
			l.QuizID = quizID
			wanted[l.QuestionID] = l
		}

		current := make(map[string]bool, len(existing))
		for _, e := range existing {
			current[e.QuestionID] = true
			if _, keep := wanted[e.QuestionID]; !keep {
				if err := tx.Where("quiz_id = ? AND question_id = ?", quizID, e.QuestionID).
					Delete(&model.QuizQuestion{}).Error; err != nil {
					return err
				}
			}
		}

		for questionID, link := range wanted {
			if current[questionID] {
				if err := tx.Model(&model.QuizQuestion{}).
					Where("quiz_id = ? AND question_id = ?", quizID, questionID).
					Update("display_order", link.Order).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) AddQuestion(link *model.QuizQuestion) error {
	return r.DB.Create(link).Error
}

func (r *QuizRepository) RemoveQuestion(quizID, questionID string) error {
	result := r.DB.Where("quiz_id = ? AND question_id = ?", quizID, questionID).
		Delete(&model.QuizQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
