package service

import (
	"context"
	"errors"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo       *repository.QuestionRepository
	AnswerRepo *repository.AnswerRepository
	SessionSvc *QuizSessionService
}

func NewQuestionService(repo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, sessionSvc *QuizSessionService) *QuestionService {
	return &QuestionService{Repo: repo, AnswerRepo: answerRepo, SessionSvc: sessionSvc}
}

// invalidateQuizzes 题目变更后失效所有引用它的测验缓存
func (s *QuestionService) invalidateQuizzes(ctx context.Context, questionID string) {
	if s.SessionSvc == nil {
		return
	}
	quizIDs, err := s.Repo.QuizIDsForQuestion(questionID)
	if err != nil {
		return
	}
	for _, quizID := range quizIDs {
		s.SessionSvc.InvalidateQuiz(ctx, quizID)
	}
}

type AnswerReq struct {
	ID        string `json:"id"`
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	IsActive  bool   `json:"isActive"`
}

type QuestionReq struct {
	Content      *string             `json:"content"`
	QuestionType *model.QuestionType `json:"questionType"`
	IsActive     *bool               `json:"isActive"`
	Answers      *[]AnswerReq        `json:"answers"`
}

func (s *QuestionService) CreateQuestion(req QuestionReq) (*model.Question, error) {
	if req.Content == nil || *req.Content == "" {
		return nil, errors.New("content is required")
	}

	question := &model.Question{
		Content:      *req.Content,
		QuestionType: model.SingleChoice,
		IsActive:     true,
	}
	if req.QuestionType != nil {
		question.QuestionType = *req.QuestionType
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	if req.Answers != nil {
		for _, a := range *req.Answers {
			question.Answers = append(question.Answers, model.Answer{
				Content:   a.Content,
				IsCorrect: a.IsCorrect,
				IsActive:  a.IsActive,
			})
		}
	}

	if err := s.Repo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetQuestion(id string) (*model.Question, error) {
	question, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Search(keyword string, page, limit int) ([]model.Question, int64, error) {
	return s.Repo.Search(keyword, page, limit)
}

// UpdateQuestion 更新题干，选项集合做差量：带 id 的更新、不带 id 的新增、
// 缺席的删除
func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, req QuestionReq) (*model.Question, error) {
	question, err := s.GetQuestion(id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.QuestionType != nil {
		question.QuestionType = *req.QuestionType
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	existing := question.Answers
	question.Answers = nil
	if err := s.Repo.Update(question); err != nil {
		return nil, err
	}

	if req.Answers != nil {
		existingMap := make(map[string]*model.Answer, len(existing))
		for i := range existing {
			existingMap[existing[i].ID] = &existing[i]
		}

		seen := make(map[string]bool, len(*req.Answers))
		for _, aReq := range *req.Answers {
			if aReq.ID != "" {
				if current, ok := existingMap[aReq.ID]; ok {
					seen[aReq.ID] = true
					current.Content = aReq.Content
					current.IsCorrect = aReq.IsCorrect
					current.IsActive = aReq.IsActive
					if err := s.AnswerRepo.Update(current); err != nil {
						return nil, err
					}
					continue
				}
			}
			if err := s.AnswerRepo.Create(&model.Answer{
				Content:    aReq.Content,
				IsCorrect:  aReq.IsCorrect,
				IsActive:   aReq.IsActive,
				QuestionID: id,
			}); err != nil {
				return nil, err
			}
		}

		for answerID := range existingMap {
			if !seen[answerID] {
				if err := s.AnswerRepo.Delete(answerID); err != nil {
					return nil, err
				}
			}
		}
	}

	s.invalidateQuizzes(ctx, id)

	return s.GetQuestion(id)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := s.GetQuestion(id); err != nil {
		return err
	}
	s.invalidateQuizzes(ctx, id)
	return s.Repo.Delete(id)
}
