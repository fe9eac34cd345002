package service

import (
	"context"
	"errors"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerService struct {
	Repo         *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	SessionSvc   *QuizSessionService
}

func NewAnswerService(repo *repository.AnswerRepository, questionRepo *repository.QuestionRepository, sessionSvc *QuizSessionService) *AnswerService {
	return &AnswerService{Repo: repo, QuestionRepo: questionRepo, SessionSvc: sessionSvc}
}

// invalidateQuizzes 选项变更会体现在取题投影里，失效相关测验缓存
func (s *AnswerService) invalidateQuizzes(ctx context.Context, questionID string) {
	if s.SessionSvc == nil {
		return
	}
	quizIDs, err := s.QuestionRepo.QuizIDsForQuestion(questionID)
	if err != nil {
		return
	}
	for _, quizID := range quizIDs {
		s.SessionSvc.InvalidateQuiz(ctx, quizID)
	}
}

func (s *AnswerService) CreateAnswer(ctx context.Context, questionID string, req AnswerReq) (*model.Answer, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &model.Answer{
		Content:    req.Content,
		IsCorrect:  req.IsCorrect,
		IsActive:   req.IsActive,
		QuestionID: questionID,
	}
	if err := s.Repo.Create(answer); err != nil {
		return nil, err
	}
	s.invalidateQuizzes(ctx, questionID)
	return answer, nil
}

func (s *AnswerService) GetAnswer(id string) (*model.Answer, error) {
	answer, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) ListByQuestion(questionID string) ([]model.Answer, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return s.Repo.FindByQuestion(questionID)
}

func (s *AnswerService) UpdateAnswer(ctx context.Context, id string, req AnswerReq) (*model.Answer, error) {
	answer, err := s.GetAnswer(id)
	if err != nil {
		return nil, err
	}

	answer.Content = req.Content
	answer.IsCorrect = req.IsCorrect
	answer.IsActive = req.IsActive

	if err := s.Repo.Update(answer); err != nil {
		return nil, err
	}
	s.invalidateQuizzes(ctx, answer.QuestionID)
	return answer, nil
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, id string) error {
	answer, err := s.GetAnswer(id)
	if err != nil {
		return err
	}
	s.invalidateQuizzes(ctx, answer.QuestionID)
	return s.Repo.Delete(id)
}
