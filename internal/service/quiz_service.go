package service

import (
	"context"
	"errors"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService 管理端的测验维护，答题流程本身在 QuizSessionService
type QuizService struct {
	Repo         *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	SessionSvc   *QuizSessionService
}

func NewQuizService(repo *repository.QuizRepository, questionRepo *repository.QuestionRepository, sessionSvc *QuizSessionService) *QuizService {
	return &QuizService{Repo: repo, QuestionRepo: questionRepo, SessionSvc: sessionSvc}
}

type QuestionOrderReq struct {
	QuestionID string `json:"questionId" binding:"required"`
	Order      int    `json:"order"`
}

type QuizReq struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Duration     *int                `json:"duration"`
	ThumbnailURL *string             `json:"thumbnailUrl"`
	IsActive     *bool               `json:"isActive"`
	Questions    *[]QuestionOrderReq `json:"questions"`
}

// QuizView 列表/详情用的投影，附带题目数
type QuizView struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Duration          int    `json:"duration"`
	ThumbnailURL      string `json:"thumbnailUrl"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	IsActive          bool   `json:"isActive"`
}

func toQuizView(q *model.Quiz) QuizView {
	return QuizView{
		ID:                q.ID,
		Title:             q.Title,
		Description:       q.Description,
		Duration:          q.Duration,
		ThumbnailURL:      q.ThumbnailURL,
		NumberOfQuestions: len(q.QuizQuestions),
		IsActive:          q.IsActive,
	}
}

func (s *QuizService) CreateQuiz(req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	quiz := &model.Quiz{Title: *req.Title, IsActive: true}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.ThumbnailURL != nil {
		quiz.ThumbnailURL = *req.ThumbnailURL
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	var links []model.QuizQuestion
	if req.Questions != nil {
		for _, q := range *req.Questions {
			links = append(links, model.QuizQuestion{QuestionID: q.QuestionID, Order: q.Order})
		}
	}

	if err := s.Repo.CreateWithQuestions(quiz, links); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuiz(id string) (*QuizView, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	view := toQuizView(quiz)
	return &view, nil
}

func (s *QuizService) Search(keyword string, page, limit int) ([]QuizView, int64, error) {
	quizzes, total, err := s.Repo.Search(keyword, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, toQuizView(&quizzes[i]))
	}
	return views, total, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.ThumbnailURL != nil {
		quiz.ThumbnailURL = *req.ThumbnailURL
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	// Save 会级联保存 QuizQuestions 关联，题目集合在下面单独做差量，
	// 这里先清掉避免重复写入
	quiz.QuizQuestions = nil
	if err := s.Repo.Update(quiz); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		links := make([]model.QuizQuestion, 0, len(*req.Questions))
		for _, q := range *req.Questions {
			links = append(links, model.QuizQuestion{QuizID: id, QuestionID: q.QuestionID, Order: q.Order})
		}
		if err := s.Repo.ReplaceQuestions(id, links); err != nil {
			return nil, err
		}
	}

	s.SessionSvc.InvalidateQuiz(ctx, id)
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := s.GetQuiz(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.SessionSvc.InvalidateQuiz(ctx, id)
	return nil
}

func (s *QuizService) AddQuestionToQuiz(ctx context.Context, quizID, questionID string, order int) error {
	if _, err := s.GetQuiz(quizID); err != nil {
		return err
	}
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}

	if err := s.Repo.AddQuestion(&model.QuizQuestion{
		QuizID:     quizID,
		QuestionID: questionID,
		Order:      order,
	}); err != nil {
		return err
	}

	s.SessionSvc.InvalidateQuiz(ctx, quizID)
	return nil
}

func (s *QuizService) RemoveQuestionFromQuiz(ctx context.Context, quizID, questionID string) error {
	if err := s.Repo.RemoveQuestion(quizID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	s.SessionSvc.InvalidateQuiz(ctx, quizID)
	return nil
}

// QuestionsForQuiz 管理端视角的测验题目列表，带顺序
func (s *QuizService) QuestionsForQuiz(quizID string) ([]model.Question, map[string]int, error) {
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, nil, err
	}
	questions, err := s.QuestionRepo.FindForQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.QuestionRepo.OrdersForQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	return questions, orders, nil
}
