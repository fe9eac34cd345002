package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/util"
	"quiz_app_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	quizForTestKeyPrefix = "quiz_for_test:"
	quizForTestCacheTTL  = 5 * time.Minute
)

// UserDirectory 答题流程只读取用户资料
type UserDirectory interface {
	FindByID(id string) (*model.User, error)
}

// QuizCatalog 测验元数据的只读入口
type QuizCatalog interface {
	FindByID(id string) (*model.Quiz, error)
}

// QuestionCatalog 按测验取题（含选项和标准答案），判分的 ground truth
type QuestionCatalog interface {
	FindForQuiz(quizID string) ([]model.Question, error)
}

// AttemptLedger 答题台账的读写入口
type AttemptLedger interface {
	FindByCode(code string) (*model.UserQuiz, error)
	FindByUserQuizCode(userID, quizID, code string) (*model.UserQuiz, error)
	Create(uq *model.UserQuiz) error
	CommitSubmission(uq *model.UserQuiz, answers []model.UserAnswer) error
	AnswersForUserQuiz(userID, quizID string) ([]model.UserAnswer, error)
	AttemptsForUser(userID, quizID string) ([]model.UserQuiz, error)
}

// QuizSessionService 答题流程：发码（Prepare）、取题（Take）、
// 交卷（Submit）、查分（GetResult）。服务本身无状态，
// 每次调用都是对存储的一轮读写。
type QuizSessionService struct {
	Users     UserDirectory
	Quizzes   QuizCatalog
	Questions QuestionCatalog
	Attempts  AttemptLedger
	Redis     *redis.Client

	now func() time.Time
}

func NewQuizSessionService(
	users UserDirectory,
	quizzes QuizCatalog,
	questions QuestionCatalog,
	attempts AttemptLedger,
	rdb *redis.Client,
) *QuizSessionService {
	return &QuizSessionService{
		Users:     users,
		Quizzes:   quizzes,
		Questions: questions,
		Attempts:  attempts,
		Redis:     rdb,
		now:       time.Now,
	}
}

type PrepareQuizRequest struct {
	UserID   string `json:"userId" binding:"required"`
	QuizID   string `json:"quizId"`
	QuizCode string `json:"quizCode"`
}

type UserInfo struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	UserName    string `json:"userName"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar"`
}

type QuizPrepareInfo struct {
	ID           string   `json:"id"`
	QuizCode     string   `json:"quizCode"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Resumed      bool     `json:"resumed"`
	User         UserInfo `json:"user"`
}

type AnswerForTest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type QuestionForTest struct {
	ID      string          `json:"id"`
	Content string          `json:"content"`
	Answers []AnswerForTest `json:"answers"`
}

type QuizForTest struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	QuizCode    string            `json:"quizCode"`
	Duration    int               `json:"duration"`
	Questions   []QuestionForTest `json:"questions"`
}

type QuizSubmission struct {
	UserID      string             `json:"userId" binding:"required"`
	QuizID      string             `json:"quizId" binding:"required"`
	QuizCode    string             `json:"quizCode" binding:"required"`
	UserAnswers []AnswerSubmission `json:"userAnswers" binding:"required"`
}

type QuizResult struct {
	QuizID         string  `json:"quizId"`
	UserID         string  `json:"userId"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	Score          float64 `json:"score"`
}

// Prepare 发码或恢复答题。带码且码存在 → 恢复原 attempt（忽略传入的 quizId）；
// 否则按 quizId 新开一次答题并发放新码。码是恢复的幂等键。
func (s *QuizSessionService) Prepare(req PrepareQuizRequest) (*QuizPrepareInfo, error) {
	user, err := s.Users.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.QuizCode != "" {
		existing, err := s.Attempts.FindByCode(req.QuizCode)
		if err == nil {
			return s.buildPrepareInfo(existing.QuizID, existing.QuizCode, true, user)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// 码不存在：落到新开流程
	}

	if req.QuizID == "" {
		return nil, util.ErrQuizIDRequired
	}

	quiz, err := s.Quizzes.FindByID(req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	code := model.GenerateUUID()
	startedAt := s.now()
	attempt := &model.UserQuiz{
		UserID:    user.ID,
		QuizID:    quiz.ID,
		QuizCode:  code,
		StartedAt: &startedAt,
	}

	if err := s.Attempts.Create(attempt); err != nil {
		if errors.Is(err, util.ErrCodeConflict) {
			// 唯一索引兜底：码已被并发写入，回退为恢复
			existing, lookupErr := s.Attempts.FindByCode(code)
			if lookupErr != nil {
				return nil, err
			}
			return s.buildPrepareInfo(existing.QuizID, existing.QuizCode, true, user)
		}
		return nil, err
	}

	logger.Log.Info("quiz attempt prepared",
		zap.String("userId", user.ID),
		zap.String("quizId", quiz.ID),
		zap.String("quizCode", code),
	)

	return &QuizPrepareInfo{
		ID:           quiz.ID,
		QuizCode:     code,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Duration:     quiz.Duration,
		ThumbnailURL: quiz.ThumbnailURL,
		User:         toUserInfo(user),
	}, nil
}

func (s *QuizSessionService) buildPrepareInfo(quizID, code string, resumed bool, user *model.User) (*QuizPrepareInfo, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return &QuizPrepareInfo{
		ID:           quiz.ID,
		QuizCode:     code,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Duration:     quiz.Duration,
		ThumbnailURL: quiz.ThumbnailURL,
		Resumed:      resumed,
		User:         toUserInfo(user),
	}, nil
}

// Take 取题。必须先 Prepare 出对应 (userId, quizId, quizCode) 的 attempt，
// 返回的投影只含题目和选项的 id/content，永远不带 isCorrect。
// 无副作用，可重复调用（刷新页面）。
func (s *QuizSessionService) Take(ctx context.Context, userID, quizID, quizCode string) (*QuizForTest, error) {
	attempt, err := s.Attempts.FindByUserQuizCode(userID, quizID, quizCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := s.questionsForTest(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuizNotFound
	}

	return &QuizForTest{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		QuizCode:    attempt.QuizCode,
		Duration:    quiz.Duration,
		Questions:   questions,
	}, nil
}

// questionsForTest 构建去答案投影，Redis 缓存按测验维度共享，
// 题库变更时由管理端失效
func (s *QuizSessionService) questionsForTest(ctx context.Context, quizID string) ([]QuestionForTest, error) {
	cacheKey := quizForTestKeyPrefix + quizID

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []QuestionForTest
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("quiz cache read failed", zap.Error(err))
		}
	}

	raw, err := s.Questions.FindForQuiz(quizID)
	if err != nil {
		return nil, err
	}

	questions := make([]QuestionForTest, 0, len(raw))
	for _, q := range raw {
		answers := make([]AnswerForTest, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, AnswerForTest{ID: a.ID, Content: a.Content})
		}
		questions = append(questions, QuestionForTest{
			ID:      q.ID,
			Content: q.Content,
			Answers: answers,
		})
	}

	if s.Redis != nil && len(questions) > 0 {
		if data, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, quizForTestCacheTTL).Err(); err != nil {
				logger.Log.Warn("quiz cache write failed", zap.Error(err))
			}
		}
	}

	return questions, nil
}

// InvalidateQuiz 题目或测验变更后清掉取题缓存
func (s *QuizSessionService) InvalidateQuiz(ctx context.Context, quizID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, quizForTestKeyPrefix+quizID).Err(); err != nil {
		logger.Log.Warn("quiz cache invalidation failed", zap.Error(err))
	}
}

// Submit 交卷。attempt 必须存在且未交过卷；交卷时间和全部作答
// 在一个事务里落库，判分按提交时的标准答案快照。
func (s *QuizSessionService) Submit(ctx context.Context, sub QuizSubmission) (bool, error) {
	attempt, err := s.Attempts.FindByUserQuizCode(sub.UserID, sub.QuizID, sub.QuizCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrAttemptNotFound
		}
		return false, err
	}

	if attempt.Finished() {
		return false, util.ErrAttemptFinished
	}

	questions, err := s.Questions.FindForQuiz(sub.QuizID)
	if err != nil {
		return false, err
	}

	marks := GradeSubmission(sub.UserAnswers, CorrectAnswerSets(questions))

	answers := make([]model.UserAnswer, 0, len(sub.UserAnswers))
	for i, ua := range sub.UserAnswers {
		answers = append(answers, model.UserAnswer{
			UserQuizID: attempt.ID,
			QuestionID: ua.QuestionID,
			AnswerID:   ua.AnswerID,
			IsCorrect:  marks[i],
		})
	}

	finishedAt := s.now()
	attempt.FinishedAt = &finishedAt

	if err := s.Attempts.CommitSubmission(attempt, answers); err != nil {
		logger.Log.Error("quiz submission failed",
			zap.String("quizCode", sub.QuizCode),
			zap.Error(err),
		)
		return false, err
	}

	logger.Log.Info("quiz submitted",
		zap.String("userId", sub.UserID),
		zap.String("quizId", sub.QuizID),
		zap.String("quizCode", sub.QuizCode),
		zap.Int("answers", len(answers)),
	)

	return true, nil
}

// GetResult 汇总某考生在某测验下全部作答记录的得分，
// 跨 attempt 聚合，与原始口径一致
func (s *QuizSessionService) GetResult(ctx context.Context, userID, quizID string) (*QuizResult, error) {
	answers, err := s.Attempts.AnswersForUserQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, util.ErrResultNotFound
	}

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	return &QuizResult{
		QuizID:         quizID,
		UserID:         userID,
		CorrectAnswers: correct,
		TotalQuestions: len(answers),
		Score:          ComputeScore(correct, len(answers)),
	}, nil
}

// ListAttempts 某考生在某测验下的全部答题记录，供管理端核查
func (s *QuizSessionService) ListAttempts(userID, quizID string) ([]model.UserQuiz, error) {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.Attempts.AttemptsForUser(userID, quizID)
}

func toUserInfo(u *model.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		DisplayName: u.DisplayName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		UserName:    u.UserName,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
	}
}
