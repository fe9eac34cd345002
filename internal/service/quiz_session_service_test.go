package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/util"
	"quiz_app_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeUserDirectory struct {
	users map[string]*model.User
}

func (f *fakeUserDirectory) FindByID(id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeQuizCatalog struct {
	quizzes map[string]*model.Quiz
}

func (f *fakeQuizCatalog) FindByID(id string) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

type fakeQuestionCatalog struct {
	byQuiz map[string][]model.Question
}

func (f *fakeQuestionCatalog) FindForQuiz(quizID string) ([]model.Question, error) {
	return f.byQuiz[quizID], nil
}

type fakeAttemptLedger struct {
	attempts []*model.UserQuiz
	answers  []model.UserAnswer
}

func (f *fakeAttemptLedger) FindByCode(code string) (*model.UserQuiz, error) {
	for _, a := range f.attempts {
		if a.QuizCode == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptLedger) FindByUserQuizCode(userID, quizID, code string) (*model.UserQuiz, error) {
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.QuizCode == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptLedger) Create(uq *model.UserQuiz) error {
	for _, a := range f.attempts {
		if a.QuizCode == uq.QuizCode {
			return util.ErrCodeConflict
		}
	}
	if uq.ID == "" {
		uq.ID = model.GenerateUUID()
	}
	f.attempts = append(f.attempts, uq)
	return nil
}

func (f *fakeAttemptLedger) CommitSubmission(uq *model.UserQuiz, answers []model.UserAnswer) error {
	f.answers = append(f.answers, answers...)
	return nil
}

func (f *fakeAttemptLedger) AttemptsForUser(userID, quizID string) ([]model.UserQuiz, error) {
	var out []model.UserQuiz
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttemptLedger) AnswersForUserQuiz(userID, quizID string) ([]model.UserAnswer, error) {
	var out []model.UserAnswer
	for _, a := range f.attempts {
		if a.UserID != userID || a.QuizID != quizID {
			continue
		}
		for _, ua := range f.answers {
			if ua.UserQuizID == a.ID {
				out = append(out, ua)
			}
		}
	}
	return out, nil
}

func newTestService() (*QuizSessionService, *fakeAttemptLedger) {
	ledger := &fakeAttemptLedger{}
	svc := &QuizSessionService{
		Users: &fakeUserDirectory{users: map[string]*model.User{
			"u1": {UUIDBase: model.UUIDBase{ID: "u1"}, FirstName: "Alice", UserName: "alice", Email: "alice@example.com"},
		}},
		Quizzes: &fakeQuizCatalog{quizzes: map[string]*model.Quiz{
			"quiz-1": {UUIDBase: model.UUIDBase{ID: "quiz-1"}, Title: "Go Basics", Duration: 600, IsActive: true},
		}},
		Questions: &fakeQuestionCatalog{byQuiz: map[string][]model.Question{
			"quiz-1": {
				{
					UUIDBase:     model.UUIDBase{ID: "q1"},
					Content:      "Pick the right one",
					QuestionType: model.SingleChoice,
					Answers: []model.Answer{
						{UUIDBase: model.UUIDBase{ID: "a1"}, Content: "wrong"},
						{UUIDBase: model.UUIDBase{ID: "a2"}, Content: "right", IsCorrect: true},
					},
				},
				{
					UUIDBase:     model.UUIDBase{ID: "q2"},
					Content:      "True or false",
					QuestionType: model.TrueFalse,
					Answers: []model.Answer{
						{UUIDBase: model.UUIDBase{ID: "a3"}, Content: "true", IsCorrect: true},
						{UUIDBase: model.UUIDBase{ID: "a4"}, Content: "false"},
					},
				},
				{
					UUIDBase:     model.UUIDBase{ID: "q3"},
					Content:      "Another one",
					QuestionType: model.SingleChoice,
					Answers: []model.Answer{
						{UUIDBase: model.UUIDBase{ID: "a5"}, Content: "nope"},
						{UUIDBase: model.UUIDBase{ID: "a6"}, Content: "yes", IsCorrect: true},
					},
				},
			},
		}},
		Attempts: ledger,
		now:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, ledger
}

func TestPrepareFreshMintsCode(t *testing.T) {
	svc, ledger := newTestService()

	info, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if info.QuizCode == "" {
		t.Fatal("expected a freshly minted quiz code")
	}
	if info.Resumed {
		t.Fatal("fresh prepare must not be marked resumed")
	}
	if info.ID != "quiz-1" || info.Title != "Go Basics" {
		t.Fatalf("unexpected quiz info: %+v", info)
	}
	if len(ledger.attempts) != 1 {
		t.Fatalf("expected 1 attempt persisted, got %d", len(ledger.attempts))
	}
	if ledger.attempts[0].StartedAt == nil {
		t.Fatal("expected startedAt to be stamped")
	}
}

func TestPrepareResumesByCode(t *testing.T) {
	svc, ledger := newTestService()

	first, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	// 带码恢复时传入的 quizId 被忽略，以码上的记录为准
	second, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-other", QuizCode: first.QuizCode})
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if !second.Resumed {
		t.Fatal("expected resumed attempt")
	}
	if second.QuizCode != first.QuizCode {
		t.Fatalf("resume must keep the same code: %s vs %s", second.QuizCode, first.QuizCode)
	}
	if second.ID != "quiz-1" {
		t.Fatalf("resume must return the quiz bound to the code, got %s", second.ID)
	}
	if len(ledger.attempts) != 1 {
		t.Fatalf("resume must not create a second attempt, got %d", len(ledger.attempts))
	}
}

func TestPrepareUnknownCodeStartsFresh(t *testing.T) {
	svc, ledger := newTestService()

	info, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1", QuizCode: "no-such-code"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if info.Resumed {
		t.Fatal("unknown code must fall through to a fresh attempt")
	}
	if info.QuizCode == "no-such-code" {
		t.Fatal("fresh attempt must mint its own code, not adopt the supplied one")
	}
	if len(ledger.attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(ledger.attempts))
	}
}

func TestPrepareRequiresQuizIDForFreshAttempt(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Prepare(PrepareQuizRequest{UserID: "u1"})
	if !errors.Is(err, util.ErrQuizIDRequired) {
		t.Fatalf("expected ErrQuizIDRequired, got %v", err)
	}
}

func TestPrepareUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Prepare(PrepareQuizRequest{UserID: "ghost", QuizID: "quiz-1"})
	if !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPrepareUnknownQuiz(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "nope"})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestPrepareCodeConflictFallsBackToResume(t *testing.T) {
	svc, ledger := newTestService()

	// 预置一条占用任意码的记录，并让 Create 永远冲突来模拟并发写入
	ledger.attempts = append(ledger.attempts, &model.UserQuiz{
		UUIDBase: model.UUIDBase{ID: "att-1"},
		UserID:   "u1", QuizID: "quiz-1", QuizCode: "taken",
	})
	conflicting := &conflictLedger{inner: ledger}
	svc.Attempts = conflicting

	info, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if err != nil {
		t.Fatalf("prepare should recover from a code conflict: %v", err)
	}
	if !info.Resumed {
		t.Fatal("conflict fallback must resume the existing attempt")
	}
	if info.QuizCode != "taken" {
		t.Fatalf("expected the existing code, got %s", info.QuizCode)
	}
}

// conflictLedger 让 Create 必然撞码，FindByCode 总是命中已有记录
type conflictLedger struct {
	inner *fakeAttemptLedger
}

func (c *conflictLedger) FindByCode(code string) (*model.UserQuiz, error) {
	return c.inner.attempts[0], nil
}

func (c *conflictLedger) FindByUserQuizCode(userID, quizID, code string) (*model.UserQuiz, error) {
	return c.inner.FindByUserQuizCode(userID, quizID, code)
}

func (c *conflictLedger) Create(uq *model.UserQuiz) error {
	return util.ErrCodeConflict
}

func (c *conflictLedger) CommitSubmission(uq *model.UserQuiz, answers []model.UserAnswer) error {
	return c.inner.CommitSubmission(uq, answers)
}

func (c *conflictLedger) AnswersForUserQuiz(userID, quizID string) ([]model.UserAnswer, error) {
	return c.inner.AnswersForUserQuiz(userID, quizID)
}

func (c *conflictLedger) AttemptsForUser(userID, quizID string) ([]model.UserQuiz, error) {
	return c.inner.AttemptsForUser(userID, quizID)
}

func TestTakeStripsCorrectness(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	quiz, err := svc.Take(ctx, "u1", "quiz-1", info.QuizCode)
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if quiz.QuizCode != info.QuizCode {
		t.Fatalf("take must echo the attempt code, got %s", quiz.QuizCode)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if len(q.Answers) == 0 {
			t.Fatalf("question %s has no options", q.ID)
		}
		for _, a := range q.Answers {
			if a.ID == "" || a.Content == "" {
				t.Fatalf("option projection incomplete: %+v", a)
			}
		}
	}
}

func TestTakeUnknownAttempt(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Take(context.Background(), "u1", "quiz-1", "bad-code")
	if !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestTakeIsRepeatable(t *testing.T) {
	svc, ledger := newTestService()
	ctx := context.Background()

	info, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})

	for i := 0; i < 3; i++ {
		if _, err := svc.Take(ctx, "u1", "quiz-1", info.QuizCode); err != nil {
			t.Fatalf("take #%d failed: %v", i+1, err)
		}
	}
	if len(ledger.attempts) != 1 || len(ledger.answers) != 0 {
		t.Fatal("take must not write anything")
	}
}

func TestSubmitGradesPerQuestion(t *testing.T) {
	svc, ledger := newTestService()
	ctx := context.Background()

	info, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})

	ok, err := svc.Submit(ctx, QuizSubmission{
		UserID:   "u1",
		QuizID:   "quiz-1",
		QuizCode: info.QuizCode,
		UserAnswers: []AnswerSubmission{
			{QuestionID: "q1", AnswerID: "a2"}, // correct
			{QuestionID: "q2", AnswerID: "a4"}, // wrong
			// a6 是 q3 的正确选项，但归到 q1 名下不得分
			{QuestionID: "q1", AnswerID: "a6"},
		},
	})
	if err != nil || !ok {
		t.Fatalf("submit failed: ok=%v err=%v", ok, err)
	}

	if len(ledger.answers) != 3 {
		t.Fatalf("expected 3 answer rows, got %d", len(ledger.answers))
	}
	marks := []bool{ledger.answers[0].IsCorrect, ledger.answers[1].IsCorrect, ledger.answers[2].IsCorrect}
	want := []bool{true, false, false}
	for i := range want {
		if marks[i] != want[i] {
			t.Fatalf("answer %d: got %v, want %v", i, marks[i], want[i])
		}
	}
	if !ledger.attempts[0].Finished() {
		t.Fatal("submit must stamp finishedAt")
	}
}

func TestSubmitUnknownAttempt(t *testing.T) {
	svc, ledger := newTestService()

	ok, err := svc.Submit(context.Background(), QuizSubmission{
		UserID: "u1", QuizID: "quiz-1", QuizCode: "bad-code",
		UserAnswers: []AnswerSubmission{{QuestionID: "q1", AnswerID: "a2"}},
	})
	if ok || !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("expected (false, ErrAttemptNotFound), got (%v, %v)", ok, err)
	}
	if len(ledger.answers) != 0 {
		t.Fatal("failed submit must not persist answers")
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	svc, ledger := newTestService()
	ctx := context.Background()

	info, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	sub := QuizSubmission{
		UserID: "u1", QuizID: "quiz-1", QuizCode: info.QuizCode,
		UserAnswers: []AnswerSubmission{{QuestionID: "q1", AnswerID: "a2"}},
	}

	if ok, err := svc.Submit(ctx, sub); !ok || err != nil {
		t.Fatalf("first submit failed: ok=%v err=%v", ok, err)
	}

	ok, err := svc.Submit(ctx, sub)
	if ok || !errors.Is(err, util.ErrAttemptFinished) {
		t.Fatalf("expected (false, ErrAttemptFinished), got (%v, %v)", ok, err)
	}
	if len(ledger.answers) != 1 {
		t.Fatalf("re-submission must not add rows, got %d", len(ledger.answers))
	}
}

func TestGetResultFractionalScore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	_, err := svc.Submit(ctx, QuizSubmission{
		UserID: "u1", QuizID: "quiz-1", QuizCode: info.QuizCode,
		UserAnswers: []AnswerSubmission{
			{QuestionID: "q1", AnswerID: "a2"}, // correct
			{QuestionID: "q2", AnswerID: "a4"}, // wrong
			{QuestionID: "q3", AnswerID: "a5"}, // wrong
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result, err := svc.GetResult(ctx, "u1", "quiz-1")
	if err != nil {
		t.Fatalf("result failed: %v", err)
	}
	if result.CorrectAnswers != 1 || result.TotalQuestions != 3 {
		t.Fatalf("unexpected tallies: %+v", result)
	}
	want := 1.0 / 3.0
	if diff := result.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score must use float division: got %v, want %v", result.Score, want)
	}
}

func TestGetResultNoAttempts(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetResult(context.Background(), "u1", "quiz-1")
	if !errors.Is(err, util.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

func TestGetResultAggregatesAcrossAttempts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if _, err := svc.Submit(ctx, QuizSubmission{
		UserID: "u1", QuizID: "quiz-1", QuizCode: first.QuizCode,
		UserAnswers: []AnswerSubmission{{QuestionID: "q1", AnswerID: "a2"}},
	}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, _ := svc.Prepare(PrepareQuizRequest{UserID: "u1", QuizID: "quiz-1"})
	if _, err := svc.Submit(ctx, QuizSubmission{
		UserID: "u1", QuizID: "quiz-1", QuizCode: second.QuizCode,
		UserAnswers: []AnswerSubmission{{QuestionID: "q2", AnswerID: "a4"}},
	}); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	result, err := svc.GetResult(ctx, "u1", "quiz-1")
	if err != nil {
		t.Fatalf("result failed: %v", err)
	}
	if result.TotalQuestions != 2 || result.CorrectAnswers != 1 {
		t.Fatalf("expected aggregation over both attempts, got %+v", result)
	}
}
