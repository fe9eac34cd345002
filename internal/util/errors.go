package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUserNameRegistered = errors.New("该用户名已被注册")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrQuizIDRequired     = errors.New("quiz ID required to start a new attempt")
	ErrAttemptFinished    = errors.New("attempt already submitted")
	ErrResultNotFound     = errors.New("no submitted answers for this quiz")
	ErrCodeConflict       = errors.New("quiz code already taken")
)
