package controller

import (
	"errors"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"
	"quiz_app_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// QuizSessionController 答题流程接口：准备、答题、交卷、成绩
type QuizSessionController struct {
	Service *service.QuizSessionService
}

func NewQuizSessionController(svc *service.QuizSessionService) *QuizSessionController {
	return &QuizSessionController{Service: svc}
}

// @Summary 准备答题
// @Description 带 quizCode 恢复已有答题，否则按 quizId 新开一次并发放答题码
// @Tags 答题模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PrepareQuizRequest true "准备请求"
// @Success 200 {object} util.Response
// @Router /api/quizzes/prepare [post]
func (c *QuizSessionController) Prepare(ctx *gin.Context) {
	var req service.PrepareQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	info, err := c.Service.Prepare(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFoundMessage(ctx, err.Error())
		case errors.Is(err, util.ErrQuizIDRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if info.Resumed {
		monitoring.AttemptCounter.WithLabelValues("resumed").Inc()
	} else {
		monitoring.AttemptCounter.WithLabelValues("prepared").Inc()
	}

	util.Success(ctx, info)
}

type takeQuizRequest struct {
	UserID   string `json:"userId" binding:"required"`
	QuizID   string `json:"quizId" binding:"required"`
	QuizCode string `json:"quizCode" binding:"required"`
}

// @Summary 获取试卷
// @Description 校验答题码后返回试卷内容，答案不携带正确性标记
// @Tags 答题模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body takeQuizRequest true "答题请求"
// @Success 200 {object} util.Response
// @Router /api/quizzes/take [post]
func (c *QuizSessionController) Take(ctx *gin.Context) {
	var req takeQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.Take(ctx.Request.Context(), req.UserID, req.QuizID, req.QuizCode)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 交卷
// @Description 批改本次提交并结束答题，已交卷的答题不允许重复提交
// @Tags 答题模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "作答内容"
// @Success 200 {object} util.Response
// @Router /api/quizzes/submit [post]
func (c *QuizSessionController) Submit(ctx *gin.Context) {
	var sub service.QuizSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ok, err := c.Service.Submit(ctx.Request.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFoundMessage(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptFinished):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AttemptCounter.WithLabelValues("submitted").Inc()
	util.Success(ctx, gin.H{"submitted": ok})
}

// @Summary 查询成绩
// @Description 汇总用户在该测验所有答题的成绩
// @Tags 答题模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param userId query string false "用户ID，缺省为当前用户"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/result [get]
func (c *QuizSessionController) GetResult(ctx *gin.Context) {
	userID := ctx.Query("userId")
	if userID == "" {
		claims := util.GetUserFromContext(ctx)
		if claims == nil {
			util.Unauthorized(ctx)
			return
		}
		userID = claims.UserID
	}

	result, err := c.Service.GetResult(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFoundMessage(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 查看考生答题记录
// @Description 管理端核查某考生在该测验下的全部答题（含作答明细）
// @Tags 答题模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param userId query string true "考生ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/attempts [get]
func (c *QuizSessionController) ListAttempts(ctx *gin.Context) {
	userID := ctx.Query("userId")
	if userID == "" {
		util.BadRequest(ctx, "userId is required")
		return
	}

	attempts, err := c.Service.ListAttempts(userID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFoundMessage(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
