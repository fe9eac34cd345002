package controller

import (
	"errors"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	Service *service.AnswerService
}

func NewAnswerController(svc *service.AnswerService) *AnswerController {
	return &AnswerController{Service: svc}
}

// @Summary 为题目新增答案
// @Tags 答案模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Param body body service.AnswerReq true "答案信息"
// @Success 201 {object} util.Response
// @Router /api/admin/questions/{id}/answers [post]
func (c *AnswerController) CreateAnswer(ctx *gin.Context) {
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.CreateAnswer(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// @Summary 获取题目答案列表
// @Tags 答案模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id}/answers [get]
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	answers, err := c.Service.ListByQuestion(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// @Summary 获取答案详情
// @Tags 答案模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答案ID"
// @Success 200 {object} util.Response
// @Router /api/admin/answers/{id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	answer, err := c.Service.GetAnswer(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAnswerNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 更新答案
// @Tags 答案模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答案ID"
// @Param body body service.AnswerReq true "答案信息"
// @Success 200 {object} util.Response
// @Router /api/admin/answers/{id} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.UpdateAnswer(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrAnswerNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 删除答案
// @Tags 答案模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答案ID"
// @Success 200 {object} util.Response
// @Router /api/admin/answers/{id} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteAnswer(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrAnswerNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
