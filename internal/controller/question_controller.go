package controller

import (
	"errors"
	"strconv"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 创建题目
// @Description 可同时携带答案选项一并创建
// @Tags 题目模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionReq true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, question)
}

// @Summary 搜索题目
// @Tags 题目模块
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/questions [get]
func (c *QuestionController) SearchQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	questions, total, err := c.Service.Search(ctx.Query("q"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// @Summary 获取题目详情
// @Tags 题目模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	question, err := c.Service.GetQuestion(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 更新题目
// @Description 答案按 ID 对齐：带 ID 的更新，不带 ID 的新建，缺席的删除
// @Tags 题目模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Param body body service.QuestionReq true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除题目
// @Description 同时删除其答案及与测验的关联
// @Tags 题目模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
