package controller

import (
	"errors"
	"strconv"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service        *service.QuizService
	StorageService *service.StorageService
}

func NewQuizController(svc *service.QuizService, storageSvc *service.StorageService) *QuizController {
	return &QuizController{Service: svc, StorageService: storageSvc}
}

// @Summary 创建测验
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary 搜索测验
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes [get]
func (c *QuizController) SearchQuizzes(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	quizzes, total, err := c.Service.Search(ctx.Query("q"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: page, Limit: limit})
}

// @Summary 获取测验详情
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.Service.GetQuiz(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 更新测验
// @Description 可同时调整题目列表与题目顺序
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.QuizReq true "测验信息"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 删除测验
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteQuiz(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type quizQuestionRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Order      int    `json:"order"`
}

// @Summary 向测验添加题目
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body quizQuestionRequest true "题目与顺序"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	var req quizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.AddQuestionToQuiz(ctx.Request.Context(), ctx.Param("id"), req.QuestionID, req.Order)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"added": req.QuestionID})
}

// @Summary 从测验移除题目
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/questions/{questionId} [delete]
func (c *QuizController) RemoveQuestion(ctx *gin.Context) {
	err := c.Service.RemoveQuestionFromQuiz(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": ctx.Param("questionId")})
}

// @Summary 获取测验题目
// @Description 按题目顺序返回，包含答案的正确性标记，仅限管理端
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, orders, err := c.Service.QuestionsForQuiz(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions, "orders": orders})
}

// @Summary 上传测验封面
// @Tags 测验模块
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param file formData file true "封面图片"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/thumbnail [post]
func (c *QuizController) UploadThumbnail(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadImage(
		ctx.Request.Context(),
		"thumbnails",
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	thumb := url
	quiz, err := c.Service.UpdateQuiz(ctx.Request.Context(), ctx.Param("id"), service.QuizReq{ThumbnailURL: &thumb})
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"thumbnailUrl": quiz.ThumbnailURL})
}
