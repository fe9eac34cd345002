package controller

import (
	"strconv"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service        *service.UserService
	StorageService *service.StorageService
}

func NewUserController(svc *service.UserService, storageSvc *service.StorageService) *UserController {
	return &UserController{Service: svc, StorageService: storageSvc}
}

// @Summary 搜索用户
// @Tags 用户模块
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	keyword := ctx.Query("q")

	users, total, err := c.Service.Search(keyword, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// @Summary 获取用户详情
// @Tags 用户模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.Service.GetUser(ctx.Param("id"))
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 更新用户
// @Tags 用户模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Param body body service.UserReq true "用户信息"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req service.UserReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.UpdateUser(ctx.Param("id"), req)
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 删除用户
// @Tags 用户模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteUser(id); err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// @Summary 修改密码
// @Tags 用户模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body changePasswordRequest true "新旧密码"
// @Success 200 {object} util.Response
// @Router /api/user/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req changePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, "password updated")
}

// @Summary 上传头像
// @Tags 用户模块
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

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
		"avatars",
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
