package controller

import (
	"strconv"

	"quiz_app_backend/internal/service"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoleController struct {
	Service *service.RoleService
}

func NewRoleController(svc *service.RoleService) *RoleController {
	return &RoleController{Service: svc}
}

// @Summary 创建角色
// @Tags 角色模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RoleReq true "角色信息"
// @Success 201 {object} util.Response
// @Router /api/admin/roles [post]
func (c *RoleController) CreateRole(ctx *gin.Context) {
	var req service.RoleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.Service.CreateRole(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, role)
}

// @Summary 搜索角色
// @Tags 角色模块
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/roles [get]
func (c *RoleController) SearchRoles(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	roles, total, err := c.Service.Search(ctx.Query("q"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: roles, Total: total, Page: page, Limit: limit})
}

// @Summary 获取角色详情
// @Tags 角色模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Success 200 {object} util.Response
// @Router /api/admin/roles/{id} [get]
func (c *RoleController) GetRole(ctx *gin.Context) {
	role, err := c.Service.GetRole(ctx.Param("id"))
	if err != nil {
		if err == util.ErrRoleNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

// @Summary 更新角色
// @Tags 角色模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Param body body service.RoleReq true "角色信息"
// @Success 200 {object} util.Response
// @Router /api/admin/roles/{id} [put]
func (c *RoleController) UpdateRole(ctx *gin.Context) {
	var req service.RoleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.Service.UpdateRole(ctx.Param("id"), req)
	if err != nil {
		if err == util.ErrRoleNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

// @Summary 删除角色
// @Tags 角色模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Success 200 {object} util.Response
// @Router /api/admin/roles/{id} [delete]
func (c *RoleController) DeleteRole(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteRole(id); err != nil {
		if err == util.ErrRoleNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
