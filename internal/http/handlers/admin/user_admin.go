package admin

import (
	"strconv"
	"strings"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
	"github.com/laptopstore-next/internal/repository"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUsers 后台用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, users, pagination)
}

// GetUser 后台用户详情
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// CreateUserPayload 后台创建用户请求
type CreateUserPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// CreateUser 后台创建用户（激活邮件由本人设置密码）
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.Create(c.Request.Context(), service.AdminCreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
		Locale:   i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_user_created", "user_id", user.ID, "role", user.Role)
	response.Success(c, user)
}

// UpdateUserRole 调整用户角色
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.UpdateRole(c.Request.Context(), uint(id), req.Role)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_user_role_updated", "user_id", user.ID, "role", user.Role)
	response.Success(c, user)
}

// SetUserStatus 启用/停用用户
func (h *Handler) SetUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.SetStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_user_status_updated", "user_id", user.ID, "status", user.Status)
	response.Success(c, user)
}

// BatchSetUserStatus 批量启用/停用用户
func (h *Handler) BatchSetUserStatus(c *gin.Context) {
	var req struct {
		IDs    []uint `json:"ids" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserService.BatchSetStatus(c.Request.Context(), req.IDs, req.Status); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_users_status_batch_updated", "count", len(req.IDs), "status", req.Status)
	response.Success(c, gin.H{"updated": len(req.IDs)})
}

// ResendSetupEmail 重发账号激活邮件
func (h *Handler) ResendSetupEmail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.UserService.ResendSetupEmail(c.Request.Context(), uint(id), i18n.ResolveLocale(c)); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// ResetUserPassword 触发用户密码重置，强制旧会话下线
func (h *Handler) ResetUserPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), uint(id), i18n.ResolveLocale(c)); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_user_password_reset", "user_id", id)
	response.Success(c, gin.H{"sent": true})
}
