package public

import (
	"errors"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProfile 获取个人信息
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetProfile(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":         user.ID,
		"full_name":  user.FullName,
		"email":      user.Email,
		"phone":      user.Phone,
		"address":    user.Address,
		"avatar":     user.Avatar,
		"role":       user.Role,
		"status":     user.Status,
		"created_at": user.CreatedAt,
	})
}

// UpdateProfileRequest 更新个人信息请求
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Avatar   *string `json:"avatar"`
}

// UpdateProfile 更新个人信息
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.UpdateProfile(userID, service.UpdateProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, "error.invalid_phone", nil)
			return
		}
		respondAuthError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":        user.ID,
		"full_name": user.FullName,
		"phone":     user.Phone,
		"address":   user.Address,
		"avatar":    user.Avatar,
	})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.AuthService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			respondError(c, response.CodeBadRequest, "error.wrong_password", nil)
			return
		}
		respondAuthError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.password_updated"), gin.H{"updated": true})
}

// UploadAvatar 上传头像
func (h *Handler) UploadAvatar(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	path, err := h.UploadService.SaveFile(file, "avatar")
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			respondError(c, response.CodeBadRequest, "error.upload_too_large", nil)
		case errors.Is(err, service.ErrUploadInvalidType):
			respondError(c, response.CodeBadRequest, "error.upload_type", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"path": path})
}
