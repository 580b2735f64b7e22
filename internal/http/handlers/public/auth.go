package public

import (
	"errors"
	"strings"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	FullName       string                `json:"full_name" binding:"required"`
	Email          string                `json:"email" binding:"required"`
	Phone          string                `json:"phone"`
	Password       string                `json:"password" binding:"required"`
	Address        string                `json:"address"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.AuthService.Register(c.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
		Locale:   locale,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "message.register_success"), gin.H{
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"status":    user.Status,
		},
	})
}

// LoginRequest 登录请求（identifier 支持邮箱或手机号）
type LoginRequest struct {
	Identifier     string                `json:"identifier" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	RememberMe     bool                  `json:"remember_me"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	result, err := h.AuthService.Login(c.Request.Context(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user": gin.H{
			"id":        result.User.ID,
			"full_name": result.User.FullName,
			"email":     result.User.Email,
			"phone":     result.User.Phone,
			"role":      result.User.Role,
			"avatar":    result.User.Avatar,
		},
	})
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail 校验邮箱验证令牌并激活账号
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.AuthService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "message.email_verified"), gin.H{
		"user": gin.H{
			"id":     user.ID,
			"email":  user.Email,
			"status": user.Status,
		},
	})
}

// SetupAccountRequest 账号激活请求（员工首次设置密码）
type SetupAccountRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetupAccount 通过激活令牌设置密码
func (h *Handler) SetupAccount(c *gin.Context) {
	var req SetupAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	user, err := h.AuthService.SetupAccount(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "message.account_ready"), gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// ResendVerificationRequest 重发验证邮件请求
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendVerification 重发邮箱验证邮件
func (h *Handler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.AuthService.ResendVerification(c.Request.Context(), req.Email, locale); err != nil {
		respondAuthError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.verify_email_sent"), gin.H{"sent": true})
}

// CheckEmail 注册前校验邮箱是否可用
func (h *Handler) CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		return
	}
	available, err := h.AuthService.CheckEmailAvailable(email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"available": available})
}

// CheckPhone 注册前校验手机号是否可用
func (h *Handler) CheckPhone(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_phone", nil)
		return
	}
	available, err := h.AuthService.CheckPhoneAvailable(phone)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, "error.invalid_phone", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"available": available})
}

// GoogleAuthURL 获取 Google 登录跳转地址
func (h *Handler) GoogleAuthURL(c *gin.Context) {
	url, err := h.OAuthService.AuthURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrOAuthDisabled) {
			respondError(c, response.CodeBadRequest, "error.oauth_disabled", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// GoogleCallbackRequest Google 回调请求
type GoogleCallbackRequest struct {
	State string `json:"state"`
	Code  string `json:"code" binding:"required"`
}

// GoogleCallback 处理 Google 登录回调
func (h *Handler) GoogleCallback(c *gin.Context) {
	var req GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.OAuthService.HandleCallback(c.Request.Context(), req.State, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOAuthDisabled):
			respondError(c, response.CodeBadRequest, "error.oauth_disabled", nil)
		case errors.Is(err, service.ErrOAuthState):
			respondError(c, response.CodeBadRequest, "error.oauth_state", nil)
		case errors.Is(err, service.ErrOAuthExchange):
			respondError(c, response.CodeBadRequest, "error.oauth_state", err)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "error.account_inactive", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user": gin.H{
			"id":        result.User.ID,
			"full_name": result.User.FullName,
			"email":     result.User.Email,
			"role":      result.User.Role,
			"avatar":    result.User.Avatar,
		},
	})
}
