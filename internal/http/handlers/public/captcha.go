package public

import (
	handlershared "github.com/laptopstore-next/internal/http/handlers/shared"
	"github.com/laptopstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaPayloadRequest 验证码请求载荷。
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest

// GetCaptcha 生成图片验证码挑战
func (h *Handler) GetCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":    true,
		"captcha_id": challenge.CaptchaID,
		"image":      challenge.ImageBase64,
	})
}
