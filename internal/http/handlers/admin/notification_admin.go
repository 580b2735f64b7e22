package admin

import (
	"github.com/laptopstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AnnouncePayload 站内公告请求
type AnnouncePayload struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Announce 向指定用户推送站内公告
func (h *Handler) Announce(c *gin.Context) {
	var req AnnouncePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.NotificationService.Announce(req.UserIDs, req.Title, req.Content); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	requestLog(c).Infow("admin_announcement_sent", "recipients", len(req.UserIDs))
	response.Success(c, gin.H{"sent": len(req.UserIDs)})
}
