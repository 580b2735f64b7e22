package public

import (
	"strconv"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetNotifications 当前用户通知列表
func (h *Handler) GetNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	notifications, total, err := h.NotificationService.ListByUser(repository.NotificationListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     userID,
		UnreadOnly: c.Query("unread") == "1",
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
	response.SuccessWithPage(c, notifications, pagination)
}

// GetUnreadCount 未读通知数量
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	count, err := h.NotificationService.UnreadCount(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkNotificationRead 标记单条通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.NotificationService.MarkRead(uint(id), userID); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"read": true})
}

// MarkAllNotificationsRead 标记全部通知已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.NotificationService.MarkAllRead(userID); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"read": true})
}
