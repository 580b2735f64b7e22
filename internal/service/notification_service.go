package service

import (
	"strings"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// NotificationService 站内通知服务
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListByUser 用户通知列表
func (s *NotificationService) ListByUser(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.repo.ListByUser(filter)
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkRead 标记单条已读
func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.repo.MarkRead(id, userID)
}

// MarkAllRead 全部已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}

// Announce 向指定用户发公告类通知（后台工具）
func (s *NotificationService) Announce(userIDs []uint, title, content string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(userIDs) == 0 {
		return ErrInvalidParams
	}
	for _, userID := range userIDs {
		notification := &models.Notification{
			UserID:  userID,
			Title:   title,
			Content: strings.TrimSpace(content),
			Kind:    constants.NotificationKindAnnouncement,
		}
		if err := s.repo.Create(notification); err != nil {
			return err
		}
	}
	return nil
}
