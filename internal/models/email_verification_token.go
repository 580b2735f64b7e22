package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailVerificationToken 邮箱验证令牌（验证邮箱 / 激活后台创建的账号）
type EmailVerificationToken struct {
	ID        uint           `gorm:"primarykey" json:"id"`                 // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`        // 用户ID
	Token     string         `gorm:"uniqueIndex;not null" json:"-"`        // 令牌（UUID，不返回给前端）
	Purpose   string         `gorm:"index;not null" json:"purpose"`        // 用途（verify_email/setup_account）
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`              // 过期时间
	UsedAt    *time.Time     `gorm:"index" json:"used_at"`                 // 使用时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}

// Usable 令牌是否仍可使用
func (t *EmailVerificationToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
