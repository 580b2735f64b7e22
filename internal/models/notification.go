package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 站内通知
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`           // 接收用户ID
	Title     string         `gorm:"type:varchar(200);not null" json:"title"` // 标题
	Content   string         `gorm:"type:text" json:"content"`                // 内容
	Kind      string         `gorm:"type:varchar(50);index" json:"kind"`      // 通知类型
	ReadAt    *time.Time     `gorm:"index" json:"read_at"`                    // 已读时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
