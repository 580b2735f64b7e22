package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`                              // 优惠码
	Description    string         `gorm:"type:varchar(500)" json:"description"`                          // 描述
	Type           string         `gorm:"not null" json:"type"`                                          // 类型（fixed/percent）
	Value          Money          `gorm:"type:decimal(20,2);not null" json:"value"`                      // 数值（固定金额或百分比）
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // 使用门槛
	UsageLimit     int            `gorm:"not null;default:0" json:"usage_limit"`                         // 总使用上限（0 表示不限制）
	UsedCount      int            `gorm:"not null;default:0" json:"used_count"`                          // 已使用次数
	StartsAt       *time.Time     `gorm:"index" json:"starts_at"`                                        // 生效时间
	EndsAt         *time.Time     `gorm:"index" json:"ends_at"`                                          // 失效时间
	Status         string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`      // 状态（active/disabled）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
