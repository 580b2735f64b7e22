package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（顾客与后台账号共用，通过 role 区分）
type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`                            // 主键
	FullName        string         `gorm:"type:varchar(100);not null" json:"full_name"`     // 姓名
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`               // 邮箱
	Phone           string         `gorm:"type:varchar(20);index" json:"phone"`             // 电话
	Password        string         `gorm:"type:varchar(200)" json:"-"`                      // 密码（bcrypt 哈希，历史数据可能是明文）
	Address         string         `gorm:"type:varchar(500)" json:"address"`                // 地址
	Avatar          string         `gorm:"type:varchar(500)" json:"avatar"`                 // 头像路径
	Role            string         `gorm:"type:varchar(20);default:'customer'" json:"role"` // 角色（customer/staff/admin）
	Status          string         `gorm:"type:varchar(20);default:'pending'" json:"status"` // 状态（active/inactive/pending）
	TokenVersion    uint64         `gorm:"not null;default:0" json:"-"`                     // Token 版本（用于全量失效）
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`                               // 邮箱验证时间
	LastLoginAt     *time.Time     `json:"last_login_at"`                                   // 最后登录时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                         // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
