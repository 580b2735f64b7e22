package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand 品牌表
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`  // 品牌名
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`        // 唯一标识
	Logo      string         `gorm:"type:varchar(500)" json:"logo"`           // 品牌 Logo 路径
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
