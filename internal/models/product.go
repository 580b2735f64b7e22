package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Name           string         `gorm:"type:varchar(200);not null;index" json:"name"`                // 商品名
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                            // 唯一标识
	Description    string         `gorm:"type:text" json:"description"`                                // 商品描述
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 售价
	OriginalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 划线价
	StockQuantity  *int           `json:"stock_quantity"`                                              // 库存（NULL 表示不限库存）
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                           // 分类ID
	BrandID        uint           `gorm:"not null;index" json:"brand_id"`                              // 品牌ID
	CPU            string         `gorm:"type:varchar(100)" json:"cpu"`                                // 处理器
	RAM            string         `gorm:"type:varchar(100)" json:"ram"`                                // 内存
	Storage        string         `gorm:"type:varchar(100)" json:"storage"`                            // 硬盘
	Screen         string         `gorm:"type:varchar(100)" json:"screen"`                             // 屏幕
	GPU            string         `gorm:"type:varchar(100)" json:"gpu"`                                // 显卡
	WeightKG       string         `gorm:"type:varchar(20)" json:"weight_kg"`                           // 重量
	WarrantyMonths int            `gorm:"default:12" json:"warranty_months"`                           // 保修月数
	Status         string         `gorm:"type:varchar(10);default:'on';index" json:"status"`           // 上架状态（on/off）
	SoldCount      int            `gorm:"default:0" json:"sold_count"`                                 // 已售数量
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Category Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Brand    Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 品牌信息
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`    // 图片列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// OnSale 商品是否可购买
func (p *Product) OnSale() bool {
	return p.Status == "on"
}

// ProductImage 商品图片表
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`  // 商品ID
	URL       string    `gorm:"type:varchar(500);not null" json:"url"` // 图片路径
	Sort      int       `gorm:"default:0" json:"sort"`             // 排序权重
	IsCover   bool      `gorm:"default:false" json:"is_cover"`     // 是否封面图
	CreatedAt time.Time `json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
