package models

import (
	"time"

	"gorm.io/gorm"
)

// ImportReceipt 入库单（采购入库，提升商品库存）
type ImportReceipt struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                    // 主键
	ReceiptNo string         `gorm:"uniqueIndex;not null" json:"receipt_no"`                  // 入库单号
	Supplier  string         `gorm:"type:varchar(200)" json:"supplier"`                       // 供应商
	Note      string         `gorm:"type:varchar(500)" json:"note"`                           // 备注
	TotalCost Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 入库总成本
	CreatedBy uint           `gorm:"index" json:"created_by"`                                 // 创建人（后台用户ID）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	Details []ImportDetail `gorm:"foreignKey:ReceiptID" json:"details,omitempty"` // 入库明细
}

// TableName 指定表名
func (ImportReceipt) TableName() string {
	return "import_receipts"
}

// ImportDetail 入库明细
type ImportDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 主键
	ReceiptID uint      `gorm:"index;not null" json:"receipt_id"`                       // 入库单ID
	ProductID uint      `gorm:"index;not null" json:"product_id"`                       // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                               // 入库数量
	UnitCost  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"` // 单位成本
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ImportDetail) TableName() string {
	return "import_details"
}
