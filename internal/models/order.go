package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	FullName      string         `gorm:"type:varchar(100);not null" json:"full_name"`                // 收货人姓名
	Phone         string         `gorm:"type:varchar(20);not null" json:"phone"`                     // 收货人电话
	Email         string         `gorm:"type:varchar(200)" json:"email"`                             // 收货人邮箱
	Address       string         `gorm:"type:varchar(500);not null" json:"address"`                  // 完整地址（地址, 区, 省）
	Province      string         `gorm:"type:varchar(100)" json:"province"`                          // 省/直辖市
	District      string         `gorm:"type:varchar(100)" json:"district"`                          // 区/县
	Note          string         `gorm:"type:varchar(500)" json:"note"`                              // 备注
	PaymentMethod string         `gorm:"type:varchar(20);not null" json:"payment_method"`            // 支付方式（cod/vietqr/vnpay）
	PaymentStatus string         `gorm:"type:varchar(20);not null;index" json:"payment_status"`      // 支付状态（unpaid/paid/refunded）
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"`              // 订单状态
	Subtotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`      // 商品小计
	ShippingFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`  // 运费
	TotalMoney    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_money"`   // 应付总额
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                                       // 支付时间
	DeliveredAt   *time.Time     `gorm:"index" json:"delivered_at"`                                  // 送达时间
	CancelledAt   *time.Time     `gorm:"index" json:"cancelled_at"`                                  // 取消时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	User    *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`     // 下单用户
	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"` // 订单明细
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderDetail 订单明细表（下单时冻结商品名与单价）
type OrderDetail struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ProductName string         `gorm:"type:varchar(200);not null" json:"product_name"`           // 商品名快照
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 单价快照
	Quantity    int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
