package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	BrandID       uint
	Search        string
	PriceMin      *int64
	PriceMax      *int64
	OnlyOnSale    bool
	WithRelations bool
	Sort          string // newest / price_asc / price_desc / best_selling
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	PaymentMethod string
	Keyword       string // 订单号 / 收货人 / 电话模糊匹配
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CouponListFilter 查询优惠券列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
}

// NotificationListFilter 查询通知列表的过滤条件
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	UnreadOnly bool
}

// ImportReceiptListFilter 查询入库单列表的过滤条件
type ImportReceiptListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
