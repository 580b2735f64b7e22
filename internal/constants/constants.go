package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipping   = "shipping"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodVietQR = "vietqr"
	PaymentMethodVNPay  = "vnpay"
)

// 用户角色常量
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"
)

// 商品状态常量
const (
	ProductStatusOn  = "on"
	ProductStatusOff = "off"
)

// 商品库存状态常量
const (
	ProductStockStatusUnlimited  = "unlimited"
	ProductStockStatusInStock    = "in_stock"
	ProductStockStatusLowStock   = "low_stock"
	ProductStockStatusOutOfStock = "out_of_stock"
)

// 验证令牌用途常量
const (
	VerifyPurposeVerifyEmail  = "verify_email"
	VerifyPurposeSetupAccount = "setup_account"
)

// 第三方登录提供方常量
const (
	UserOAuthProviderGoogle = "google"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 优惠券类型常量
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// 优惠券状态常量
const (
	CouponStatusActive   = "active"
	CouponStatusDisabled = "disabled"
)

// 通知类型常量
const (
	NotificationKindOrderPlaced  = "order_placed"
	NotificationKindOrderStatus  = "order_status"
	NotificationKindAccount      = "account"
	NotificationKindAnnouncement = "announcement"
)

// 队列常量
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskVerifyEmail      = "email:verify"
	TaskOrderStatusEmail = "email:order_status"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ls"
)

// 站点语言常量
const (
	LocaleVi = "vi"
	LocaleEn = "en"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleVi, LocaleEn}

// 入库单号与订单号前缀常量
const (
	OrderNoPrefix   = "OD"
	ReceiptNoPrefix = "IM"
)
