package service

import "errors"

// 业务层哨兵错误，供 HTTP 层做错误码与文案映射
var (
	// 通用
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidParams = errors.New("invalid params")

	// 认证与账号
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone already exists")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrTokenInvalid       = errors.New("verification token invalid")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrTokenUsed          = errors.New("verification token used")
	ErrVerifyTooFrequent  = errors.New("verification email requested too frequently")

	// 第三方登录
	ErrOAuthDisabled = errors.New("oauth provider disabled")
	ErrOAuthState    = errors.New("oauth state invalid")
	ErrOAuthExchange = errors.New("oauth code exchange failed")

	// 验证码
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	// 商品与目录
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrSlugExists         = errors.New("slug already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBrandNotFound      = errors.New("brand not found")

	// 购物车与下单
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrShippingInfoMissing = errors.New("shipping info missing")

	// 订单
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderTransition = errors.New("order status transition not allowed")

	// 优惠券
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponCodeExists = errors.New("coupon code already exists")

	// 评价
	ErrReviewExists     = errors.New("review already exists")
	ErrReviewNotAllowed = errors.New("review not allowed")
	ErrInvalidRating    = errors.New("invalid rating")

	// 入库
	ErrImportEmpty    = errors.New("import receipt has no details")
	ErrImportNotFound = errors.New("import receipt not found")

	// 邮件
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	// 上传
	ErrUploadTooLarge    = errors.New("upload file too large")
	ErrUploadInvalidType = errors.New("upload file type not allowed")
)
