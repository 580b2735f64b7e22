package router

import (
	"fmt"
	"strings"

	"github.com/laptopstore-next/internal/cache"
	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	adminhandlers "github.com/laptopstore-next/internal/http/handlers/admin"
	publichandlers "github.com/laptopstore-next/internal/http/handlers/public"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	resendRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:resend", redisPrefix),
		WindowSeconds: cfg.Email.VerifyToken.SendIntervalSeconds,
		MaxRequests:   1,
		MessageKey:    "error.verify_token_interval",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProductBySlug)
		apiV1.GET("/products/:slug/reviews", publicHandler.GetProductReviews)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/brands", publicHandler.GetBrands)
		apiV1.GET("/captcha", publicHandler.GetCaptcha)

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("identifier")), publicHandler.Login)
			auth.GET("/verify-email", publicHandler.VerifyEmail)
			auth.POST("/setup-account", publicHandler.SetupAccount)
			auth.POST("/resend-verification", RateLimitMiddleware(redisClient, resendRule, KeyByIPAndJSONField("email")), publicHandler.ResendVerification)
			auth.GET("/check-email", publicHandler.CheckEmail)
			auth.GET("/check-phone", publicHandler.CheckPhone)
			auth.GET("/google", publicHandler.GoogleAuthURL)
			auth.GET("/google/callback", publicHandler.GoogleCallback)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/me/avatar", publicHandler.UploadAvatar)
			user.GET("/cart", publicHandler.GetCart)
			user.GET("/cart/count", publicHandler.GetCartCount)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.GET("/coupons/quote", publicHandler.QuoteCoupon)
			user.POST("/reviews", publicHandler.CreateReview)
			user.GET("/notifications", publicHandler.GetNotifications)
			user.GET("/notifications/unread-count", publicHandler.GetUnreadCount)
			user.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)
			user.POST("/notifications/read-all", publicHandler.MarkAllNotificationsRead)
		}

		// 管理端接口（admin 直通，staff 走 casbin）
		admin := apiV1.Group("/admin")
		admin.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RequireRoles(constants.RoleStaff, constants.RoleAdmin),
			StaffRBACMiddleware(c.AuthzService),
		)
		{
			// 仪表盘与报表
			admin.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
			admin.GET("/dashboard/revenue-trend", adminHandler.GetRevenueTrend)
			admin.GET("/dashboard/revenue-by-method", adminHandler.GetRevenueByPaymentMethod)
			admin.GET("/dashboard/top-products", adminHandler.GetTopProducts)
			admin.GET("/reports/revenue/export", adminHandler.ExportRevenueReport)

			// 商品管理
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.PATCH("/products/:id/status", adminHandler.SetProductStatus)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 分类与品牌管理
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			admin.GET("/brands", adminHandler.ListBrands)
			admin.POST("/brands", adminHandler.CreateBrand)
			admin.PUT("/brands/:id", adminHandler.UpdateBrand)
			admin.DELETE("/brands/:id", adminHandler.DeleteBrand)

			// 订单管理
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/status-counts", adminHandler.GetOrderStatusCounts)
			admin.GET("/orders/export", adminHandler.ExportOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.POST("/orders/:id/paid", adminHandler.MarkOrderPaid)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/batch-status", adminHandler.BatchSetUserStatus)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
			admin.POST("/users/:id/resend-setup", adminHandler.ResendSetupEmail)
			admin.POST("/users/:id/reset-password", adminHandler.ResetUserPassword)

			// 优惠券管理
			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.GET("/coupons/:id", adminHandler.GetCoupon)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			// 入库单管理
			admin.GET("/imports", adminHandler.ListImportReceipts)
			admin.GET("/imports/:id", adminHandler.GetImportReceipt)
			admin.POST("/imports", adminHandler.CreateImportReceipt)

			// 文件上传与站内通知
			admin.POST("/upload", adminHandler.Upload)
			admin.POST("/notifications/announce", adminHandler.Announce)

			// 权限管理
			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/staff/:id/roles", adminHandler.GetAuthzStaffRoles)
			admin.PUT("/authz/staff/:id/roles", adminHandler.SetAuthzStaffRoles)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
