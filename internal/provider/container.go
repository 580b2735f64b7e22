package provider

import (
	"github.com/laptopstore-next/internal/authz"
	"github.com/laptopstore-next/internal/cache"
	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/queue"
	"github.com/laptopstore-next/internal/repository"
	"github.com/laptopstore-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	EmailTokenRepo    repository.EmailTokenRepository
	ProductRepo       repository.ProductRepository
	CategoryRepo      repository.CategoryRepository
	BrandRepo         repository.BrandRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	CouponRepo        repository.CouponRepository
	ReviewRepo        repository.ReviewRepository
	NotificationRepo  repository.NotificationRepository
	ImportReceiptRepo repository.ImportReceiptRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	OAuthService        *service.OAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	BrandService        *service.BrandService
	CartService         *service.CartService
	CheckoutService     *service.CheckoutService
	OrderService        *service.OrderService
	CouponService       *service.CouponService
	ReviewService       *service.ReviewService
	NotificationService *service.NotificationService
	InventoryService    *service.InventoryService
	DashboardService    *service.DashboardService
	ReportService       *service.ReportService
	UserService         *service.UserService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailTokenRepo = repository.NewEmailTokenRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.ImportReceiptRepo = repository.NewImportReceiptRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.UserRepo, c.EmailTokenRepo, c.EmailService, c.QueueClient, c.Config)
	c.OAuthService = service.NewOAuthService(c.UserRepo, c.AuthService, &c.Config.OAuth.Google)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ReviewRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.BrandService = service.NewBrandService(c.BrandRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CheckoutService = service.NewCheckoutService(c.ProductRepo, c.CartRepo, c.OrderRepo, c.NotificationRepo, c.EmailService, c.QueueClient, c.Config)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.NotificationRepo, c.EmailService, c.QueueClient, c.Config)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.InventoryService = service.NewInventoryService(c.ImportReceiptRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.OrderRepo, c.ProductRepo)
	c.ReportService = service.NewReportService(c.OrderRepo, c.DashboardRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
}
