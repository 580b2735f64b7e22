package main

import (
	"fmt"
	"time"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Laptop Gaming", Slug: "laptop-gaming", Description: "Laptop chơi game cấu hình cao", SortOrder: 1},
		{Name: "Laptop Văn phòng", Slug: "laptop-van-phong", Description: "Laptop mỏng nhẹ cho công việc văn phòng", SortOrder: 2},
		{Name: "Ultrabook", Slug: "ultrabook", Description: "Laptop cao cấp mỏng nhẹ", SortOrder: 3},
		{Name: "Workstation", Slug: "workstation", Description: "Máy trạm đồ họa chuyên nghiệp", SortOrder: 4},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 添加品牌
	brands := []models.Brand{
		{Name: "ASUS", Slug: "asus", SortOrder: 1},
		{Name: "Lenovo", Slug: "lenovo", SortOrder: 2},
		{Name: "Dell", Slug: "dell", SortOrder: 3},
		{Name: "Apple", Slug: "apple", SortOrder: 4},
		{Name: "HP", Slug: "hp", SortOrder: 5},
		{Name: "Acer", Slug: "acer", SortOrder: 6},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Slug)
		}
	}

	categoryIDs := loadSlugIDs(&models.Category{}, []string{"laptop-gaming", "laptop-van-phong", "ultrabook", "workstation"}, stdLog)
	brandIDs := loadSlugIDs(&models.Brand{}, []string{"asus", "lenovo", "dell", "apple", "hp", "acer"}, stdLog)

	stock := func(n int) *int { return &n }

	// 添加商品
	products := []models.Product{
		{
			Name:           "ASUS ROG Strix G16 (2025)",
			Slug:           "asus-rog-strix-g16-2025",
			Description:    "Laptop gaming 16 inch, tản nhiệt mạnh, màn hình 165Hz.",
			Price:          models.NewMoneyFromInt(42990000),
			OriginalPrice:  models.NewMoneyFromInt(46990000),
			StockQuantity:  stock(15),
			CategoryID:     categoryIDs["laptop-gaming"],
			BrandID:        brandIDs["asus"],
			CPU:            "Intel Core i7-14650HX",
			RAM:            "16GB DDR5 5600MHz",
			Storage:        "1TB PCIe 4.0 NVMe SSD",
			Screen:         "16 inch FHD+ 165Hz",
			GPU:            "NVIDIA GeForce RTX 4060 8GB",
			WeightKG:       "2.5",
			WarrantyMonths: 24,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/rog-strix-g16-1.jpg", Sort: 1, IsCover: true},
				{URL: "/uploads/products/rog-strix-g16-2.jpg", Sort: 2},
			},
		},
		{
			Name:           "Lenovo ThinkPad X1 Carbon Gen 12",
			Slug:           "lenovo-thinkpad-x1-carbon-gen-12",
			Description:    "Ultrabook doanh nhân 14 inch, bền bỉ chuẩn quân đội, bàn phím huyền thoại.",
			Price:          models.NewMoneyFromInt(38990000),
			OriginalPrice:  models.NewMoneyFromInt(41990000),
			StockQuantity:  stock(8),
			CategoryID:     categoryIDs["ultrabook"],
			BrandID:        brandIDs["lenovo"],
			CPU:            "Intel Core Ultra 7 155U",
			RAM:            "32GB LPDDR5X",
			Storage:        "1TB PCIe NVMe SSD",
			Screen:         "14 inch 2.8K OLED",
			GPU:            "Intel Graphics",
			WeightKG:       "1.09",
			WarrantyMonths: 36,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/thinkpad-x1-carbon-1.jpg", Sort: 1, IsCover: true},
			},
		},
		{
			Name:           "Dell XPS 13 9350",
			Slug:           "dell-xps-13-9350",
			Description:    "Ultrabook cao cấp viền mỏng, pin cả ngày.",
			Price:          models.NewMoneyFromInt(34990000),
			OriginalPrice:  models.NewMoneyFromInt(36990000),
			StockQuantity:  stock(12),
			CategoryID:     categoryIDs["ultrabook"],
			BrandID:        brandIDs["dell"],
			CPU:            "Intel Core Ultra 5 226V",
			RAM:            "16GB LPDDR5X",
			Storage:        "512GB PCIe NVMe SSD",
			Screen:         "13.4 inch FHD+",
			GPU:            "Intel Arc Graphics",
			WeightKG:       "1.18",
			WarrantyMonths: 12,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/xps-13-9350-1.jpg", Sort: 1, IsCover: true},
			},
		},
		{
			Name:           "MacBook Air 13 M4",
			Slug:           "macbook-air-13-m4",
			Description:    "Mỏng nhẹ, pin 18 giờ, chip Apple M4.",
			Price:          models.NewMoneyFromInt(27990000),
			OriginalPrice:  models.NewMoneyFromInt(28990000),
			StockQuantity:  stock(20),
			CategoryID:     categoryIDs["ultrabook"],
			BrandID:        brandIDs["apple"],
			CPU:            "Apple M4 10-core",
			RAM:            "16GB",
			Storage:        "256GB SSD",
			Screen:         "13.6 inch Liquid Retina",
			GPU:            "Apple 8-core GPU",
			WeightKG:       "1.24",
			WarrantyMonths: 12,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/macbook-air-m4-1.jpg", Sort: 1, IsCover: true},
			},
		},
		{
			Name:           "HP ZBook Fury 16 G11",
			Slug:           "hp-zbook-fury-16-g11",
			Description:    "Máy trạm di động cho dựng phim và CAD nặng.",
			Price:          models.NewMoneyFromInt(89990000),
			OriginalPrice:  models.NewMoneyFromInt(94990000),
			StockQuantity:  stock(3),
			CategoryID:     categoryIDs["workstation"],
			BrandID:        brandIDs["hp"],
			CPU:            "Intel Core i9-14900HX",
			RAM:            "64GB DDR5",
			Storage:        "2TB PCIe 4.0 NVMe SSD",
			Screen:         "16 inch WUXGA 120Hz",
			GPU:            "NVIDIA RTX 3500 Ada 12GB",
			WeightKG:       "2.35",
			WarrantyMonths: 36,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/zbook-fury-16-1.jpg", Sort: 1, IsCover: true},
			},
		},
		{
			Name:           "Acer Aspire 5 A515",
			Slug:           "acer-aspire-5-a515",
			Description:    "Laptop văn phòng giá tốt cho sinh viên.",
			Price:          models.NewMoneyFromInt(14990000),
			OriginalPrice:  models.NewMoneyFromInt(16490000),
			StockQuantity:  stock(30),
			CategoryID:     categoryIDs["laptop-van-phong"],
			BrandID:        brandIDs["acer"],
			CPU:            "AMD Ryzen 5 7530U",
			RAM:            "16GB DDR4",
			Storage:        "512GB NVMe SSD",
			Screen:         "15.6 inch FHD IPS",
			GPU:            "AMD Radeon Graphics",
			WeightKG:       "1.77",
			WarrantyMonths: 12,
			Status:         "on",
			Images: []models.ProductImage{
				{URL: "/uploads/products/aspire-5-a515-1.jpg", Sort: 1, IsCover: true},
			},
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加优惠券
	now := time.Now()
	endOfMonth := now.AddDate(0, 1, 0)
	coupons := []models.Coupon{
		{
			Code:           "WELCOME10",
			Description:    "Giảm 10% cho đơn hàng đầu tiên, tối thiểu 5 triệu.",
			Type:           "percent",
			Value:          models.NewMoneyFromInt(10),
			MinOrderAmount: models.NewMoneyFromInt(5000000),
			UsageLimit:     100,
			StartsAt:       &now,
			EndsAt:         &endOfMonth,
			Status:         "active",
		},
		{
			Code:           "GIAM500K",
			Description:    "Giảm 500.000đ cho đơn từ 20 triệu.",
			Type:           "fixed",
			Value:          models.NewMoneyFromInt(500000),
			MinOrderAmount: models.NewMoneyFromInt(20000000),
			UsageLimit:     50,
			StartsAt:       &now,
			EndsAt:         &endOfMonth,
			Status:         "active",
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	fmt.Println("Seed completed.")
}

type slugRecord struct {
	ID   uint
	Slug string
}

func loadSlugIDs(model interface{}, slugs []string, stdLog interface{ Printf(string, ...interface{}) }) map[string]uint {
	ids := make(map[string]uint, len(slugs))
	var records []slugRecord
	if err := models.DB.Model(model).Where("slug IN ?", slugs).Find(&records).Error; err != nil {
		stdLog.Printf("Failed to load slugs: %v", err)
		return ids
	}
	for _, record := range records {
		ids[record.Slug] = record.ID
	}
	return ids
}
