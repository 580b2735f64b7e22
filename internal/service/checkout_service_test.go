package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutTest(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:checkout_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Brand{},
		&models.Product{}, &models.ProductImage{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderDetail{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Shipping.FlatFee = 30000
	cfg.Shipping.FreeProvinces = []string{"hà nội", "hồ chí minh"}
	cfg.Order.DeliveryMinDays = 4
	cfg.Order.DeliveryMaxDays = 7
	svc := NewCheckoutService(
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		repository.NewNotificationRepository(db),
		nil,
		nil,
		cfg,
	)
	return svc, db
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock *int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Laptop " + slug,
		Slug:          slug,
		Price:         models.NewMoneyFromInt(price),
		StockQuantity: stock,
		CategoryID:    1,
		BrandID:       1,
		Status:        constants.ProductStatusOn,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedCartWithItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()
	cart := &models.Cart{UserID: userID}
	if err := db.Where("user_id = ?", userID).FirstOrCreate(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := db.Create(&models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func intPtr(n int) *int { return &n }

func TestCheckoutSuccessDecrementsStockAndClearsCart(t *testing.T) {
	svc, db := setupCheckoutTest(t)
	product := seedCheckoutProduct(t, db, "rog-strix", 42990000, intPtr(5))
	seedCartWithItem(t, db, 7, product.ID, 2)

	result, err := svc.Checkout(CheckoutInput{
		UserID:        7,
		FullName:      "Nguyen Van A",
		Phone:         "0912345678",
		Address:       "12 Lý Thường Kiệt",
		District:      "Hoàn Kiếm",
		Province:      "Đà Nẵng",
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", result.Order.Status)
	}
	if result.Order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", result.Order.PaymentStatus)
	}
	wantTotal := models.NewMoneyFromInt(42990000*2 + 30000)
	if !result.Order.TotalMoney.Decimal.Equal(wantTotal.Decimal) {
		t.Fatalf("total want %s got %s", wantTotal.String(), result.Order.TotalMoney.String())
	}

	var updated models.Product
	if err := db.First(&updated, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if updated.StockQuantity == nil || *updated.StockQuantity != 3 {
		t.Fatalf("expected stock 3 after checkout, got %+v", updated.StockQuantity)
	}

	var itemCount int64
	db.Model(&models.CartItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("expected cart cleared, %d items remain", itemCount)
	}

	var detailCount int64
	db.Model(&models.OrderDetail{}).Where("order_id = ?", result.Order.ID).Count(&detailCount)
	if detailCount != 1 {
		t.Fatalf("expected 1 order detail, got %d", detailCount)
	}
}

func TestCheckoutStockShortageRollsBack(t *testing.T) {
	svc, db := setupCheckoutTest(t)
	product := seedCheckoutProduct(t, db, "xps-13", 34990000, intPtr(1))
	seedCartWithItem(t, db, 3, product.ID, 2)

	_, err := svc.Checkout(CheckoutInput{
		UserID:   3,
		FullName: "Tran Thi B",
		Phone:    "0900000001",
		Address:  "5 Nguyễn Huệ",
		Province: "Huế",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	var shortage *StockShortageError
	if !errors.As(err, &shortage) {
		t.Fatalf("expected StockShortageError, got %T", err)
	}
	if shortage.Available != 1 {
		t.Fatalf("expected 1 available, got %d", shortage.Available)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected no order after rollback, got %d", orderCount)
	}
	var itemCount int64
	db.Model(&models.CartItem{}).Count(&itemCount)
	if itemCount != 1 {
		t.Fatalf("expected cart kept after rollback, got %d items", itemCount)
	}
	var updated models.Product
	db.First(&updated, product.ID)
	if updated.StockQuantity == nil || *updated.StockQuantity != 1 {
		t.Fatalf("expected stock unchanged, got %+v", updated.StockQuantity)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := setupCheckoutTest(t)
	_, err := svc.Checkout(CheckoutInput{
		UserID:   1,
		FullName: "Nguyen Van A",
		Phone:    "0912345678",
		Address:  "12 Lý Thường Kiệt",
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutShippingInfoMissing(t *testing.T) {
	svc, _ := setupCheckoutTest(t)
	_, err := svc.Checkout(CheckoutInput{UserID: 1, FullName: " ", Phone: "0912345678", Address: "x"})
	if !errors.Is(err, ErrShippingInfoMissing) {
		t.Fatalf("expected ErrShippingInfoMissing, got %v", err)
	}
}

func TestCheckoutUnlimitedStockProduct(t *testing.T) {
	svc, db := setupCheckoutTest(t)
	product := seedCheckoutProduct(t, db, "macbook-air", 27990000, nil)
	seedCartWithItem(t, db, 9, product.ID, 3)

	result, err := svc.Checkout(CheckoutInput{
		UserID:   9,
		FullName: "Le Van C",
		Phone:    "0911111111",
		Address:  "99 Trần Phú",
		Province: "Hà Nội",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	// 不限库存建单成功且库存字段保持 NULL
	var updated models.Product
	db.First(&updated, product.ID)
	if updated.StockQuantity != nil {
		t.Fatalf("expected stock to stay NULL, got %v", *updated.StockQuantity)
	}
	if !result.Order.ShippingFee.Decimal.IsZero() {
		t.Fatalf("expected free shipping for Hà Nội, got %s", result.Order.ShippingFee.String())
	}
}

func TestShippingFee(t *testing.T) {
	svc, _ := setupCheckoutTest(t)
	cases := []struct {
		province string
		want     int64
	}{
		{"Hà Nội", 0},
		{"TP. Hồ Chí Minh", 0},
		{"Đà Nẵng", 30000},
		{"", 30000},
	}
	for _, tc := range cases {
		got := svc.ShippingFee(tc.province)
		if !got.Decimal.Equal(models.NewMoneyFromInt(tc.want).Decimal) {
			t.Fatalf("province %q fee want %d got %s", tc.province, tc.want, got.String())
		}
	}
}

func TestDeliveryEstimate(t *testing.T) {
	svc, _ := setupCheckoutTest(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	from, to := svc.DeliveryEstimate(now)
	if from != "2026-03-14" {
		t.Fatalf("from want 2026-03-14 got %s", from)
	}
	if to != "2026-03-17" {
		t.Fatalf("to want 2026-03-17 got %s", to)
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", constants.PaymentMethodCOD},
		{"COD", constants.PaymentMethodCOD},
		{"cash", constants.PaymentMethodCOD},
		{"bank", constants.PaymentMethodVietQR},
		{"VietQR", constants.PaymentMethodVietQR},
		{"transfer", constants.PaymentMethodVietQR},
		{"vnpay", constants.PaymentMethodVNPay},
		{" Momo ", "momo"},
	}
	for _, tc := range cases {
		if got := NormalizePaymentMethod(tc.input); got != tc.want {
			t.Fatalf("input %q want %s got %s", tc.input, tc.want, got)
		}
	}
}
