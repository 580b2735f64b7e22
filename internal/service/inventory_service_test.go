package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupInventoryTest(t *testing.T) (*InventoryService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:inventory_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.ImportReceipt{}, &models.ImportDetail{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewInventoryService(repository.NewImportReceiptRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func seedInventoryProduct(t *testing.T, db *gorm.DB, slug string, stock *int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name: "Laptop " + slug, Slug: slug, Price: models.NewMoneyFromInt(20000000),
		StockQuantity: stock, CategoryID: 1, BrandID: 1, Status: constants.ProductStatusOn,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCreateReceiptIncrementsStock(t *testing.T) {
	svc, db := setupInventoryTest(t)
	tracked := seedInventoryProduct(t, db, "tracked", intPtr(5))
	unlimited := seedInventoryProduct(t, db, "unlimited", nil)

	receipt, err := svc.CreateReceipt(ImportInput{
		Supplier:  "FPT Trading",
		Note:      "Đợt nhập tháng 3",
		CreatedBy: 1,
		Lines: []ImportLineInput{
			{ProductID: tracked.ID, Quantity: 10, UnitCost: decimal.NewFromInt(18000000)},
			{ProductID: unlimited.ID, Quantity: 4, UnitCost: decimal.NewFromInt(25000000)},
		},
	})
	if err != nil {
		t.Fatalf("create receipt failed: %v", err)
	}
	if receipt.ReceiptNo == "" {
		t.Fatalf("expected receipt number")
	}
	wantCost := decimal.NewFromInt(18000000*10 + 25000000*4)
	if !receipt.TotalCost.Decimal.Equal(wantCost) {
		t.Fatalf("total cost want %s got %s", wantCost.String(), receipt.TotalCost.String())
	}
	if len(receipt.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(receipt.Details))
	}

	var reloadedTracked models.Product
	if err := db.First(&reloadedTracked, tracked.ID).Error; err != nil {
		t.Fatalf("reload tracked product failed: %v", err)
	}
	if reloadedTracked.StockQuantity == nil || *reloadedTracked.StockQuantity != 15 {
		t.Fatalf("expected stock 15, got %+v", reloadedTracked.StockQuantity)
	}
	var reloadedUnlimited models.Product
	if err := db.First(&reloadedUnlimited, unlimited.ID).Error; err != nil {
		t.Fatalf("reload unlimited product failed: %v", err)
	}
	if reloadedUnlimited.StockQuantity != nil {
		t.Fatalf("unlimited product stock should stay NULL")
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	svc, db := setupInventoryTest(t)
	product := seedInventoryProduct(t, db, "valid", intPtr(1))

	if _, err := svc.CreateReceipt(ImportInput{}); !errors.Is(err, ErrImportEmpty) {
		t.Fatalf("expected ErrImportEmpty, got %v", err)
	}
	if _, err := svc.CreateReceipt(ImportInput{
		Lines: []ImportLineInput{{ProductID: product.ID, Quantity: 0, UnitCost: decimal.NewFromInt(1)}},
	}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for zero quantity, got %v", err)
	}
	if _, err := svc.CreateReceipt(ImportInput{
		Lines: []ImportLineInput{{ProductID: 999, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var receiptCount int64
	db.Model(&models.ImportReceipt{}).Count(&receiptCount)
	if receiptCount != 0 {
		t.Fatalf("expected no receipt persisted, got %d", receiptCount)
	}
}

func TestGetReceiptNotFound(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	if _, err := svc.Get(42); !errors.Is(err, ErrImportNotFound) {
		t.Fatalf("expected ErrImportNotFound, got %v", err)
	}
}
