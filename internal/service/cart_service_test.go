package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:cart_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func seedCartProduct(t *testing.T, db *gorm.DB, slug string, stock *int, status string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Laptop " + slug,
		Slug:          slug,
		Price:         models.NewMoneyFromInt(15000000),
		StockQuantity: stock,
		CategoryID:    1,
		BrandID:       1,
		Status:        status,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartAddItemAccumulates(t *testing.T) {
	svc, db := setupCartTest(t)
	product := seedCartProduct(t, db, "aspire-5", intPtr(10), constants.ProductStatusOn)

	if err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(1, product.ID, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	view, err := svc.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", view.Items[0].Quantity)
	}
	wantSubtotal := models.NewMoneyFromInt(15000000 * 5)
	if !view.Subtotal.Decimal.Equal(wantSubtotal.Decimal) {
		t.Fatalf("subtotal want %s got %s", wantSubtotal.String(), view.Subtotal.String())
	}
}

func TestCartAddItemStockCap(t *testing.T) {
	svc, db := setupCartTest(t)
	product := seedCartProduct(t, db, "zbook-fury", intPtr(3), constants.ProductStatusOn)

	if err := svc.AddItem(2, product.ID, 2); err != nil {
		t.Fatalf("add within stock failed: %v", err)
	}
	err := svc.AddItem(2, product.ID, 2)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock on accumulated quantity, got %v", err)
	}
	var shortage *StockShortageError
	if !errors.As(err, &shortage) || shortage.Available != 3 {
		t.Fatalf("expected shortage with 3 available, got %v", err)
	}
}

func TestCartAddItemOffSaleProduct(t *testing.T) {
	svc, db := setupCartTest(t)
	product := seedCartProduct(t, db, "old-model", intPtr(5), constants.ProductStatusOff)

	if err := svc.AddItem(1, product.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestCartAddItemInvalidQuantity(t *testing.T) {
	svc, _ := setupCartTest(t)
	if err := svc.AddItem(1, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartSetItemQuantity(t *testing.T) {
	svc, db := setupCartTest(t)
	product := seedCartProduct(t, db, "thinkpad-x1", intPtr(10), constants.ProductStatusOn)

	if err := svc.AddItem(4, product.ID, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetItemQuantity(4, product.ID, 2); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	view, err := svc.Get(4)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Items[0].Quantity)
	}

	if err := svc.SetItemQuantity(4, product.ID, 11); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock when exceeding, got %v", err)
	}
}

func TestCartSetItemQuantityMissingLine(t *testing.T) {
	svc, db := setupCartTest(t)
	product := seedCartProduct(t, db, "lonely", intPtr(10), constants.ProductStatusOn)

	if err := svc.SetItemQuantity(8, product.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, db := setupCartTest(t)
	first := seedCartProduct(t, db, "first", intPtr(10), constants.ProductStatusOn)
	second := seedCartProduct(t, db, "second", intPtr(10), constants.ProductStatusOn)

	if err := svc.AddItem(5, first.ID, 1); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := svc.AddItem(5, second.ID, 2); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	count, err := svc.Count(5)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 cart lines, got %d", count)
	}

	if err := svc.RemoveItem(5, first.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	view, _ := svc.Get(5)
	if len(view.Items) != 1 || view.Items[0].ProductID != second.ID {
		t.Fatalf("expected only second product left, got %+v", view.Items)
	}

	if err := svc.Clear(5); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	view, _ = svc.Get(5)
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
}
