package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponTest(t *testing.T) *CouponService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:coupon_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db))
}

func TestCouponCreateNormalizesCode(t *testing.T) {
	svc := setupCouponTest(t)
	coupon, err := svc.Create(CouponInput{
		Code:  " welcome10 ",
		Type:  "percent",
		Value: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Fatalf("expected uppercase code, got %s", coupon.Code)
	}
	if coupon.Status != "active" {
		t.Fatalf("expected default active status, got %s", coupon.Status)
	}
}

func TestCouponCreateDuplicateCode(t *testing.T) {
	svc := setupCouponTest(t)
	if _, err := svc.Create(CouponInput{Code: "DUP", Type: "fixed", Value: decimal.NewFromInt(100000)}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(CouponInput{Code: "dup", Type: "fixed", Value: decimal.NewFromInt(100000)}); !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("expected ErrCouponCodeExists, got %v", err)
	}
}

func TestCouponCreateRejectsBadValues(t *testing.T) {
	svc := setupCouponTest(t)
	cases := []CouponInput{
		{Code: "", Type: "fixed", Value: decimal.NewFromInt(1)},
		{Code: "X", Type: "unknown", Value: decimal.NewFromInt(1)},
		{Code: "X", Type: "fixed", Value: decimal.Zero},
		{Code: "X", Type: "percent", Value: decimal.NewFromInt(120)},
	}
	for i, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("case %d expected ErrInvalidParams, got %v", i, err)
		}
	}
}

func TestCouponQuotePercent(t *testing.T) {
	svc := setupCouponTest(t)
	if _, err := svc.Create(CouponInput{
		Code:           "SALE15",
		Type:           "percent",
		Value:          decimal.NewFromInt(15),
		MinOrderAmount: decimal.NewFromInt(10000000),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quote, err := svc.Quote("sale15", models.NewMoneyFromInt(20000000))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !quote.Usable {
		t.Fatalf("expected usable quote, reason: %s", quote.Reason)
	}
	want := decimal.NewFromInt(3000000)
	if !quote.Discount.Decimal.Equal(want) {
		t.Fatalf("discount want %s got %s", want.String(), quote.Discount.String())
	}
}

func TestCouponQuoteBelowMinimum(t *testing.T) {
	svc := setupCouponTest(t)
	if _, err := svc.Create(CouponInput{
		Code:           "BIG",
		Type:           "fixed",
		Value:          decimal.NewFromInt(500000),
		MinOrderAmount: decimal.NewFromInt(20000000),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	quote, err := svc.Quote("BIG", models.NewMoneyFromInt(5000000))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.Usable || quote.Reason != "below_minimum" {
		t.Fatalf("expected below_minimum, got usable=%v reason=%s", quote.Usable, quote.Reason)
	}
	if !quote.Discount.Decimal.IsZero() {
		t.Fatalf("expected zero discount, got %s", quote.Discount.String())
	}
}

func TestCouponQuoteExpired(t *testing.T) {
	svc := setupCouponTest(t)
	past := time.Now().Add(-time.Hour)
	if _, err := svc.Create(CouponInput{
		Code:   "OLD",
		Type:   "fixed",
		Value:  decimal.NewFromInt(100000),
		EndsAt: &past,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	quote, err := svc.Quote("OLD", models.NewMoneyFromInt(1000000))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.Usable || quote.Reason != "expired" {
		t.Fatalf("expected expired, got usable=%v reason=%s", quote.Usable, quote.Reason)
	}
}

func TestCouponQuoteFixedCappedAtSubtotal(t *testing.T) {
	svc := setupCouponTest(t)
	if _, err := svc.Create(CouponInput{
		Code:  "HUGE",
		Type:  "fixed",
		Value: decimal.NewFromInt(2000000),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	quote, err := svc.Quote("HUGE", models.NewMoneyFromInt(500000))
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !quote.Discount.Decimal.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("discount should cap at subtotal, got %s", quote.Discount.String())
	}
}

func TestCouponQuoteUnknownCode(t *testing.T) {
	svc := setupCouponTest(t)
	if _, err := svc.Quote("MISSING", models.NewMoneyFromInt(1000000)); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}
