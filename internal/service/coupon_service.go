package service

import (
	"strings"
	"time"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券管理服务
type CouponService struct {
	repo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(repo repository.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// List 优惠券列表
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}

// Get 优惠券详情
func (s *CouponService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// CouponInput 优惠券输入
type CouponInput struct {
	Code           string
	Description    string
	Type           string
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	UsageLimit     int
	StartsAt       *time.Time
	EndsAt         *time.Time
	Status         string
}

// Create 创建优惠券
func (s *CouponService) Create(input CouponInput) (*models.Coupon, error) {
	code := normalizeCouponCode(input.Code)
	if code == "" {
		return nil, ErrInvalidParams
	}
	couponType := normalizeCouponType(input.Type)
	if couponType == "" || !validCouponValue(couponType, input.Value) {
		return nil, ErrInvalidParams
	}
	if existing, err := s.repo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrCouponCodeExists
	}

	coupon := models.Coupon{
		Code:           code,
		Description:    strings.TrimSpace(input.Description),
		Type:           couponType,
		Value:          models.NewMoneyFromDecimal(input.Value.Round(2)),
		MinOrderAmount: models.NewMoneyFromDecimal(input.MinOrderAmount.Round(2)),
		UsageLimit:     input.UsageLimit,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Status:         normalizeCouponStatus(input.Status),
	}
	if err := s.repo.Create(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update 更新优惠券
func (s *CouponService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	code := normalizeCouponCode(input.Code)
	if code == "" {
		return nil, ErrInvalidParams
	}
	couponType := normalizeCouponType(input.Type)
	if couponType == "" || !validCouponValue(couponType, input.Value) {
		return nil, ErrInvalidParams
	}
	if existing, err := s.repo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, ErrCouponCodeExists
	}

	coupon.Code = code
	coupon.Description = strings.TrimSpace(input.Description)
	coupon.Type = couponType
	coupon.Value = models.NewMoneyFromDecimal(input.Value.Round(2))
	coupon.MinOrderAmount = models.NewMoneyFromDecimal(input.MinOrderAmount.Round(2))
	coupon.UsageLimit = input.UsageLimit
	coupon.StartsAt = input.StartsAt
	coupon.EndsAt = input.EndsAt
	coupon.Status = normalizeCouponStatus(input.Status)
	if err := s.repo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// CouponQuote 优惠试算结果
type CouponQuote struct {
	Coupon   *models.Coupon `json:"coupon"`
	Discount models.Money   `json:"discount"`
	Usable   bool           `json:"usable"`
	Reason   string         `json:"reason,omitempty"`
}

// Quote 按当前小计试算优惠金额（展示用，不锁定用量）
func (s *CouponService) Quote(code string, subtotal models.Money) (*CouponQuote, error) {
	coupon, err := s.repo.GetByCode(normalizeCouponCode(code))
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	quote := &CouponQuote{Coupon: coupon, Discount: models.NewMoneyFromInt(0)}
	now := time.Now()
	switch {
	case coupon.Status != constants.CouponStatusActive:
		quote.Reason = "disabled"
	case coupon.StartsAt != nil && now.Before(*coupon.StartsAt):
		quote.Reason = "not_started"
	case coupon.EndsAt != nil && now.After(*coupon.EndsAt):
		quote.Reason = "expired"
	case coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit:
		quote.Reason = "exhausted"
	case subtotal.Decimal.LessThan(coupon.MinOrderAmount.Decimal):
		quote.Reason = "below_minimum"
	default:
		quote.Usable = true
		quote.Discount = couponDiscount(coupon, subtotal)
	}
	return quote, nil
}

func couponDiscount(coupon *models.Coupon, subtotal models.Money) models.Money {
	sub := subtotal.Decimal
	var discount decimal.Decimal
	if coupon.Type == constants.CouponTypePercent {
		discount = sub.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		discount = coupon.Value.Decimal
	}
	if discount.GreaterThan(sub) {
		discount = sub
	}
	return models.NewMoneyFromDecimal(discount)
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCouponType(couponType string) string {
	switch strings.ToLower(strings.TrimSpace(couponType)) {
	case constants.CouponTypeFixed:
		return constants.CouponTypeFixed
	case constants.CouponTypePercent:
		return constants.CouponTypePercent
	default:
		return ""
	}
}

func normalizeCouponStatus(status string) string {
	if strings.ToLower(strings.TrimSpace(status)) == constants.CouponStatusDisabled {
		return constants.CouponStatusDisabled
	}
	return constants.CouponStatusActive
}

func validCouponValue(couponType string, value decimal.Decimal) bool {
	if value.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if couponType == constants.CouponTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return false
	}
	return true
}
