package service

import (
	"strings"

	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// ReviewService 商品评价服务
type ReviewService struct {
	repo        repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	repo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *ReviewService {
	return &ReviewService{repo: repo, orderRepo: orderRepo, productRepo: productRepo}
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.repo.ListByProduct(filter)
}

// Summary 商品评分汇总
func (s *ReviewService) Summary(productID uint) (float64, int64, error) {
	return s.repo.AverageRating(productID)
}

// Create 发表评价
// 仅允许对已签收订单中的商品评价，且每个商品一人一条
func (s *ReviewService) Create(userID, productID uint, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	purchased, err := s.orderRepo.HasDeliveredProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrReviewNotAllowed
	}

	reviewed, err := s.repo.HasReviewed(userID, productID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrReviewExists
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Content:   strings.TrimSpace(content),
	}
	if err := s.repo.Create(&review); err != nil {
		return nil, err
	}
	logger.Infow("review_created", "user_id", userID, "product_id", productID, "rating", rating)
	return &review, nil
}

// Delete 后台删除评价
func (s *ReviewService) Delete(id uint) error {
	return s.repo.Delete(id)
}
