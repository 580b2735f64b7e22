package service

import (
	"strings"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo       repository.ProductRepository
	reviewRepo repository.ReviewRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, reviewRepo repository.ReviewRepository) *ProductService {
	return &ProductService{repo: repo, reviewRepo: reviewRepo}
}

// ProductDetailView 商品详情视图（附带评分汇总）
type ProductDetailView struct {
	Product       *models.Product `json:"product"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	StockStatus   string          `json:"stock_status"`
}

// ListPublic 店面商品列表（仅上架商品）
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyOnSale = true
	filter.WithRelations = true
	return s.repo.List(filter)
}

// GetPublicBySlug 店面商品详情
func (s *ProductService) GetPublicBySlug(productSlug string) (*ProductDetailView, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(productSlug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	view := &ProductDetailView{Product: product, StockStatus: stockStatus(product)}
	if s.reviewRepo != nil {
		if avg, count, err := s.reviewRepo.AverageRating(product.ID); err == nil {
			view.AverageRating = avg
			view.ReviewCount = count
		}
	}
	return view, nil
}

// ListAdmin 后台商品列表（含下架商品）
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyOnSale = false
	filter.WithRelations = true
	return s.repo.List(filter)
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  decimal.Decimal
	StockQuantity  *int
	CategoryID     uint
	BrandID        uint
	CPU            string
	RAM            string
	Storage        string
	Screen         string
	GPU            string
	WeightKG       string
	WarrantyMonths int
	Status         string
	Images         []ProductImageInput
}

// ProductImageInput 商品图片输入
type ProductImageInput struct {
	URL     string
	Sort    int
	IsCover bool
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 || input.BrandID == 0 {
		return nil, ErrInvalidParams
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidParams
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return nil, ErrInvalidParams
	}

	productSlug := resolveSlug(input.Slug, name)
	count, err := s.repo.CountBySlug(productSlug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product := models.Product{
		Name:           name,
		Slug:           productSlug,
		Description:    input.Description,
		Price:          models.NewMoneyFromDecimal(input.Price.Round(2)),
		OriginalPrice:  models.NewMoneyFromDecimal(input.OriginalPrice.Round(2)),
		StockQuantity:  input.StockQuantity,
		CategoryID:     input.CategoryID,
		BrandID:        input.BrandID,
		CPU:            strings.TrimSpace(input.CPU),
		RAM:            strings.TrimSpace(input.RAM),
		Storage:        strings.TrimSpace(input.Storage),
		Screen:         strings.TrimSpace(input.Screen),
		GPU:            strings.TrimSpace(input.GPU),
		WeightKG:       strings.TrimSpace(input.WeightKG),
		WarrantyMonths: input.WarrantyMonths,
		Status:         normalizeProductStatus(input.Status),
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	if len(input.Images) > 0 {
		if err := s.repo.ReplaceImages(product.ID, buildImages(product.ID, input.Images)); err != nil {
			return nil, err
		}
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return s.GetAdminByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 || input.BrandID == 0 {
		return nil, ErrInvalidParams
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidParams
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return nil, ErrInvalidParams
	}

	productSlug := resolveSlug(input.Slug, name)
	count, err := s.repo.CountBySlug(productSlug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product.Name = name
	product.Slug = productSlug
	product.Description = input.Description
	product.Price = models.NewMoneyFromDecimal(input.Price.Round(2))
	product.OriginalPrice = models.NewMoneyFromDecimal(input.OriginalPrice.Round(2))
	product.StockQuantity = input.StockQuantity
	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.CPU = strings.TrimSpace(input.CPU)
	product.RAM = strings.TrimSpace(input.RAM)
	product.Storage = strings.TrimSpace(input.Storage)
	product.Screen = strings.TrimSpace(input.Screen)
	product.GPU = strings.TrimSpace(input.GPU)
	product.WeightKG = strings.TrimSpace(input.WeightKG)
	product.WarrantyMonths = input.WarrantyMonths
	product.Status = normalizeProductStatus(input.Status)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if input.Images != nil {
		if err := s.repo.ReplaceImages(product.ID, buildImages(product.ID, input.Images)); err != nil {
			return nil, err
		}
	}
	logger.Infow("product_updated", "product_id", product.ID, "slug", product.Slug)
	return s.GetAdminByID(product.ID)
}

// SetStatus 上架/下架商品
func (s *ProductService) SetStatus(id uint, status string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	product.Status = normalizeProductStatus(status)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", id)
	return nil
}

// ListLowStock 库存告警列表
func (s *ProductService) ListLowStock(threshold, limit int) ([]models.Product, error) {
	if threshold <= 0 {
		threshold = 5
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListLowStock(threshold, limit)
}

func resolveSlug(input, name string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed != "" {
		return slug.Make(trimmed)
	}
	return slug.Make(name)
}

func normalizeProductStatus(status string) string {
	if strings.ToLower(strings.TrimSpace(status)) == constants.ProductStatusOff {
		return constants.ProductStatusOff
	}
	return constants.ProductStatusOn
}

func buildImages(productID uint, inputs []ProductImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(inputs))
	hasCover := false
	for _, input := range inputs {
		url := strings.TrimSpace(input.URL)
		if url == "" {
			continue
		}
		image := models.ProductImage{
			ProductID: productID,
			URL:       url,
			Sort:      input.Sort,
			IsCover:   input.IsCover,
		}
		if image.IsCover {
			if hasCover {
				image.IsCover = false
			}
			hasCover = true
		}
		images = append(images, image)
	}
	if !hasCover && len(images) > 0 {
		images[0].IsCover = true
	}
	return images
}

func stockStatus(product *models.Product) string {
	if product.StockQuantity == nil {
		return constants.ProductStockStatusUnlimited
	}
	switch {
	case *product.StockQuantity <= 0:
		return constants.ProductStockStatusOutOfStock
	case *product.StockQuantity <= 5:
		return constants.ProductStockStatusLowStock
	default:
		return constants.ProductStockStatusInStock
	}
}
