package repository

import (
	"errors"
	"strings"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetBySlug(slug string, onlyOnSale bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) error
	RestoreStock(productID uint, quantity int) error
	ReplaceImages(productID uint, images []models.ProductImage) error
	ListLowStock(threshold, limit int) ([]models.Product, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithRelations {
		query = query.Preload("Category").Preload("Brand").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("is_cover DESC, sort ASC, id ASC")
			})
	}
	if filter.OnlyOnSale {
		query = query.Where("status = ?", constants.ProductStatusOn)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BrandID != 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		op := likeOperator(r.db)
		query = query.Where("name "+op+" ? OR cpu "+op+" ? OR gpu "+op+" ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order(productListOrder(filter.Sort)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productListOrder(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "price_asc":
		return "price ASC, id DESC"
	case "price_desc":
		return "price DESC, id DESC"
	case "best_selling":
		return "sold_count DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyOnSale bool) (*models.Product, error) {
	query := r.db.Preload("Category").Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_cover DESC, sort ASC, id ASC")
		}).
		Where("slug = ?", slug)
	if onlyOnSale {
		query = query.Where("status = ?", constants.ProductStatusOn)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_cover DESC, sort ASC, id ASC")
		}).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock 扣减库存并累加销量。
// 条件更新保证并发下不会超卖；stock_quantity 为 NULL 的商品视为不限库存，只累加销量。
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND (stock_quantity IS NULL OR stock_quantity >= ?)", productID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("CASE WHEN stock_quantity IS NULL THEN NULL ELSE stock_quantity - ? END", quantity),
			"sold_count":     gorm.Expr("sold_count + ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock 订单取消时回补库存并回退已售数量
func (r *GormProductRepository) RestoreStock(productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return errors.New("invalid stock restore params")
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("CASE WHEN stock_quantity IS NULL THEN NULL ELSE stock_quantity + ? END", quantity),
			"sold_count":     gorm.Expr("CASE WHEN sold_count >= ? THEN sold_count - ? ELSE 0 END", quantity, quantity),
		}).Error
}

// IncrementStock 入库提升库存（stock_quantity 为 NULL 的商品不受影响）
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return errors.New("invalid stock increment params")
	}
	return r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity IS NOT NULL", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}

// ReplaceImages 重建商品图片列表
func (r *GormProductRepository) ReplaceImages(productID uint, images []models.ProductImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ID = 0
			images[i].ProductID = productID
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

// ListLowStock 获取低库存商品
func (r *GormProductRepository) ListLowStock(threshold, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var products []models.Product
	if err := r.db.Where("stock_quantity IS NOT NULL AND stock_quantity <= ?", threshold).
		Order("stock_quantity ASC, id ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
