package repository

import (
	"errors"
	"time"

	"github.com/laptopstore-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	GetByUserWithItems(userID uint) (*models.Cart, error)
	UpsertItem(cartID, productID uint, quantity int) error
	SetItemQuantity(cartID, productID uint, quantity int) error
	DeleteItem(cartID, productID uint) error
	ClearItems(cartID uint) error
	CountItems(cartID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetOrCreateByUser 获取用户购物车，不存在时创建
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByUserWithItems 获取用户购物车及明细（含商品信息）
func (r *GormCartRepository) GetByUserWithItems(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("updated_at DESC")
	}).Preload("Items.Product").Preload("Items.Product.Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("is_cover DESC, sort ASC, id ASC")
	}).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItem 添加购物车项，已存在时累加数量
func (r *GormCartRepository) UpsertItem(cartID, productID uint, quantity int) error {
	var existing models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
		return r.db.Create(&item).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"quantity":   existing.Quantity + quantity,
		"updated_at": time.Now(),
	}).Error
}

// SetItemQuantity 覆盖购物车项数量
func (r *GormCartRepository) SetItemQuantity(cartID, productID uint, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// CountItems 统计购物车项数量
func (r *GormCartRepository) CountItems(cartID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
