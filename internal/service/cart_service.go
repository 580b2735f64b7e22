package service

import (
	"errors"

	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// CartLine 购物车行视图
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image"`
	Price     models.Money    `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal models.Money    `json:"line_total"`
	OnSale    bool            `json:"on_sale"`
	Product   *models.Product `json:"-"`
}

// CartView 购物车视图
type CartView struct {
	Items     []CartLine   `json:"items"`
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
}

// Get 获取购物车明细与小计
func (s *CartService) Get(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUserWithItems(userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Items: []CartLine{}, Subtotal: models.NewMoneyFromInt(0)}
	if cart == nil {
		return view, nil
	}
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		line := CartLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Slug:      item.Product.Slug,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: item.Product.Price.MulInt(item.Quantity),
			OnSale:    item.Product.OnSale(),
			Product:   item.Product,
		}
		for _, image := range item.Product.Images {
			if image.IsCover {
				line.Image = image.URL
				break
			}
		}
		if line.Image == "" && len(item.Product.Images) > 0 {
			line.Image = item.Product.Images[0].URL
		}
		view.Items = append(view.Items, line)
		view.ItemCount += item.Quantity
		view.Subtotal = view.Subtotal.AddMoney(line.LineTotal)
	}
	return view, nil
}

// AddItem 加入购物车，数量在已有基础上累加
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.OnSale() {
		return ErrProductUnavailable
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	if product.StockQuantity != nil {
		// 上限校验基于加购后的总数量
		existing, err := s.cartRepo.GetByUserWithItems(userID)
		if err != nil {
			return err
		}
		current := 0
		if existing != nil {
			for _, item := range existing.Items {
				if item.ProductID == productID {
					current = item.Quantity
					break
				}
			}
		}
		if current+quantity > *product.StockQuantity {
			return &StockShortageError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   *product.StockQuantity,
			}
		}
	}
	if err := s.cartRepo.UpsertItem(cart.ID, productID, quantity); err != nil {
		return err
	}
	logger.Debugw("cart_item_added", "user_id", userID, "product_id", productID, "quantity", quantity)
	return nil
}

// SetItemQuantity 直接设定购物车某行数量
func (s *CartService) SetItemQuantity(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.StockQuantity != nil && quantity > *product.StockQuantity {
		return &StockShortageError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   *product.StockQuantity,
		}
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.SetItemQuantity(cart.ID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// RemoveItem 从购物车移除商品
func (s *CartService) RemoveItem(userID, productID uint) error {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(cart.ID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// Count 购物车商品件数（角标展示用）
func (s *CartService) Count(userID uint) (int64, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return 0, err
	}
	return s.cartRepo.CountItems(cart.ID)
}
