package service

import (
	"strings"

	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService 采购入库服务
type InventoryService struct {
	receiptRepo repository.ImportReceiptRepository
	productRepo repository.ProductRepository
}

// NewInventoryService 创建入库服务
func NewInventoryService(receiptRepo repository.ImportReceiptRepository, productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{receiptRepo: receiptRepo, productRepo: productRepo}
}

// ImportLineInput 入库明细输入
type ImportLineInput struct {
	ProductID uint
	Quantity  int
	UnitCost  decimal.Decimal
}

// ImportInput 入库单输入
type ImportInput struct {
	Supplier  string
	Note      string
	CreatedBy uint
	Lines     []ImportLineInput
}

// CreateReceipt 创建入库单并提升库存
// 建单与库存变更在同一事务内完成
func (s *InventoryService) CreateReceipt(input ImportInput) (*models.ImportReceipt, error) {
	if len(input.Lines) == 0 {
		return nil, ErrImportEmpty
	}
	for _, line := range input.Lines {
		if line.ProductID == 0 || line.Quantity <= 0 || line.UnitCost.IsNegative() {
			return nil, ErrInvalidParams
		}
	}

	var created *models.ImportReceipt
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		receiptRepo := s.receiptRepo.WithTx(tx)

		totalCost := decimal.Zero
		details := make([]models.ImportDetail, 0, len(input.Lines))
		for _, line := range input.Lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			lineCost := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
			totalCost = totalCost.Add(lineCost)
			details = append(details, models.ImportDetail{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitCost:  models.NewMoneyFromDecimal(line.UnitCost.Round(2)),
			})
		}

		receipt := &models.ImportReceipt{
			ReceiptNo: generateReceiptNo(),
			Supplier:  strings.TrimSpace(input.Supplier),
			Note:      strings.TrimSpace(input.Note),
			TotalCost: models.NewMoneyFromDecimal(totalCost.Round(2)),
			CreatedBy: input.CreatedBy,
		}
		if err := receiptRepo.Create(receipt, details); err != nil {
			return err
		}

		// 不限库存（NULL）的商品入库不改动库存值
		for _, line := range input.Lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product != nil && product.StockQuantity != nil {
				if err := productRepo.IncrementStock(line.ProductID, line.Quantity); err != nil {
					return err
				}
			}
		}

		created = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("import_receipt_created",
		"receipt_id", created.ID,
		"receipt_no", created.ReceiptNo,
		"lines", len(input.Lines),
	)
	return s.Get(created.ID)
}

// Get 入库单详情
func (s *InventoryService) Get(id uint) (*models.ImportReceipt, error) {
	receipt, err := s.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrImportNotFound
	}
	return receipt, nil
}

// List 入库单列表
func (s *InventoryService) List(filter repository.ImportReceiptListFilter) ([]models.ImportReceipt, int64, error) {
	return s.receiptRepo.List(filter)
}
