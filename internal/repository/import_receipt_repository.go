package repository

import (
	"errors"
	"strings"

	"github.com/laptopstore-next/internal/models"

	"gorm.io/gorm"
)

// ImportReceiptRepository 入库单数据访问接口
type ImportReceiptRepository interface {
	Create(receipt *models.ImportReceipt, details []models.ImportDetail) error
	GetByID(id uint) (*models.ImportReceipt, error)
	List(filter ImportReceiptListFilter) ([]models.ImportReceipt, int64, error)
	WithTx(tx *gorm.DB) *GormImportReceiptRepository
}

// GormImportReceiptRepository GORM 实现
type GormImportReceiptRepository struct {
	db *gorm.DB
}

// NewImportReceiptRepository 创建入库单仓库
func NewImportReceiptRepository(db *gorm.DB) *GormImportReceiptRepository {
	return &GormImportReceiptRepository{db: db}
}

// WithTx 绑定事务
func (r *GormImportReceiptRepository) WithTx(tx *gorm.DB) *GormImportReceiptRepository {
	if tx == nil {
		return r
	}
	return &GormImportReceiptRepository{db: tx}
}

// Create 创建入库单与明细
func (r *GormImportReceiptRepository) Create(receipt *models.ImportReceipt, details []models.ImportDetail) error {
	if err := r.db.Create(receipt).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].ReceiptID = receipt.ID
	}
	if len(details) > 0 {
		if err := r.db.Create(&details).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取入库单
func (r *GormImportReceiptRepository) GetByID(id uint) (*models.ImportReceipt, error) {
	var receipt models.ImportReceipt
	if err := r.db.Preload("Details").Preload("Details.Product").
		First(&receipt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &receipt, nil
}

// List 入库单列表
func (r *GormImportReceiptRepository) List(filter ImportReceiptListFilter) ([]models.ImportReceipt, int64, error) {
	query := r.db.Model(&models.ImportReceipt{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		op := likeOperator(r.db)
		query = query.Where("receipt_no "+op+" ? OR supplier "+op+" ?", like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var receipts []models.ImportReceipt
	if err := query.Preload("Details").Order("id DESC").Find(&receipts).Error; err != nil {
		return nil, 0, err
	}
	return receipts, total, nil
}
