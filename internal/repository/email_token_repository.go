package repository

import (
	"errors"
	"time"

	"github.com/laptopstore-next/internal/models"

	"gorm.io/gorm"
)

// EmailTokenRepository 邮箱验证令牌数据访问接口
type EmailTokenRepository interface {
	Create(token *models.EmailVerificationToken) error
	GetByToken(token string) (*models.EmailVerificationToken, error)
	MarkUsed(id uint, usedAt time.Time) error
	VoidPending(userID uint, purpose string) error
	LatestByUser(userID uint, purpose string) (*models.EmailVerificationToken, error)
}

// GormEmailTokenRepository GORM 实现
type GormEmailTokenRepository struct {
	db *gorm.DB
}

// NewEmailTokenRepository 创建令牌仓库
func NewEmailTokenRepository(db *gorm.DB) *GormEmailTokenRepository {
	return &GormEmailTokenRepository{db: db}
}

// Create 创建令牌
func (r *GormEmailTokenRepository) Create(token *models.EmailVerificationToken) error {
	return r.db.Create(token).Error
}

// GetByToken 根据令牌值获取记录
func (r *GormEmailTokenRepository) GetByToken(token string) (*models.EmailVerificationToken, error) {
	var record models.EmailVerificationToken
	if err := r.db.Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkUsed 标记令牌已使用
func (r *GormEmailTokenRepository) MarkUsed(id uint, usedAt time.Time) error {
	return r.db.Model(&models.EmailVerificationToken{}).
		Where("id = ?", id).
		Update("used_at", usedAt).Error
}

// VoidPending 作废同一用户同一用途下尚未使用的令牌（重发时旧令牌立即失效）
func (r *GormEmailTokenRepository) VoidPending(userID uint, purpose string) error {
	return r.db.Model(&models.EmailVerificationToken{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, purpose).
		Update("used_at", time.Now()).Error
}

// LatestByUser 获取用户最近一次签发的令牌
func (r *GormEmailTokenRepository) LatestByUser(userID uint, purpose string) (*models.EmailVerificationToken, error) {
	var record models.EmailVerificationToken
	if err := r.db.Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("id DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
