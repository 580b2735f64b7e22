package service

import (
	"strings"

	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// BrandService 品牌服务
type BrandService struct {
	repo repository.BrandRepository
}

// NewBrandService 创建品牌服务
func NewBrandService(repo repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

// List 全部品牌（按排序权重）
func (s *BrandService) List() ([]models.Brand, error) {
	return s.repo.ListAll()
}

// GetBySlug 按 slug 查询品牌
func (s *BrandService) GetBySlug(brandSlug string) (*models.Brand, error) {
	brand, err := s.repo.GetBySlug(strings.TrimSpace(brandSlug))
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

// BrandInput 品牌输入
type BrandInput struct {
	Name      string
	Slug      string
	Logo      string
	SortOrder int
}

// Create 创建品牌
func (s *BrandService) Create(input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidParams
	}
	brand := models.Brand{
		Name:      name,
		Slug:      resolveSlug(input.Slug, name),
		Logo:      strings.TrimSpace(input.Logo),
		SortOrder: input.SortOrder,
	}
	if existing, err := s.repo.GetBySlug(brand.Slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSlugExists
	}
	if err := s.repo.Create(&brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// Update 更新品牌
func (s *BrandService) Update(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidParams
	}
	newSlug := resolveSlug(input.Slug, name)
	if existing, err := s.repo.GetBySlug(newSlug); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, ErrSlugExists
	}
	brand.Name = name
	brand.Slug = newSlug
	brand.Logo = strings.TrimSpace(input.Logo)
	brand.SortOrder = input.SortOrder
	if err := s.repo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete 删除品牌
func (s *BrandService) Delete(id uint) error {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	return s.repo.Delete(id)
}
