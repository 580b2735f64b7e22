package service

import (
	"strings"

	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List 全部分类（按排序权重）
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.ListAll()
}

// GetBySlug 按 slug 查询分类
func (s *CategoryService) GetBySlug(categorySlug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(categorySlug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CategoryInput 分类输入
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidParams
	}
	category := models.Category{
		Name:        name,
		Slug:        resolveSlug(input.Slug, name),
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
	}
	if existing, err := s.repo.GetBySlug(category.Slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSlugExists
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
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
	category.Name = name
	category.Slug = newSlug
	category.Description = strings.TrimSpace(input.Description)
	category.SortOrder = input.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.repo.Delete(id)
}
