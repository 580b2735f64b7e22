package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryTest(t *testing.T) *CategoryService {
	t.Helper()
	dsn := fmt.Sprintf("file:category_svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db))
}

func TestCategoryCreateDerivesSlugFromName(t *testing.T) {
	svc := setupCategoryTest(t)

	category, err := svc.Create(CategoryInput{Name: "Laptop Văn Phòng"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "laptop-van-phong" {
		t.Fatalf("expected derived slug laptop-van-phong, got %s", category.Slug)
	}

	explicit, err := svc.Create(CategoryInput{Name: "Workstation", Slug: " may-tram "})
	if err != nil {
		t.Fatalf("create with explicit slug: %v", err)
	}
	if explicit.Slug != "may-tram" {
		t.Fatalf("expected explicit slug may-tram, got %s", explicit.Slug)
	}
}

func TestCategoryCreateDuplicateSlug(t *testing.T) {
	svc := setupCategoryTest(t)

	if _, err := svc.Create(CategoryInput{Name: "Ultrabook"}); err != nil {
		t.Fatalf("create first category: %v", err)
	}
	_, err := svc.Create(CategoryInput{Name: "Khác", Slug: "ultrabook"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestCategoryUpdateKeepsOwnSlug(t *testing.T) {
	svc := setupCategoryTest(t)

	category, err := svc.Create(CategoryInput{Name: "Laptop Gaming"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	updated, err := svc.Update(category.ID, CategoryInput{
		Name:        "Laptop Gaming",
		Slug:        category.Slug,
		Description: "Máy cấu hình cao cho game thủ",
		SortOrder:   2,
	})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Description == "" || updated.SortOrder != 2 {
		t.Fatalf("update not applied: %+v", updated)
	}
}
