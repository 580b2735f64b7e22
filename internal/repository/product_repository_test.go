package repository

import (
	"fmt"
	"testing"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepoTest(t *testing.T) *GormProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewProductRepository(db)
}

func repoIntPtr(n int) *int { return &n }

func repoInt64Ptr(n int64) *int64 { return &n }

func seedProduct(t *testing.T, repo *GormProductRepository, p models.Product) models.Product {
	t.Helper()
	if p.Status == "" {
		p.Status = constants.ProductStatusOn
	}
	if err := repo.Create(&p); err != nil {
		t.Fatalf("seed product %s: %v", p.Slug, err)
	}
	return p
}

func seedCatalog(t *testing.T, repo *GormProductRepository) {
	t.Helper()
	seedProduct(t, repo, models.Product{
		Name: "ASUS ROG Strix G16", Slug: "asus-rog-strix-g16",
		Price: models.NewMoneyFromInt(45990000), CategoryID: 1, BrandID: 1,
		CPU: "Intel Core i9-14900HX", GPU: "RTX 4070",
		StockQuantity: repoIntPtr(5), SoldCount: 40,
	})
	seedProduct(t, repo, models.Product{
		Name: "Lenovo ThinkPad X1 Carbon", Slug: "thinkpad-x1-carbon",
		Price: models.NewMoneyFromInt(38990000), CategoryID: 2, BrandID: 2,
		CPU: "Intel Core Ultra 7", GPU: "Intel Arc",
		StockQuantity: repoIntPtr(8), SoldCount: 120,
	})
	seedProduct(t, repo, models.Product{
		Name: "Acer Aspire 5", Slug: "acer-aspire-5",
		Price: models.NewMoneyFromInt(14990000), CategoryID: 2, BrandID: 3,
		CPU: "AMD Ryzen 5 7530U", GPU: "Radeon Graphics",
		SoldCount: 300,
	})
	seedProduct(t, repo, models.Product{
		Name: "Dell XPS 13", Slug: "dell-xps-13",
		Price: models.NewMoneyFromInt(42990000), CategoryID: 2, BrandID: 4,
		CPU: "Intel Core Ultra 5", GPU: "Intel Arc",
		StockQuantity: repoIntPtr(2), SoldCount: 15,
		Status: constants.ProductStatusOff,
	})
}

func TestProductListFilters(t *testing.T) {
	repo := setupProductRepoTest(t)
	seedCatalog(t, repo)

	cases := []struct {
		name      string
		filter    ProductListFilter
		wantSlugs []string
		wantTotal int64
	}{
		{
			name:      "only_on_sale_excludes_off",
			filter:    ProductListFilter{OnlyOnSale: true, Sort: "price_asc"},
			wantSlugs: []string{"acer-aspire-5", "thinkpad-x1-carbon", "asus-rog-strix-g16"},
			wantTotal: 3,
		},
		{
			name:      "category",
			filter:    ProductListFilter{CategoryID: 1},
			wantSlugs: []string{"asus-rog-strix-g16"},
			wantTotal: 1,
		},
		{
			name:      "brand",
			filter:    ProductListFilter{BrandID: 2},
			wantSlugs: []string{"thinkpad-x1-carbon"},
			wantTotal: 1,
		},
		{
			name: "price_range",
			filter: ProductListFilter{
				PriceMin: repoInt64Ptr(20000000),
				PriceMax: repoInt64Ptr(40000000),
			},
			wantSlugs: []string{"thinkpad-x1-carbon"},
			wantTotal: 1,
		},
		{
			name:      "search_matches_cpu",
			filter:    ProductListFilter{Search: "Ryzen", OnlyOnSale: true},
			wantSlugs: []string{"acer-aspire-5"},
			wantTotal: 1,
		},
		{
			name:      "search_matches_name",
			filter:    ProductListFilter{Search: "ThinkPad"},
			wantSlugs: []string{"thinkpad-x1-carbon"},
			wantTotal: 1,
		},
		{
			name:      "best_selling_sort",
			filter:    ProductListFilter{OnlyOnSale: true, Sort: "best_selling"},
			wantSlugs: []string{"acer-aspire-5", "thinkpad-x1-carbon", "asus-rog-strix-g16"},
			wantTotal: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, total, err := repo.List(tc.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if total != tc.wantTotal {
				t.Fatalf("expected total %d, got %d", tc.wantTotal, total)
			}
			if len(products) != len(tc.wantSlugs) {
				t.Fatalf("expected %d products, got %d", len(tc.wantSlugs), len(products))
			}
			for i, slug := range tc.wantSlugs {
				if products[i].Slug != slug {
					t.Fatalf("position %d: expected %s, got %s", i, slug, products[i].Slug)
				}
			}
		})
	}
}

func TestProductListPagination(t *testing.T) {
	repo := setupProductRepoTest(t)
	seedCatalog(t, repo)

	products, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product on page 2, got %d", len(products))
	}
}

func TestDecrementStockGuard(t *testing.T) {
	repo := setupProductRepoTest(t)
	tracked := seedProduct(t, repo, models.Product{
		Name: "ThinkBook 14", Slug: "thinkbook-14",
		Price: models.NewMoneyFromInt(17990000), CategoryID: 1, BrandID: 1,
		StockQuantity: repoIntPtr(3),
	})
	unlimited := seedProduct(t, repo, models.Product{
		Name: "MacBook Air M4", Slug: "macbook-air-m4",
		Price: models.NewMoneyFromInt(27990000), CategoryID: 1, BrandID: 2,
	})

	affected, err := repo.DecrementStock(tracked.ID, 2)
	if err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}
	got, err := repo.GetByID(tracked.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 1 {
		t.Fatalf("expected stock 1, got %+v", got.StockQuantity)
	}
	if got.SoldCount != 2 {
		t.Fatalf("expected sold count 2, got %d", got.SoldCount)
	}

	// 库存不足时不更新任何行
	affected, err = repo.DecrementStock(tracked.ID, 5)
	if err != nil {
		t.Fatalf("DecrementStock shortage: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows on shortage, got %d", affected)
	}

	// 不限库存商品只累计销量
	affected, err = repo.DecrementStock(unlimited.ID, 10)
	if err != nil {
		t.Fatalf("DecrementStock unlimited: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row for unlimited product, got %d", affected)
	}
	got, err = repo.GetByID(unlimited.ID)
	if err != nil {
		t.Fatalf("GetByID unlimited: %v", err)
	}
	if got.StockQuantity != nil {
		t.Fatalf("unlimited product stock should stay NULL, got %d", *got.StockQuantity)
	}
	if got.SoldCount != 10 {
		t.Fatalf("expected sold count 10, got %d", got.SoldCount)
	}
}

func TestRestoreStockFloorsSoldCount(t *testing.T) {
	repo := setupProductRepoTest(t)
	product := seedProduct(t, repo, models.Product{
		Name: "HP Pavilion 15", Slug: "hp-pavilion-15",
		Price: models.NewMoneyFromInt(16490000), CategoryID: 1, BrandID: 1,
		StockQuantity: repoIntPtr(1), SoldCount: 2,
	})

	if err := repo.RestoreStock(product.ID, 5); err != nil {
		t.Fatalf("RestoreStock: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 6 {
		t.Fatalf("expected stock 6, got %+v", got.StockQuantity)
	}
	if got.SoldCount != 0 {
		t.Fatalf("sold count should floor at 0, got %d", got.SoldCount)
	}
}

func TestListLowStock(t *testing.T) {
	repo := setupProductRepoTest(t)
	seedProduct(t, repo, models.Product{
		Name: "A", Slug: "low-a", Price: models.NewMoneyFromInt(1000000),
		CategoryID: 1, BrandID: 1, StockQuantity: repoIntPtr(2),
	})
	seedProduct(t, repo, models.Product{
		Name: "B", Slug: "low-b", Price: models.NewMoneyFromInt(1000000),
		CategoryID: 1, BrandID: 1, StockQuantity: repoIntPtr(9),
	})
	seedProduct(t, repo, models.Product{
		Name: "C", Slug: "ok-c", Price: models.NewMoneyFromInt(1000000),
		CategoryID: 1, BrandID: 1, StockQuantity: repoIntPtr(50),
	})
	seedProduct(t, repo, models.Product{
		Name: "D", Slug: "unlimited-d", Price: models.NewMoneyFromInt(1000000),
		CategoryID: 1, BrandID: 1,
	})

	products, err := repo.ListLowStock(10, 10)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 low stock products, got %d", len(products))
	}
	if products[0].Slug != "low-a" || products[1].Slug != "low-b" {
		t.Fatalf("unexpected order: %s, %s", products[0].Slug, products[1].Slug)
	}
}
