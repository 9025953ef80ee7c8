package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/roikaa/tamshopex/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:productrepo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createStockedProduct(t *testing.T, repo *GormProductRepository, name string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: 1,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:      stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockIsConditional(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createStockedProduct(t, repo, "conditional-stock", 5)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement over stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over stock affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 2 {
		t.Fatalf("stock want 2 got %d", got.Stock)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement to zero failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement to zero affected want 1 got %d", affected)
	}
}

func TestIncrementStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createStockedProduct(t, repo, "restock", 0)

	affected, err := repo.IncrementStock(product.ID, 4)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("increment affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 4 {
		t.Fatalf("stock want 4 got %d", got.Stock)
	}
}

func TestDecrementStockRejectsInvalidParams(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	if _, err := repo.DecrementStock(0, 1); err == nil {
		t.Fatalf("zero product id should fail")
	}
	if _, err := repo.DecrementStock(1, 0); err == nil {
		t.Fatalf("zero quantity should fail")
	}
}

func TestProductListFilters(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createStockedProduct(t, repo, "Blue Widget", 10)
	createStockedProduct(t, repo, "Red Widget", 10)
	other := &models.Product{
		CategoryID:  2,
		Name:        "Gadget",
		Description: "a widget-adjacent gadget",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:       10,
	}
	if err := repo.Create(other); err != nil {
		t.Fatalf("create gadget failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, CategoryID: 1})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("category filter want 2 got total=%d len=%d", total, len(products))
	}

	// 搜索同时命中名称与描述
	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "widget"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Fatalf("search filter want 3 got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list paged failed: %v", err)
	}
	if total != 3 || len(products) != 1 {
		t.Fatalf("pagination want total=3 len=1 got total=%d len=%d", total, len(products))
	}
}
