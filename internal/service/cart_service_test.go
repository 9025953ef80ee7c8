package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cartsvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: 1,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:      stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartGetOrCreateIsLazy(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	identity := GuestIdentity("session-lazy")

	var count int64
	if err := db.Model(&models.Cart{}).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("carts before access want 0 got %d", count)
	}

	first, err := svc.GetOrCreate(identity)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	second, err := svc.GetOrCreate(identity)
	if err != nil {
		t.Fatalf("get or create again failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same identity should reuse cart: %d vs %d", first.ID, second.ID)
	}
}

func TestCartAddItemRequiresIdentity(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	_, err := svc.AddItem(AddCartItemInput{ProductID: 1, Quantity: 1})
	if !errors.Is(err, ErrIdentityRequired) {
		t.Fatalf("want ErrIdentityRequired got %v", err)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	_, err := svc.AddItem(AddCartItemInput{Identity: GuestIdentity("s1"), ProductID: 999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestCartAddItemAggregatesQuantityAgainstStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Wireless Earbuds", 149.99, 5)
	identity := GuestIdentity("s-stock")

	detail, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items after first add: %+v", detail.Items)
	}

	detail, err = svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 5 {
		t.Fatalf("same product should merge into one line: %+v", detail.Items)
	}

	if _, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("combined quantity over stock want ErrInsufficientStock got %v", err)
	}
}

func TestCartUpdateQuantityZeroRemovesItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Coffee Maker", 89.99, 10)
	identity := GuestIdentity("s-zero")

	detail, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := detail.Items[0].ID

	detail, err = svc.UpdateQuantity(identity, itemID, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("cart should be empty after zero update: %+v", detail.Items)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("item rows want 0 got %d", count)
	}
}

func TestCartUpdateQuantityChecksStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Denim Jeans", 49.99, 3)
	identity := GuestIdentity("s-upd")

	detail, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := detail.Items[0].ID

	if _, err := svc.UpdateQuantity(identity, itemID, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	detail, err = svc.UpdateQuantity(identity, itemID, 3)
	if err != nil {
		t.Fatalf("update within stock failed: %v", err)
	}
	if detail.Items[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", detail.Items[0].Quantity)
	}
}

func TestCartUpdateQuantityForeignItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Smartphone X", 699.99, 10)

	detail, err := svc.AddItem(AddCartItemInput{Identity: GuestIdentity("owner"), ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.UpdateQuantity(GuestIdentity("intruder"), detail.Items[0].ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign item want ErrCartItemNotFound got %v", err)
	}
}

func TestCartTotalUsesCurrentPrices(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Laptop Pro", 1000, 10)
	identity := GuestIdentity("s-total")

	detail, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !detail.Total.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("total want 2000 got %s", detail.Total)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", "1500").Error; err != nil {
		t.Fatalf("reprice product failed: %v", err)
	}

	detail, err = svc.Detail(identity)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if !detail.Total.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("total should follow current price, want 3000 got %s", detail.Total)
	}
}

func TestCartDetailDropsOrphanedItems(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Chef Knife Set", 59.99, 10)
	identity := GuestIdentity("s-orphan")

	if _, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Delete(&models.Product{}, product.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	detail, err := svc.Detail(identity)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("orphaned item should be dropped: %+v", detail.Items)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("orphaned item rows want 0 got %d", count)
	}
}

func TestCartClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestProduct(t, db, "Casual T-Shirt", 19.99, 100)
	second := createCartTestProduct(t, db, "Power Bank", 49.99, 100)
	identity := GuestIdentity("s-clear")

	if _, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{Identity: identity, ProductID: second.ID, Quantity: 2}); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if err := svc.Clear(identity); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	detail, err := svc.Detail(identity)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("cart should be empty after clear: %+v", detail.Items)
	}
}

func TestUserAndGuestCartsAreSeparate(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "Go Book", 39.99, 50)

	if _, err := svc.AddItem(AddCartItemInput{Identity: UserIdentity(7), ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("user add failed: %v", err)
	}
	guestDetail, err := svc.Detail(GuestIdentity("other-session"))
	if err != nil {
		t.Fatalf("guest detail failed: %v", err)
	}
	if len(guestDetail.Items) != 0 {
		t.Fatalf("guest cart should not see user items: %+v", guestDetail.Items)
	}
}
