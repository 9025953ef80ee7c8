package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/roikaa/tamshopex/internal/constants"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ordersvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderSvc := NewOrderService(orderRepo, productRepo, cartRepo, nil)
	cartSvc := NewCartService(cartRepo, productRepo)
	return orderSvc, cartSvc, db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
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

func reloadProductStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Stock
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return count
}

func validOrderInput(identity Identity, items []PlaceOrderItemInput, total float64) PlaceOrderInput {
	return PlaceOrderInput{
		Identity:        identity,
		CustomerName:    "Alice Doe",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "12 Main Street, Springfield",
		PaymentMethod:   "credit_card",
		Items:           items,
		Total:           models.NewMoneyFromDecimal(decimal.NewFromFloat(total)),
	}
}

func TestPlaceOrderDecrementsStockAndClearsCart(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	category := &models.Category{Name: "Electronics"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := createOrderTestProduct(t, db, "Smartphone X", 699.99, 10)
	identity := GuestIdentity("order-session")

	if _, err := cartSvc.AddItem(AddCartItemInput{Identity: identity, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	input := validOrderInput(identity, []PlaceOrderItemInput{
		{ProductID: product.ID, Quantity: 2, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(699.99))},
	}, 1399.98)
	input.Phone = "+1 555 0100"
	input.Notes = "leave at the door"

	order, err := orderSvc.PlaceOrder(input)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want PENDING got %s", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.Items[0].Product == nil {
		t.Fatalf("product should be expanded on order items")
	}
	if order.Items[0].Product.Category.ID != category.ID || order.Items[0].Product.Category.Name != "Electronics" {
		t.Fatalf("category should be expanded on order items, got %+v", order.Items[0].Product.Category)
	}
	if !strings.Contains(order.ShippingAddress, "Phone: +1 555 0100") {
		t.Fatalf("phone should be its own line: %q", order.ShippingAddress)
	}
	if !strings.Contains(order.ShippingAddress, "Notes: leave at the door") {
		t.Fatalf("notes should be their own line: %q", order.ShippingAddress)
	}

	if stock := reloadProductStock(t, db, product.ID); stock != 8 {
		t.Fatalf("stock want 8 got %d", stock)
	}

	detail, err := cartSvc.Detail(identity)
	if err != nil {
		t.Fatalf("cart detail failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("cart should be cleared after order: %+v", detail.Items)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	plenty := createOrderTestProduct(t, db, "Casual T-Shirt", 19.99, 100)
	scarce := createOrderTestProduct(t, db, "Laptop Pro", 1299.99, 1)

	input := validOrderInput(GuestIdentity("rollback-session"), []PlaceOrderItemInput{
		{ProductID: plenty.ID, Quantity: 2, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99))},
		{ProductID: scarce.ID, Quantity: 3, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(1299.99))},
	}, 3939.95)

	if _, err := orderSvc.PlaceOrder(input); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}

	if count := countRows(t, db, &models.Order{}); count != 0 {
		t.Fatalf("order rows after rollback want 0 got %d", count)
	}
	if count := countRows(t, db, &models.OrderItem{}); count != 0 {
		t.Fatalf("order item rows after rollback want 0 got %d", count)
	}
	if stock := reloadProductStock(t, db, plenty.ID); stock != 100 {
		t.Fatalf("first product stock should be untouched, want 100 got %d", stock)
	}
	if stock := reloadProductStock(t, db, scarce.ID); stock != 1 {
		t.Fatalf("second product stock should be untouched, want 1 got %d", stock)
	}
}

func TestPlaceOrderUnknownProductFailsEntirely(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Coffee Maker", 89.99, 40)

	input := validOrderInput(GuestIdentity("missing-session"), []PlaceOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99))},
		{ProductID: 9999, Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(10))},
	}, 99.99)

	if _, err := orderSvc.PlaceOrder(input); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if count := countRows(t, db, &models.Order{}); count != 0 {
		t.Fatalf("no order should be created, got %d rows", count)
	}
	if stock := reloadProductStock(t, db, product.ID); stock != 40 {
		t.Fatalf("stock should be untouched, want 40 got %d", stock)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Denim Jeans", 49.99, 10)
	identity := GuestIdentity("validate-session")
	item := PlaceOrderItemInput{ProductID: product.ID, Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99))}

	empty := validOrderInput(identity, nil, 0)
	if _, err := orderSvc.PlaceOrder(empty); !errors.Is(err, ErrInvalidOrderInput) {
		t.Fatalf("empty items want ErrInvalidOrderInput got %v", err)
	}

	badEmail := validOrderInput(identity, []PlaceOrderItemInput{item}, 49.99)
	badEmail.CustomerEmail = "not-an-email"
	if _, err := orderSvc.PlaceOrder(badEmail); !errors.Is(err, ErrInvalidOrderInput) {
		t.Fatalf("bad email want ErrInvalidOrderInput got %v", err)
	}

	noAddress := validOrderInput(identity, []PlaceOrderItemInput{item}, 49.99)
	noAddress.ShippingAddress = "   "
	if _, err := orderSvc.PlaceOrder(noAddress); !errors.Is(err, ErrInvalidOrderInput) {
		t.Fatalf("blank address want ErrInvalidOrderInput got %v", err)
	}

	zeroQty := validOrderInput(identity, []PlaceOrderItemInput{{ProductID: product.ID, Quantity: 0, Price: item.Price}}, 0)
	if _, err := orderSvc.PlaceOrder(zeroQty); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("zero quantity want ErrInvalidOrderItem got %v", err)
	}

	if count := countRows(t, db, &models.Order{}); count != 0 {
		t.Fatalf("no orders should exist after validation failures, got %d", count)
	}
}

func TestCancelOrderRestoresStockOnce(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Wireless Earbuds", 149.99, 20)

	input := validOrderInput(GuestIdentity("cancel-session"), []PlaceOrderItemInput{
		{ProductID: product.ID, Quantity: 5, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(149.99))},
	}, 749.95)
	order, err := orderSvc.PlaceOrder(input)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if stock := reloadProductStock(t, db, product.ID); stock != 15 {
		t.Fatalf("stock after order want 15 got %d", stock)
	}

	cancelled, err := orderSvc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", cancelled.Status)
	}
	if stock := reloadProductStock(t, db, product.ID); stock != 20 {
		t.Fatalf("stock after cancel want 20 got %d", stock)
	}

	if _, err := orderSvc.CancelOrder(order.ID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("double cancel want ErrOrderNotCancellable got %v", err)
	}
	if stock := reloadProductStock(t, db, product.ID); stock != 20 {
		t.Fatalf("stock must not be restored twice, want 20 got %d", stock)
	}
}

func TestUpdateStatusNormalizesAndValidates(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Chef Knife Set", 59.99, 10)

	input := validOrderInput(GuestIdentity("status-session"), []PlaceOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99))},
	}, 59.99)
	order, err := orderSvc.PlaceOrder(input)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	updated, err := orderSvc.UpdateStatus(order.ID, "  shipped ")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status want SHIPPED got %s", updated.Status)
	}

	if _, err := orderSvc.UpdateStatus(order.ID, "TELEPORTED"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("unknown status want ErrInvalidOrderStatus got %v", err)
	}

	// 状态机不限制迁移方向，交付后仍可改为取消
	updated, err = orderSvc.UpdateStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want DELIVERED got %s", updated.Status)
	}
	updated, err = orderSvc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel via status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", updated.Status)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	orderSvc, _, _ := setupOrderServiceTest(t)
	if _, err := orderSvc.UpdateStatus(12345, constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestGetByIDUnknownOrder(t *testing.T) {
	orderSvc, _, _ := setupOrderServiceTest(t)
	if _, err := orderSvc.GetByID(999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestListByUserFiltersOwner(t *testing.T) {
	orderSvc, _, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Go Book", 39.99, 30)
	item := PlaceOrderItemInput{ProductID: product.ID, Quantity: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99))}

	mine := validOrderInput(UserIdentity(1), []PlaceOrderItemInput{item}, 39.99)
	if _, err := orderSvc.PlaceOrder(mine); err != nil {
		t.Fatalf("place first order failed: %v", err)
	}
	other := validOrderInput(UserIdentity(2), []PlaceOrderItemInput{item}, 39.99)
	if _, err := orderSvc.PlaceOrder(other); err != nil {
		t.Fatalf("place second order failed: %v", err)
	}

	orders, total, err := orderSvc.ListByUser(1, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("user 1 should see exactly one order, total=%d len=%d", total, len(orders))
	}
	if orders[0].UserID == nil || *orders[0].UserID != 1 {
		t.Fatalf("unexpected order owner: %+v", orders[0].UserID)
	}
}
