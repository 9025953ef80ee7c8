package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/roikaa/tamshopex/internal/constants"
	"github.com/roikaa/tamshopex/internal/logger"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/queue"
	"github.com/roikaa/tamshopex/internal/repository"

	"gorm.io/gorm"
)

// PlaceOrderItemInput 下单商品项输入
type PlaceOrderItemInput struct {
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	Identity        Identity
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Phone           string
	Notes           string
	PaymentMethod   string
	Items           []PlaceOrderItemInput
	Total           models.Money
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// PlaceOrder 下单
// 校验通过后在单个事务内：创建订单与订单项、逐项条件扣减库存、清空购物车。
// 任意一项库存不足或商品缺失则整单失败回滚。
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if err := validatePlaceOrderInput(input); err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productSet := make(map[uint]struct{}, len(products))
	for _, p := range products {
		productSet[p.ID] = struct{}{}
	}
	for _, item := range input.Items {
		if _, ok := productSet[item.ProductID]; !ok {
			return nil, ErrProductNotFound
		}
	}

	now := time.Now()
	order := &models.Order{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		ShippingAddress: composeShippingAddress(input.ShippingAddress, input.Phone, input.Notes),
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		Total:           input.Total,
		Status:          constants.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.Identity.IsUser() {
		userID := input.Identity.UserID
		order.UserID = &userID
	}
	order.Items = make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			CreatedAt: now,
		})
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		txProductRepo := s.productRepo.WithTx(tx)
		for _, item := range input.Items {
			affected, err := txProductRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}
		return s.clearCartInTx(tx, input.Identity)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderPlacedEmail(order)
	return s.orderRepo.GetByID(order.ID)
}

// UpdateStatus 更新订单状态（枚举校验，不限制状态迁移方向）
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	normalized := NormalizeOrderStatus(status)
	if !IsValidOrderStatus(normalized) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(orderID, normalized); err != nil {
		return nil, err
	}

	if normalized != order.Status {
		s.enqueueOrderStatusEmail(order, normalized)
	}
	return s.orderRepo.GetByID(orderID)
}

// CancelOrder 取消订单并回补库存
// 已取消的订单不允许重复取消（避免重复回补库存）。
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderNotCancellable
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(orderID, constants.OrderStatusCancelled); err != nil {
			return err
		}
		txProductRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := txProductRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderStatusEmail(order, constants.OrderStatusCancelled)
	return s.orderRepo.GetByID(orderID)
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrIdentityRequired
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// clearCartInTx 在事务内清空当前标识的购物车（无购物车时为空操作）
func (s *OrderService) clearCartInTx(tx *gorm.DB, identity Identity) error {
	if !identity.Valid() {
		return nil
	}
	txCartRepo := s.cartRepo.WithTx(tx)
	var cart *models.Cart
	var err error
	if identity.IsUser() {
		cart, err = txCartRepo.GetByUser(identity.UserID)
	} else {
		cart, err = txCartRepo.GetBySession(identity.SessionID)
	}
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return txCartRepo.ClearByCart(cart.ID)
}

func (s *OrderService) enqueueOrderPlacedEmail(order *models.Order) {
	if s.queueClient == nil || order == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderPlacedEmail(order.ID, order.CustomerEmail); err != nil {
		logger.Warnw("enqueue order placed email failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) enqueueOrderStatusEmail(order *models.Order, status string) {
	if s.queueClient == nil || order == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(order.ID, order.CustomerEmail, status); err != nil {
		logger.Warnw("enqueue order status email failed", "order_id", order.ID, "status", status, "error", err)
	}
}

func validatePlaceOrderInput(input PlaceOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.ShippingAddress) == "" ||
		strings.TrimSpace(input.PaymentMethod) == "" {
		return ErrInvalidOrderInput
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		return ErrInvalidOrderInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidOrderInput
	}
	if len(input.Items) == 0 {
		return ErrInvalidOrderInput
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.Price.IsNegative() {
			return ErrInvalidOrderItem
		}
	}
	if input.Total.IsNegative() {
		return ErrInvalidOrderInput
	}
	return nil
}

// composeShippingAddress 拼接收货地址，电话与备注各占独立一行。
func composeShippingAddress(address, phone, notes string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(address))
	if trimmed := strings.TrimSpace(phone); trimmed != "" {
		b.WriteString("\nPhone: ")
		b.WriteString(trimmed)
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		b.WriteString("\nNotes: ")
		b.WriteString(trimmed)
	}
	return b.String()
}
