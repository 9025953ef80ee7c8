package service

import (
	"time"

	"github.com/roikaa/tamshopex/internal/logger"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Subtotal  models.Money    `json:"subtotal"`
	Product   *models.Product `json:"product"`
}

// CartDetail 购物车详情（用于响应）
// Total 每次读取时按当前商品单价重新计算，购物车本身不落库总额。
type CartDetail struct {
	CartID uint             `json:"cart_id"`
	Items  []CartItemDetail `json:"items"`
	Total  models.Money     `json:"total"`
}

// AddCartItemInput 添加购物车项输入
type AddCartItemInput struct {
	Identity  Identity
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreate 获取当前标识的购物车，不存在则创建（懒创建）
func (s *CartService) GetOrCreate(identity Identity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}

	var cart *models.Cart
	var err error
	if identity.IsUser() {
		cart, err = s.cartRepo.GetByUser(identity.UserID)
	} else {
		cart, err = s.cartRepo.GetBySession(identity.SessionID)
	}
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now()
	cart = &models.Cart{CreatedAt: now, UpdatedAt: now}
	if identity.IsUser() {
		userID := identity.UserID
		cart.UserID = &userID
	} else {
		sessionID := identity.SessionID
		cart.SessionID = &sessionID
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Detail 获取购物车详情（含商品信息与实时总额）
func (s *CartService) Detail(identity Identity) (*CartDetail, error) {
	cart, err := s.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	full, err := s.cartRepo.GetWithItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return &CartDetail{CartID: cart.ID, Items: []CartItemDetail{}}, nil
	}

	details := make([]CartItemDetail, 0, len(full.Items))
	total := decimal.Zero
	for _, item := range full.Items {
		product := item.Product
		if product == nil || product.ID == 0 {
			// 商品已被删除，清理残留购物车项
			if err := s.cartRepo.DeleteItem(item.ID); err != nil {
				logger.Warnw("delete orphan cart item failed", "cart_item_id", item.ID, "error", err)
			}
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		details = append(details, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  models.NewMoneyFromDecimal(subtotal),
			Product:   product,
		})
	}

	return &CartDetail{
		CartID: cart.ID,
		Items:  details,
		Total:  models.NewMoneyFromDecimal(total),
	}, nil
}

// AddItem 添加商品到购物车
// 同商品已在购物车中时叠加数量，并按叠加后的总量校验库存。
func (s *CartService) AddItem(input AddCartItemInput) (*CartDetail, error) {
	if !input.Identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidOrderItem
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.GetOrCreate(input.Identity)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByCartAndProduct(cart.ID, input.ProductID)
	if err != nil {
		return nil, err
	}

	combined := input.Quantity
	if existing != nil {
		combined += existing.Quantity
	}
	if combined > product.Stock {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, combined); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.Detail(input.Identity)
}

// UpdateQuantity 修改购物车项数量
// quantity 为 0 时等价于删除该项。
func (s *CartService) UpdateQuantity(identity Identity, itemID uint, quantity int) (*CartDetail, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if itemID == 0 || quantity < 0 {
		return nil, ErrInvalidOrderItem
	}

	item, err := s.ownedItem(identity, itemID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(item.ID); err != nil {
			return nil, err
		}
		return s.Detail(identity)
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Detail(identity)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(identity Identity, itemID uint) (*CartDetail, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if itemID == 0 {
		return nil, ErrInvalidOrderItem
	}

	item, err := s.ownedItem(identity, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.Detail(identity)
}

// Clear 清空购物车
func (s *CartService) Clear(identity Identity) error {
	if !identity.Valid() {
		return ErrIdentityRequired
	}
	cart, err := s.GetOrCreate(identity)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearByCart(cart.ID)
}

// ownedItem 校验购物车项归属于当前标识的购物车
func (s *CartService) ownedItem(identity Identity, itemID uint) (*models.CartItem, error) {
	cart, err := s.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
