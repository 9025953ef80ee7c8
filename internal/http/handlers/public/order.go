package public

import (
	"strconv"

	handlershared "github.com/roikaa/tamshopex/internal/http/handlers/shared"
	"github.com/roikaa/tamshopex/internal/http/response"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderItemRequest 下单商品项请求
type CreateOrderItemRequest struct {
	ProductID uint         `json:"product_id" binding:"required"`
	Quantity  int          `json:"quantity" binding:"required"`
	Price     models.Money `json:"price"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CustomerName    string                   `json:"customer_name" binding:"required"`
	CustomerEmail   string                   `json:"customer_email" binding:"required"`
	ShippingAddress string                   `json:"shipping_address" binding:"required"`
	Phone           string                   `json:"phone"`
	Notes           string                   `json:"notes"`
	PaymentMethod   string                   `json:"payment_method" binding:"required"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required"`
	Total           models.Money             `json:"total"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder 下单
// POST /api/v1/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	identity, _ := resolveIdentity(c)
	items := make([]service.PlaceOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PlaceOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		Identity:        identity,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		Items:           items,
		Total:           req.Total,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单列表
// GET /api/v1/orders?page=&page_size=
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 订单详情
// GET /api/v1/orders/:id
// 用户订单仅归属用户可见，游客订单凭订单号可查。
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		respondOrderStatusError(c, err)
		return
	}
	if order.UserID != nil && *order.UserID != currentUserID(c) {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态
// PATCH /api/v1/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		respondOrderStatusError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单并回补库存
// POST /api/v1/orders/:id/cancel
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(orderID)
	if err != nil {
		respondOrderStatusError(c, err)
		return
	}
	response.Success(c, order)
}
