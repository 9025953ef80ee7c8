package public

import (
	"github.com/roikaa/tamshopex/internal/http/response"
	"github.com/roikaa/tamshopex/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 添加购物车项请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 修改购物车项数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车详情
// GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	identity, ok := resolveIdentity(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "missing user or session identity", nil)
		return
	}
	detail, err := h.CartService.Detail(identity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// AddCartItem 添加商品到购物车
// POST /api/v1/cart/items
func (h *Handler) AddCartItem(c *gin.Context) {
	identity, ok := resolveIdentity(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "missing user or session identity", nil)
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	detail, err := h.CartService.AddItem(service.AddCartItemInput{
		Identity:  identity,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateCartItem 修改购物车项数量（0 表示删除）
// PUT /api/v1/cart/items/:id
func (h *Handler) UpdateCartItem(c *gin.Context) {
	identity, ok := resolveIdentity(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "missing user or session identity", nil)
		return
	}
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	detail, err := h.CartService.UpdateQuantity(identity, itemID, *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// RemoveCartItem 删除购物车项
// DELETE /api/v1/cart/items/:id
func (h *Handler) RemoveCartItem(c *gin.Context) {
	identity, ok := resolveIdentity(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "missing user or session identity", nil)
		return
	}
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.CartService.RemoveItem(identity, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// ClearCart 清空购物车
// DELETE /api/v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	identity, ok := resolveIdentity(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "missing user or session identity", nil)
		return
	}
	if err := h.CartService.Clear(identity); err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}
