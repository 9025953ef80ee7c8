package public

import (
	"strconv"

	handlershared "github.com/roikaa/tamshopex/internal/http/handlers/shared"
	"github.com/roikaa/tamshopex/internal/http/response"
	"github.com/roikaa/tamshopex/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
// GET /api/v1/public/products?page=&page_size=&category_id=&search=
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category id", nil)
			return
		}
		categoryID = uint(parsed)
	}

	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情
// GET /api/v1/public/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrProductNotFound {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get product failed", err)
		return
	}
	response.Success(c, product)
}

// ListCategories 分类列表（含商品数量）
// GET /api/v1/public/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
// GET /api/v1/public/categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		if err == service.ErrNotFound {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get category failed", err)
		return
	}
	response.Success(c, category)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(parsed), true
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
