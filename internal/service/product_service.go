package service

import (
	"context"
	"fmt"
	"time"

	"github.com/roikaa/tamshopex/internal/cache"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"
)

// 商品详情缓存 TTL
const productCacheTTL = 5 * time.Minute

// ProductListInput 商品列表查询输入
type ProductListInput struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
}

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// List 商品列表（含分类信息）
func (s *ProductService) List(input ProductListInput) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		CategoryID:   input.CategoryID,
		Search:       input.Search,
		WithCategory: true,
	})
}

// GetByID 商品详情（Redis 缓存，未启用缓存时直接读库）
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}

	key := productCacheKey(id)
	var cached models.Product
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	_ = cache.SetJSON(ctx, key, product, productCacheTTL)
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(product *models.Product) error {
	if product == nil || product.CategoryID == 0 || product.Name == "" {
		return ErrInvalidOrderInput
	}
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	return s.productRepo.Create(product)
}

// Update 更新商品并失效缓存
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	_ = cache.Del(ctx, productCacheKey(product.ID))
	return nil
}

// Delete 删除商品并失效缓存
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	_ = cache.Del(ctx, productCacheKey(id))
	return nil
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}
