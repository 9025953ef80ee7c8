package service

import (
	"strings"
	"time"

	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"
)

// CategoryDetail 分类详情（含商品数量）
type CategoryDetail struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表（含各分类商品数量）
func (s *CategoryService) List() ([]CategoryDetail, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	details := make([]CategoryDetail, 0, len(categories))
	for _, category := range categories {
		count, err := s.categoryRepo.CountProducts(category.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, CategoryDetail{Category: category, ProductCount: count})
	}
	return details, nil
}

// GetByID 分类详情
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类（名称唯一）
func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrInvalidCategoryName
	}
	exist, err := s.categoryRepo.GetByName(trimmed)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryNameTaken
	}
	category := &models.Category{
		Name:        trimmed,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now(),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, name, description string) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrInvalidCategoryName
	}
	if trimmed != category.Name {
		exist, err := s.categoryRepo.GetByName(trimmed)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != id {
			return nil, ErrCategoryNameTaken
		}
	}
	category.Name = trimmed
	category.Description = strings.TrimSpace(description)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（分类下仍有商品时拒绝）
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}
	return s.categoryRepo.Delete(id)
}
