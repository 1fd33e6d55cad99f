package service

import (
	"context"
	"strings"
	"time"

	"github.com/lepanier/lepanier-api/internal/cache"
	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/repository"
)

// CatalogService serves products and categories to the storefront, with
// a short Redis cache in front of the category list.
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

const categoryCacheKey = "catalog:categories"
const categoryCacheTTL = 5 * time.Minute

// NewCatalogService builds the catalog service.
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns active categories, cached briefly.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, categoryCacheKey, &cached); err != nil {
		logger.Warnw("category cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(true)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, categoryCacheKey, categories, categoryCacheTTL); err != nil {
		logger.Warnw("category cache write failed", "error", err)
	}
	return categories, nil
}

// ListProducts returns a page of active products.
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetProduct fetches one product by slug or numeric id string.
func (s *CatalogService) GetProduct(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Admin-side catalog management below. Writes invalidate the category
// cache so the storefront list stays current.

// CreateCategory inserts a category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.categoryRepo.Create(category); err != nil {
		return err
	}
	s.invalidateCategoryCache(ctx)
	return nil
}

// UpdateCategory saves a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, category *models.Category) error {
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return err
	}
	s.invalidateCategoryCache(ctx)
	return nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCategoryCache(ctx)
	return nil
}

// CreateProduct inserts a product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.productRepo.Create(product)
}

// UpdateProduct saves a product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Update(product)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

// ListAdminProducts returns a page of all products for the dashboard.
func (s *CatalogService) ListAdminProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

func (s *CatalogService) invalidateCategoryCache(ctx context.Context) {
	if err := cache.Del(ctx, categoryCacheKey); err != nil {
		logger.Warnw("category cache invalidation failed", "error", err)
	}
}
