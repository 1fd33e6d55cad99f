package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/repository"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceAmount string `json:"price_amount" binding:"required"`
	Unit        string `json:"unit"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCategory inserts a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category := models.Category{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.CatalogService.CreateCategory(c.Request.Context(), &category); err != nil {
		handlershared.RespondError(c, response.CodeInternal, "category create failed", err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// UpdateCategory saves a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category := models.Category{
		ID:          id,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.CatalogService.UpdateCategory(c.Request.Context(), &category); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "category update failed", err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		handlershared.RespondError(c, response.CodeInternal, "category delete failed", err)
		return
	}
	response.Success(c, nil)
}

// ListProducts returns a page of all products.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.CatalogService.ListAdminProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "catalog lookup failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.BuildPagination(page, pageSize, total))
}

// CreateProduct inserts a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, ok := buildProduct(c, 0, req)
	if !ok {
		return
	}
	if err := h.CatalogService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "product create failed", err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// UpdateProduct saves a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, ok := buildProduct(c, id, req)
	if !ok {
		return
	}
	if err := h.CatalogService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "product update failed", err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(id); err != nil {
		handlershared.RespondError(c, response.CodeInternal, "product delete failed", err)
		return
	}
	response.Success(c, nil)
}

func buildProduct(c *gin.Context, id uint, req ProductRequest) (*models.Product, bool) {
	price, err := decimal.NewFromString(req.PriceAmount)
	if err != nil || price.IsNegative() {
		response.BadRequest(c, "price invalid")
		return nil, false
	}
	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}
	return &models.Product{
		ID:          id,
		CategoryID:  req.CategoryID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		PriceAmount: models.NewMoneyFromDecimal(price),
		Unit:        unit,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}, true
}
