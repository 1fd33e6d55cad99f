package public

import (
	"strconv"
	"strings"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/repository"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the active categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "catalog lookup failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// ListProducts returns a page of active products.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: strings.TrimSpace(c.Query("category_id")),
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "catalog lookup failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.BuildPagination(page, pageSize, total))
}

// GetProduct returns one product by slug.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProduct(c.Param("slug"))
	if err != nil {
		if err == service.ErrProductNotFound {
			response.NotFound(c, "product not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "catalog lookup failed", err)
		return
	}
	response.Success(c, gin.H{"product": product})
}
