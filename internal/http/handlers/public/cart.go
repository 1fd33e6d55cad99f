package public

import (
	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest sets a product line in the cart.
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart returns the user's cart with its total.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.Get(uid)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, cart)
}

// SetCartItem adds or updates a cart line; quantity zero removes it.
func (h *Handler) SetCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.CartService.SetItem(uid, req.ProductID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveCartItem deletes one cart line.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID := parseOptionalUintQuery(c, "product_id")
	if productID == nil {
		response.BadRequest(c, "product id required")
		return
	}

	if err := h.CartService.RemoveItem(uid, *productID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

// ClearCart empties the user's cart.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		handlershared.RespondError(c, response.CodeInternal, "cart operation failed", err)
		return
	}
	response.Success(c, nil)
}
