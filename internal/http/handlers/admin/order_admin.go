package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/repository"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders returns a page of all orders.
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListAdminOrders(repository.OrderListFilter{
		Page:         page,
		PageSize:     pageSize,
		Status:       c.Query("status"),
		OrderNo:      c.Query("order_no"),
		DeliveryType: c.Query("delivery_type"),
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetOrder returns one order with all delivery details.
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetAdminOrder(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateOrderStatusRequest is the status transition body.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order to a new status.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.OrderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrOrderStatusInvalid):
			response.BadRequest(c, "order status invalid")
		default:
			handlershared.RespondError(c, response.CodeInternal, "order update failed", err)
		}
		return
	}
	response.Success(c, gin.H{"order": order})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "id invalid")
		return 0, false
	}
	return uint(id), true
}
