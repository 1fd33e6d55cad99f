package public

import (
	"strconv"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/repository"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderAddressRequest is the street address for home delivery.
type OrderAddressRequest struct {
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number"`
	Apartment   string `json:"apartment"`
	City        string `json:"city" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
}

// CreateOrderRequest is the checkout body.
type CreateOrderRequest struct {
	Method       string               `json:"method" binding:"required"`
	DeliveryDate string               `json:"delivery_date" binding:"required"`
	TimeSlot     string               `json:"time_slot"`
	StationID    *uint                `json:"station_id"`
	StoreID      *uint                `json:"store_id"`
	Address      *OrderAddressRequest `json:"address"`
	MeetingTime  string               `json:"meeting_time"`
	PickupTime   string               `json:"pickup_time"`
}

// CreateOrder turns the user's cart into an order.
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	input := service.CreateOrderInput{
		Method:       req.Method,
		DeliveryDate: req.DeliveryDate,
		TimeSlot:     req.TimeSlot,
		StationID:    req.StationID,
		StoreID:      req.StoreID,
		MeetingTime:  req.MeetingTime,
		PickupTime:   req.PickupTime,
	}
	if req.Address != nil {
		input.Address = &service.AssignAddressInput{
			Street:      req.Address.Street,
			HouseNumber: req.Address.HouseNumber,
			Apartment:   req.Address.Apartment,
			City:        req.Address.City,
			PostalCode:  req.Address.PostalCode,
		}
	}

	order, err := h.OrderService.CreateFromCart(uid, input)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// ListOrders returns a page of the user's orders.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(uid, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetOrder returns one of the user's orders.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "order id invalid")
		return
	}

	order, err := h.OrderService.GetUserOrder(uid, uint(orderID))
	if err != nil {
		if err == service.ErrOrderNotFound {
			response.NotFound(c, "order not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, gin.H{"order": order})
}
