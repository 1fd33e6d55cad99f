package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lepanier/lepanier-api/internal/constants"
	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/queue"
	"github.com/lepanier/lepanier-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles order placement and lifecycle.
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	deliveryRepo repository.DeliveryRepository
	deliverySvc  *DeliveryService
	queueClient  *queue.Client
}

// NewOrderService builds the order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, deliveryRepo repository.DeliveryRepository, deliverySvc *DeliveryService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		deliveryRepo: deliveryRepo,
		deliverySvc:  deliverySvc,
		queueClient:  queueClient,
	}
}

// CreateOrderInput describes a checkout: the fulfillment choice applied
// to the caller's current cart.
type CreateOrderInput struct {
	Method       string
	DeliveryDate string // 2006-01-02
	TimeSlot     string
	StationID    *uint
	StoreID      *uint
	Address      *AssignAddressInput
	MeetingTime  string
	PickupTime   string
}

// CreateFromCart turns the user's cart into an order. The order, its item
// snapshots, the delivery detail and the cart cleanup commit atomically;
// the confirmation email is enqueued afterwards.
func (s *OrderService) CreateFromCart(userID uint, input CreateOrderInput) (*models.Order, error) {
	method, err := ParseDeliveryMethod(input.Method)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseDeliveryDate(input.DeliveryDate)
	if err != nil {
		return nil, err
	}
	station, store, err := resolveFulfillmentTarget(s.deliveryRepo, method, input.StationID, input.StoreID, input.Address)
	if err != nil {
		return nil, err
	}
	meetingTime, err := parseOptionalTime(input.MeetingTime, deliveryDate)
	if err != nil {
		return nil, err
	}
	pickupTime, err := parseOptionalTime(input.PickupTime, deliveryDate)
	if err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		if line.Product == nil || !line.Product.IsActive {
			return nil, ErrInvalidOrderItem
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		lineTotal := line.Product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Product.Name,
			UnitPrice:  line.Product.PriceAmount,
			Quantity:   line.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	postalCode := ""
	if input.Address != nil {
		postalCode = input.Address.PostalCode
	}
	evaluation, err := s.deliverySvc.EvaluateCost(CostInput{
		Method:     method.String(),
		PostalCode: postalCode,
		CartTotal:  total.String(),
	})
	if err != nil {
		return nil, err
	}
	if !evaluation.IsValid {
		return nil, ErrDeliveryMinimumNotReached
	}

	order := &models.Order{
		OrderNo:          generateOrderNo(),
		UserID:           userID,
		Status:           constants.OrderStatusPending,
		Currency:         constants.Currency,
		TotalAmount:      models.NewMoneyFromDecimal(total),
		DeliveryType:     method.String(),
		DeliveryDate:     &deliveryDate,
		DeliveryTimeSlot: strings.TrimSpace(input.TimeSlot),
		DeliveryCost:     evaluation.Cost,
	}
	if station != nil {
		order.StationID = &station.ID
	}
	if store != nil {
		order.StoreID = &store.ID
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txOrders := s.orderRepo.WithTx(tx)
		if err := txOrders.Create(order, items); err != nil {
			return err
		}
		switch method {
		case DeliveryAddress:
			if err := upsertAddressDetail(tx, order.ID, input.Address); err != nil {
				return err
			}
		case DeliveryRailwayStation:
			if err := upsertStationDetail(tx, order.ID, station.ID, meetingTime); err != nil {
				return err
			}
		case DeliveryPickup:
			if err := upsertPickupDetail(tx, order.ID, store.ID, pickupTime); err != nil {
				return err
			}
		}
		if err := txOrders.AppendChange(order.ID, "Order placed"); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		logger.Errorw("order create failed", "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	s.enqueueStatusEmail(order.ID, order.Status)

	return s.orderRepo.GetByID(order.ID)
}

// GetUserOrder fetches one of the user's orders with all delivery details.
func (s *OrderService) GetUserOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders returns a page of the user's orders.
func (s *OrderService) ListUserOrders(userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.UserID = userID
	return s.orderRepo.ListByUser(filter)
}

// GetAdminOrder fetches any order for the admin dashboard.
func (s *OrderService) GetAdminOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdminOrders returns a page of all orders.
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

var orderStatuses = map[string]bool{
	constants.OrderStatusPending:   true,
	constants.OrderStatusConfirmed: true,
	constants.OrderStatusPreparing: true,
	constants.OrderStatusDelivered: true,
	constants.OrderStatusCompleted: true,
	constants.OrderStatusCanceled:  true,
}

// UpdateStatus moves an order to a new status, logging the change and
// notifying the customer.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !orderStatuses[status] {
		return nil, ErrOrderStatusInvalid
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		txOrders := s.orderRepo.WithTx(tx)
		order, err := txOrders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == status {
			return nil
		}
		if err := txOrders.UpdateStatus(orderID, status, nil); err != nil {
			return err
		}
		return txOrders.AppendChange(orderID, fmt.Sprintf("Status changed from %s to %s", order.Status, status))
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(orderID, status)

	return s.orderRepo.GetByID(orderID)
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("enqueue order status email failed", "order_id", orderID, "error", err)
	}
}

func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("LP%s%s", time.Now().Format("20060102"), suffix)
}
