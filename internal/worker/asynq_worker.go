package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lepanier/lepanier-api/internal/constants"
	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/provider"
	"github.com/lepanier/lepanier-api/internal/queue"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the queued notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer over the shared container.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker register skipped", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskDeliveryChangeEmail, c.handleDeliveryChangeEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("order status email payload unmarshal failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("order status email fetch order failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("order status email skipped, order gone", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("order status email resolve receiver failed", "order_id", order.ID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("order status email skipped, no receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}

	input := service.OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       status,
		Amount:       order.TotalAmount,
		Currency:     order.Currency,
		DeliveryInfo: describeDelivery(order),
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("order status email send failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", status,
			"error", err,
		)
		// Notification failures are terminal, not retried against the order.
		return nil
	}
	return nil
}

func (c *Consumer) handleDeliveryChangeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.DeliveryChangeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("delivery change email payload unmarshal failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("delivery change email fetch order failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		return nil
	}

	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("delivery change email resolve receiver failed", "order_id", order.ID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("delivery change email skipped, no receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	note := strings.TrimSpace(payload.Note)
	if note == "" {
		note = describeDelivery(order)
	}
	if err := c.EmailService.SendDeliveryChangeEmail(receiverEmail, service.DeliveryChangeEmailInput{
		OrderNo: order.OrderNo,
		Method:  payload.Method,
		Note:    note,
	}); err != nil {
		logger.Warnw("delivery change email send failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil
	}
	return nil
}

// describeDelivery renders the order's fulfillment as a short customer
// facing sentence for email bodies.
func describeDelivery(order *models.Order) string {
	if order == nil {
		return ""
	}
	date := ""
	if order.DeliveryDate != nil {
		date = order.DeliveryDate.Format("2006-01-02")
	}
	switch order.DeliveryType {
	case constants.DeliveryTypeAddress:
		if order.AddressDelivery != nil {
			return fmt.Sprintf("Home delivery to %s %s, %s %s on %s.",
				order.AddressDelivery.Street, order.AddressDelivery.House,
				order.AddressDelivery.PostalCode, order.AddressDelivery.City, date)
		}
		return fmt.Sprintf("Home delivery on %s.", date)
	case constants.DeliveryTypeRailwayStation:
		if order.StationDelivery != nil && order.StationDelivery.Station != nil {
			return fmt.Sprintf("Delivery to %s on %s.", order.StationDelivery.Station.Name, date)
		}
		return fmt.Sprintf("Railway station delivery on %s.", date)
	case constants.DeliveryTypePickup:
		if order.PickupDelivery != nil && order.PickupDelivery.Store != nil {
			return fmt.Sprintf("Pickup at %s on %s.", order.PickupDelivery.Store.Name, date)
		}
		return fmt.Sprintf("Store pickup on %s.", date)
	}
	return ""
}
