package queue

import (
	"encoding/json"

	"github.com/lepanier/lepanier-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies the customer of an order status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskDeliveryChangeEmail notifies the customer of a delivery change.
	TaskDeliveryChangeEmail = constants.TaskDeliveryChangeEmail
)

// OrderStatusEmailPayload carries an order status notification.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// DeliveryChangeEmailPayload carries a delivery change notification.
type DeliveryChangeEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Method  string `json:"method"`
	Note    string `json:"note"`
}

// NewOrderStatusEmailTask builds an order status email task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewDeliveryChangeEmailTask builds a delivery change email task.
func NewDeliveryChangeEmailTask(payload DeliveryChangeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliveryChangeEmail, body), nil
}
