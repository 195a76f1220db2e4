package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderCreatedMessage is published to the kitchen when an order is placed
type OrderCreatedMessage struct {
	OrderID            uuid.UUID     `json:"order_id"`
	CustomerName       string        `json:"customer_name"`
	TableID            uuid.UUID     `json:"table_id"`
	TableNumber        string        `json:"table_number"`
	Items              []OrderLine   `json:"items"`
	TotalAmount        float64       `json:"total_amount"`
	Priority           OrderPriority `json:"priority"`
	EstimatedReadyTime *time.Time    `json:"estimated_ready_time,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// StatusChangedMessage is broadcast whenever an order changes status
type StatusChangedMessage struct {
	OrderID         uuid.UUID   `json:"order_id"`
	OldStatus       OrderStatus `json:"old_status"`
	NewStatus       OrderStatus `json:"new_status"`
	ActualReadyTime *time.Time  `json:"actual_ready_time,omitempty"`
	ServedTime      *time.Time  `json:"served_time,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}

// NewOrderCreatedMessage builds the kitchen event for a freshly created order
func NewOrderCreatedMessage(order *Order, tableNumber string) *OrderCreatedMessage {
	return &OrderCreatedMessage{
		OrderID:            order.ID,
		CustomerName:       order.CustomerName,
		TableID:            order.TableID,
		TableNumber:        tableNumber,
		Items:              order.Lines,
		TotalAmount:        order.TotalAmount,
		Priority:           order.Priority,
		EstimatedReadyTime: order.EstimatedReadyTime,
		CreatedAt:          order.CreatedAt,
	}
}

// NewStatusChangedMessage builds the notification event for a status transition
func NewStatusChangedMessage(order *Order, oldStatus OrderStatus) *StatusChangedMessage {
	return &StatusChangedMessage{
		OrderID:         order.ID,
		OldStatus:       oldStatus,
		NewStatus:       order.Status,
		ActualReadyTime: order.ActualReadyTime,
		ServedTime:      order.ServedTime,
		Timestamp:       time.Now().UTC(),
	}
}

// OrderCreatedRoutingKey generates a routing key for order created events
func OrderCreatedRoutingKey(priority OrderPriority) string {
	return fmt.Sprintf("order.created.%s", strings.ToLower(string(priority)))
}

// StatusChangedRoutingKey is the routing key for status change events
const StatusChangedRoutingKey = "order.status_changed"
