package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderPriority represents how urgently the kitchen should treat an order
type OrderPriority string

const (
	PriorityLow    OrderPriority = "LOW"
	PriorityMedium OrderPriority = "MEDIUM"
	PriorityHigh   OrderPriority = "HIGH"
	PriorityUrgent OrderPriority = "URGENT"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod represents how an order was paid
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCard          PaymentMethod = "CARD"
	PaymentDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	PaymentBankTransfer  PaymentMethod = "BANK_TRANSFER"
)

// MinimumPrepMinutes floors every ready-time estimate
const MinimumPrepMinutes = 10

// OrderLine is one menu item + quantity entry within an order.
// The unit price is a snapshot taken at creation; later menu price
// changes never reach existing lines.
type OrderLine struct {
	ID                  uuid.UUID `json:"id"`
	OrderID             uuid.UUID `json:"order_id"`
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	TotalPrice          float64   `json:"total_price"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`

	// Resolved presentation fields joined from the menu catalog
	MenuItemName     string  `json:"menu_item_name,omitempty"`
	MenuItemImageURL *string `json:"menu_item_image_url,omitempty"`
}

// Order represents a customer order placed against a table
type Order struct {
	ID                  uuid.UUID      `json:"id"`
	CustomerName        string         `json:"customer_name"`
	CustomerPhone       string         `json:"customer_phone"`
	CustomerEmail       *string        `json:"customer_email,omitempty"`
	TableID             uuid.UUID      `json:"table_id"`
	Lines               []OrderLine    `json:"order_lines"`
	TotalAmount         float64        `json:"total_amount"`
	Status              OrderStatus    `json:"status"`
	Priority            OrderPriority  `json:"priority"`
	SpecialInstructions *string        `json:"special_instructions,omitempty"`
	Tip                 *float64       `json:"tip,omitempty"`
	Tax                 *float64       `json:"tax,omitempty"`
	Discount            *float64       `json:"discount,omitempty"`
	PaymentStatus       PaymentStatus  `json:"payment_status"`
	PaymentMethod       *PaymentMethod `json:"payment_method,omitempty"`
	EstimatedReadyTime  *time.Time     `json:"estimated_ready_time,omitempty"`
	ActualReadyTime     *time.Time     `json:"actual_ready_time,omitempty"`
	ServedTime          *time.Time     `json:"served_time,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// IsTerminal reports whether the status permits no further forward transition
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// IsDeletable reports whether an order in this status may be deleted
func (s OrderStatus) IsDeletable() bool {
	return s == OrderPending || s == OrderCancelled
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	CustomerName        string                   `json:"customer_name"`
	CustomerPhone       string                   `json:"customer_phone"`
	CustomerEmail       *string                  `json:"customer_email,omitempty"`
	TableID             uuid.UUID                `json:"table_id"`
	Lines               []CreateOrderLineRequest `json:"order_lines"`
	SpecialInstructions *string                  `json:"special_instructions,omitempty"`
}

// CreateOrderLineRequest is one cart entry in a create order request
type CreateOrderLineRequest struct {
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`
}

// Validate checks the create order request
func (req *CreateOrderRequest) Validate() error {
	if req.CustomerName == "" {
		return apperrors.InvalidInput("customer_name is required")
	}
	if len(req.CustomerName) > 100 {
		return apperrors.InvalidInput("customer_name must not exceed 100 characters")
	}
	if req.CustomerPhone == "" {
		return apperrors.InvalidInput("customer_phone is required")
	}
	if req.TableID == uuid.Nil {
		return apperrors.InvalidInput("table_id is required")
	}
	if len(req.Lines) == 0 {
		return apperrors.InvalidInput("order_lines cannot be empty")
	}
	for i, line := range req.Lines {
		if line.MenuItemID == uuid.Nil {
			return apperrors.InvalidInput("order_lines[%d].menu_item_id is required", i)
		}
		if line.Quantity <= 0 {
			return apperrors.InvalidInput("order_lines[%d].quantity must be positive", i)
		}
	}
	return nil
}

// UpdateOrderStatusRequest represents an order status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// BulkOrderStatusRequest applies one status to multiple orders
type BulkOrderStatusRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
	Status   string      `json:"status"`
}

// ParseOrderStatus validates and converts an order status string
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderServed, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	default:
		return "", apperrors.InvalidInput("invalid order status: %s", s)
	}
}

// ParseOrderPriority validates and converts an order priority string
func ParseOrderPriority(s string) (OrderPriority, error) {
	switch OrderPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return OrderPriority(s), nil
	default:
		return "", apperrors.InvalidInput("invalid order priority: %s", s)
	}
}

// ParsePaymentStatus validates and converts a payment status string
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), nil
	default:
		return "", apperrors.InvalidInput("invalid payment status: %s", s)
	}
}

// OrderFilter holds optional predicates for order listing
type OrderFilter struct {
	CustomerName  string
	CustomerPhone string
	TableID       *uuid.UUID
	Status        *OrderStatus
	Priority      *OrderPriority
	PaymentStatus *PaymentStatus
}

// Page holds limit/offset paging parameters
type Page struct {
	Limit  int
	Offset int
}
