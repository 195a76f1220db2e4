package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"PENDING", "CONFIRMED", "PREPARING", "READY", "SERVED", "COMPLETED", "CANCELLED"}
	for _, s := range valid {
		if _, err := ParseOrderStatus(s); err != nil {
			t.Errorf("ParseOrderStatus(%q) returned error: %v", s, err)
		}
	}

	invalid := []string{"", "pending", "DONE", "PENDING "}
	for _, s := range invalid {
		if _, err := ParseOrderStatus(s); err == nil {
			t.Errorf("ParseOrderStatus(%q) expected error, got none", s)
		}
	}
}

func TestParseTableStatus(t *testing.T) {
	valid := []string{"AVAILABLE", "OCCUPIED", "RESERVED", "CLEANING", "MAINTENANCE"}
	for _, s := range valid {
		if _, err := ParseTableStatus(s); err != nil {
			t.Errorf("ParseTableStatus(%q) returned error: %v", s, err)
		}
	}

	if _, err := ParseTableStatus("occupied"); err == nil {
		t.Error("ParseTableStatus should reject lowercase values")
	}
}

func TestOrderCreatedRoutingKey(t *testing.T) {
	tests := []struct {
		priority OrderPriority
		want     string
	}{
		{PriorityLow, "order.created.low"},
		{PriorityMedium, "order.created.medium"},
		{PriorityHigh, "order.created.high"},
		{PriorityUrgent, "order.created.urgent"},
	}

	for _, tt := range tests {
		if got := OrderCreatedRoutingKey(tt.priority); got != tt.want {
			t.Errorf("OrderCreatedRoutingKey(%s) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestMenuItemPrepTimeFallback(t *testing.T) {
	twenty := 20
	item := MenuItem{PreparationTimeMinutes: &twenty}
	if got := item.PrepTimeMinutes(); got != 20 {
		t.Errorf("PrepTimeMinutes() = %d, want 20", got)
	}

	item.PreparationTimeMinutes = nil
	if got := item.PrepTimeMinutes(); got != DefaultPrepTimeMinutes {
		t.Errorf("PrepTimeMinutes() = %d, want default %d", got, DefaultPrepTimeMinutes)
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	itemID := uuid.New()
	base := CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerPhone: "+15550100",
		TableID:       uuid.New(),
		Lines:         []CreateOrderLineRequest{{MenuItemID: itemID, Quantity: 1}},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"empty name", func(r *CreateOrderRequest) { r.CustomerName = "" }},
		{"empty phone", func(r *CreateOrderRequest) { r.CustomerPhone = "" }},
		{"nil table", func(r *CreateOrderRequest) { r.TableID = uuid.Nil }},
		{"no lines", func(r *CreateOrderRequest) { r.Lines = nil }},
		{"nil item id", func(r *CreateOrderRequest) { r.Lines[0].MenuItemID = uuid.Nil }},
		{"zero quantity", func(r *CreateOrderRequest) { r.Lines[0].Quantity = 0 }},
		{"negative quantity", func(r *CreateOrderRequest) { r.Lines[0].Quantity = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Lines = []CreateOrderLineRequest{{MenuItemID: itemID, Quantity: 1}}
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Error("expected validation error, got none")
			}
		})
	}
}
