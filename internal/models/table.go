package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
)

// TableStatus represents the occupancy state of a table
type TableStatus string

const (
	TableAvailable   TableStatus = "AVAILABLE"
	TableOccupied    TableStatus = "OCCUPIED"
	TableReserved    TableStatus = "RESERVED"
	TableCleaning    TableStatus = "CLEANING"
	TableMaintenance TableStatus = "MAINTENANCE"
)

// Table represents a physical restaurant table and its occupancy session.
// IsOccupied must always equal (Status == TableOccupied); session fields are
// set only while occupied and cleared together on release to AVAILABLE.
type Table struct {
	ID                 uuid.UUID   `json:"id"`
	Number             string      `json:"number"`
	Capacity           int         `json:"capacity"`
	Status             TableStatus `json:"status"`
	IsOccupied         bool        `json:"is_occupied"`
	QRCode             *string     `json:"qr_code,omitempty"`
	Location           *string     `json:"location,omitempty"`
	Features           []string    `json:"features,omitempty"`
	CurrentCustomers   *int        `json:"current_customers,omitempty"`
	CurrentOrder       *string     `json:"current_order,omitempty"`
	CurrentReservation *string     `json:"current_reservation,omitempty"`
	SessionStartTime   *time.Time  `json:"session_start_time,omitempty"`
	TotalSessionAmount *float64    `json:"total_session_amount,omitempty"`
	LastCleaned        *time.Time  `json:"last_cleaned,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// CreateTableRequest represents the request to create a table
type CreateTableRequest struct {
	Number   string   `json:"number"`
	Capacity int      `json:"capacity"`
	QRCode   *string  `json:"qr_code,omitempty"`
	Location *string  `json:"location,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Validate checks the create table request
func (req *CreateTableRequest) Validate() error {
	if req.Number == "" {
		return apperrors.InvalidInput("number is required")
	}
	if len(req.Number) > 10 {
		return apperrors.InvalidInput("number must not exceed 10 characters")
	}
	if req.Capacity <= 0 {
		return apperrors.InvalidInput("capacity must be positive")
	}
	return nil
}

// UpdateTableRequest represents a partial table update
type UpdateTableRequest struct {
	Number   *string  `json:"number,omitempty"`
	Capacity *int     `json:"capacity,omitempty"`
	QRCode   *string  `json:"qr_code,omitempty"`
	Location *string  `json:"location,omitempty"`
	Features []string `json:"features,omitempty"`
}

// SeatCustomersRequest represents the request to seat a party at a table
type SeatCustomersRequest struct {
	CustomerCount int `json:"customer_count"`
}

// Validate checks the seat customers request
func (req *SeatCustomersRequest) Validate() error {
	if req.CustomerCount <= 0 {
		return apperrors.InvalidInput("customer_count must be positive")
	}
	return nil
}

// UpdateTableStatusRequest represents a table status change request
type UpdateTableStatusRequest struct {
	Status string `json:"status"`
}

// BulkTableStatusRequest applies one status to multiple tables
type BulkTableStatusRequest struct {
	TableIDs []uuid.UUID `json:"table_ids"`
	Status   string      `json:"status"`
}

// ParseTableStatus validates and converts a table status string
func ParseTableStatus(s string) (TableStatus, error) {
	switch TableStatus(s) {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning, TableMaintenance:
		return TableStatus(s), nil
	default:
		return "", apperrors.InvalidInput("invalid table status: %s", s)
	}
}

// TableFilter holds optional predicates for table listing
type TableFilter struct {
	Number     string
	Location   string
	Status     *TableStatus
	IsOccupied *bool
}
