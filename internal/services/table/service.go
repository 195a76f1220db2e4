package table

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// Repository is the persistence contract for the table registry. Mutating
// methods take a callback that runs with the table row locked, so status and
// session fields always change together.
type Repository interface {
	Insert(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	GetByNumber(ctx context.Context, number string) (*models.Table, error)
	List(ctx context.Context, filter models.TableFilter, page models.Page) ([]models.Table, error)
	ListByStatus(ctx context.Context, status models.TableStatus) ([]models.Table, error)
	ListAvailable(ctx context.Context) ([]models.Table, error)
	UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (*models.Table, error)
	EnsureExist(ctx context.Context, ids []uuid.UUID) error
	NumberExists(ctx context.Context, number string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID, guard func(*models.Table) error) error
}

// Service implements the table registry: occupancy sessions, seating and
// table lifecycle.
type Service struct {
	repo   Repository
	logger *logger.Logger

	now func() time.Time
}

// NewService creates a new table service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Create registers a new table
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest, requestID string) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NumberExists(ctx, req.Number, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicate("table number already exists: %s", req.Number)
	}

	table := &models.Table{
		Number:     req.Number,
		Capacity:   req.Capacity,
		Status:     models.TableAvailable,
		IsOccupied: false,
		QRCode:     req.QRCode,
		Location:   req.Location,
		Features:   req.Features,
	}
	if err := s.repo.Insert(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table_created", fmt.Sprintf("Table %s created", table.Number), requestID, map[string]interface{}{
		"table_id": table.ID,
		"capacity": table.Capacity,
	})
	return table, nil
}

// Get returns one table
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByNumber returns the table with the given number
func (s *Service) GetByNumber(ctx context.Context, number string) (*models.Table, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List returns tables matching the filter, paged
func (s *Service) List(ctx context.Context, filter models.TableFilter, page models.Page) ([]models.Table, error) {
	if page.Limit <= 0 || page.Limit > 100 {
		page.Limit = 20
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return s.repo.List(ctx, filter, page)
}

// ListByStatus returns all tables in the given status
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.Table, error) {
	parsed, err := models.ParseTableStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, parsed)
}

// ListAvailable returns all unoccupied tables
func (s *Service) ListAvailable(ctx context.Context) ([]models.Table, error) {
	return s.repo.ListAvailable(ctx)
}

// Update applies a partial detail update to a table
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateTableRequest, requestID string) (*models.Table, error) {
	if req.Number != nil {
		if *req.Number == "" {
			return nil, apperrors.InvalidInput("number cannot be empty")
		}
		exists, err := s.repo.NumberExists(ctx, *req.Number, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicate("table number already exists: %s", *req.Number)
		}
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, apperrors.InvalidInput("capacity must be positive")
	}

	return s.repo.UpdateWithLock(ctx, id, func(t *models.Table) error {
		if req.Number != nil {
			t.Number = *req.Number
		}
		if req.Capacity != nil {
			t.Capacity = *req.Capacity
		}
		if req.QRCode != nil {
			t.QRCode = req.QRCode
		}
		if req.Location != nil {
			t.Location = req.Location
		}
		if req.Features != nil {
			t.Features = req.Features
		}
		return nil
	})
}

// UpdateStatus changes the table status; the occupancy flag and session
// fields always move with it.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, requestID string) (*models.Table, error) {
	parsed, err := models.ParseTableStatus(status)
	if err != nil {
		return nil, err
	}

	table, err := s.repo.UpdateWithLock(ctx, id, func(t *models.Table) error {
		s.applyStatus(t, parsed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("table_status_updated", fmt.Sprintf("Table %s status changed to %s", table.Number, parsed), requestID, map[string]interface{}{
		"table_id": id,
		"status":   parsed,
	})
	return table, nil
}

// SeatCustomers seats a party at an unoccupied table, starting a session
func (s *Service) SeatCustomers(ctx context.Context, id uuid.UUID, req *models.SeatCustomersRequest, requestID string) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, err := s.repo.UpdateWithLock(ctx, id, func(t *models.Table) error {
		if t.IsOccupied {
			return apperrors.InvalidState("table is already occupied")
		}
		now := s.now().UTC()
		zero := 0.0
		t.Status = models.TableOccupied
		t.IsOccupied = true
		t.CurrentCustomers = &req.CustomerCount
		t.SessionStartTime = &now
		t.TotalSessionAmount = &zero
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customers_seated", fmt.Sprintf("Seated %d customers at table %s", req.CustomerCount, table.Number), requestID, map[string]interface{}{
		"table_id":       id,
		"customer_count": req.CustomerCount,
	})
	return table, nil
}

// BulkUpdateStatus applies the same status change to every listed table. The
// lookup is all-or-nothing; the updates themselves are per table.
func (s *Service) BulkUpdateStatus(ctx context.Context, req *models.BulkTableStatusRequest, requestID string) ([]models.Table, error) {
	if len(req.TableIDs) == 0 {
		return nil, apperrors.InvalidInput("table_ids cannot be empty")
	}
	if _, err := models.ParseTableStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.repo.EnsureExist(ctx, req.TableIDs); err != nil {
		return nil, err
	}

	updated := make([]models.Table, 0, len(req.TableIDs))
	for _, id := range req.TableIDs {
		table, err := s.UpdateStatus(ctx, id, req.Status, requestID)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *table)
	}
	return updated, nil
}

// QRCodeData returns the menu URL encoded in the table's QR code
func (s *Service) QRCodeData(ctx context.Context, id uuid.UUID) (string, error) {
	table, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://localhost:3000/order/menu?table=%s", table.ID), nil
}

// Delete removes a table; occupied tables cannot be deleted
func (s *Service) Delete(ctx context.Context, id uuid.UUID, requestID string) error {
	err := s.repo.Delete(ctx, id, func(t *models.Table) error {
		if t.IsOccupied {
			return apperrors.InvalidState("cannot delete occupied table")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("table_deleted", "Table deleted", requestID, map[string]interface{}{
		"table_id": id,
	})
	return nil
}

// applyStatus recomputes the occupancy flag and session fields for the new
// status. Re-occupying an occupied table leaves its session untouched.
func (s *Service) applyStatus(t *models.Table, status models.TableStatus) {
	now := s.now().UTC()

	t.Status = status
	t.IsOccupied = status == models.TableOccupied

	switch status {
	case models.TableAvailable:
		clearSession(t)
	case models.TableOccupied:
		if t.SessionStartTime == nil {
			zero := 0.0
			t.SessionStartTime = &now
			t.TotalSessionAmount = &zero
		}
	case models.TableCleaning:
		t.LastCleaned = &now
	}
}

// clearSession drops every occupancy session field at once
func clearSession(t *models.Table) {
	t.CurrentCustomers = nil
	t.CurrentOrder = nil
	t.CurrentReservation = nil
	t.SessionStartTime = nil
	t.TotalSessionAmount = nil
}
