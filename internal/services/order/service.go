package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// Repository is the persistence contract for the order engine. Mutating
// methods take a callback that runs with the entity row locked, so the
// read-modify-write of status and dependent timestamps is atomic per call.
type Repository interface {
	// InsertOrder persists the order and its lines as one unit and, within
	// the same transaction, occupies the referenced table when it is
	// available. It returns the table number for event enrichment.
	InsertOrder(ctx context.Context, order *models.Order) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter, page models.Page) ([]models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error)
	ListKitchenActive(ctx context.Context) ([]models.Order, error)
	ListReady(ctx context.Context) ([]models.Order, error)
	// UpdateWithLock loads the order under a row lock, applies mutate and
	// persists status and timestamps before committing.
	UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (*models.Order, error)
	// EnsureExist fails with NotFound unless every id resolves to an order.
	EnsureExist(ctx context.Context, ids []uuid.UUID) error
	// Delete removes the order and its lines after guard accepts the
	// current state, all under a row lock.
	Delete(ctx context.Context, id uuid.UUID, guard func(*models.Order) error) error
}

// MenuCatalog is the collaborator contract consumed for price and
// availability resolution.
type MenuCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// EventPublisher emits order lifecycle events. Publish failures are logged
// and never fail the API call.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, message interface{}, routingKey string) error
	PublishNotification(ctx context.Context, message interface{}) error
}

// Service implements the order engine: order creation, the status state
// machine and the kitchen read projections.
type Service struct {
	repo      Repository
	menu      MenuCatalog
	publisher EventPublisher
	logger    *logger.Logger

	now func() time.Time
}

// NewService creates a new order service
func NewService(repo Repository, menu MenuCatalog, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		menu:      menu,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// CreateOrder validates the cart, snapshots prices, computes the total and
// ready-time estimate and persists the order atomically with its lines and
// the table occupation.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	lines := make([]models.OrderLine, 0, len(req.Lines))
	totalAmount := 0.0
	totalPrepMinutes := 0

	for _, lineReq := range req.Lines {
		item, err := s.menu.GetByID(ctx, lineReq.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable {
			return nil, apperrors.InvalidState("menu item is not available: %s", item.Name)
		}

		line := models.OrderLine{
			MenuItemID:          item.ID,
			Quantity:            lineReq.Quantity,
			UnitPrice:           item.Price,
			TotalPrice:          item.Price * float64(lineReq.Quantity),
			SpecialInstructions: lineReq.SpecialInstructions,
			MenuItemName:        item.Name,
			MenuItemImageURL:    item.ImageURL,
		}
		lines = append(lines, line)
		totalAmount += line.TotalPrice
		totalPrepMinutes += item.PrepTimeMinutes() * lineReq.Quantity
	}

	// Linear prep-time sum with a floor; biased toward slow-but-safe estimates
	if totalPrepMinutes < models.MinimumPrepMinutes {
		totalPrepMinutes = models.MinimumPrepMinutes
	}
	estimatedReadyTime := now.Add(time.Duration(totalPrepMinutes) * time.Minute)

	order := &models.Order{
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		TableID:             req.TableID,
		Lines:               lines,
		TotalAmount:         totalAmount,
		Status:              models.OrderPending,
		Priority:            models.PriorityMedium,
		SpecialInstructions: req.SpecialInstructions,
		PaymentStatus:       models.PaymentPending,
		EstimatedReadyTime:  &estimatedReadyTime,
	}

	tableNumber, err := s.repo.InsertOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_created", fmt.Sprintf("Order created for table %s", tableNumber), requestID, map[string]interface{}{
		"order_id":     order.ID,
		"table_number": tableNumber,
		"total_amount": order.TotalAmount,
		"line_count":   len(order.Lines),
	})

	s.publishOrderCreated(ctx, order, tableNumber, requestID)

	return order, nil
}

// GetOrder returns one order with its resolved lines
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns orders matching the filter, paged
func (s *Service) ListOrders(ctx context.Context, filter models.OrderFilter, page models.Page) ([]models.Order, error) {
	if page.Limit <= 0 || page.Limit > 100 {
		page.Limit = 20
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return s.repo.List(ctx, filter, page)
}

// ListOrdersByStatus returns all orders in the given status
func (s *Service) ListOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, parsed)
}

// ListOrdersByTable returns all orders placed against a table
func (s *Service) ListOrdersByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByTable(ctx, tableID)
}

// KitchenActiveOrders returns PENDING/CONFIRMED/PREPARING orders ordered by
// priority descending then creation time ascending; the kitchen display
// depends on this ordering.
func (s *Service) KitchenActiveOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListKitchenActive(ctx)
	if err != nil {
		return nil, err
	}
	sortKitchenQueue(orders)
	return orders, nil
}

// ReadyOrders returns READY orders ordered by actual ready time ascending
func (s *Service) ReadyOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListReady(ctx)
	if err != nil {
		return nil, err
	}
	sortByReadyTime(orders)
	return orders, nil
}

var priorityRank = map[models.OrderPriority]int{
	models.PriorityUrgent: 4,
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// sortKitchenQueue puts the most urgent work first and, within a priority,
// the oldest order first.
func sortKitchenQueue(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if priorityRank[orders[i].Priority] != priorityRank[orders[j].Priority] {
			return priorityRank[orders[i].Priority] > priorityRank[orders[j].Priority]
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}

// sortByReadyTime orders pickups earliest-ready first. An order that reached
// READY without an actual ready time sorts last.
func sortByReadyTime(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := orders[i].ActualReadyTime, orders[j].ActualReadyTime
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return ri.Before(*rj)
		}
	})
}

// UpdateStatus applies the status state machine to one order. The table is
// deliberately not synchronized here; releasing a table stays an explicit
// table-status operation.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, requestID string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var oldStatus models.OrderStatus
	updated, err := s.repo.UpdateWithLock(ctx, id, func(o *models.Order) error {
		oldStatus = o.Status
		applyTransition(o, newStatus, s.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", fmt.Sprintf("Order status changed from %s to %s", oldStatus, newStatus), requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": oldStatus,
		"new_status": newStatus,
	})

	s.publishStatusChanged(ctx, updated, oldStatus, requestID)

	return updated, nil
}

// BulkUpdateStatus applies the same transition to every listed order. The
// lookup is all-or-nothing; the transitions themselves are per order.
func (s *Service) BulkUpdateStatus(ctx context.Context, req *models.BulkOrderStatusRequest, requestID string) ([]models.Order, error) {
	if len(req.OrderIDs) == 0 {
		return nil, apperrors.InvalidInput("order_ids cannot be empty")
	}
	if _, err := models.ParseOrderStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.repo.EnsureExist(ctx, req.OrderIDs); err != nil {
		return nil, err
	}

	updated := make([]models.Order, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		order, err := s.UpdateStatus(ctx, id, req.Status, requestID)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *order)
	}

	return updated, nil
}

// DeleteOrder removes an order and its lines; only PENDING and CANCELLED
// orders may be deleted.
func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID, requestID string) error {
	err := s.repo.Delete(ctx, id, func(o *models.Order) error {
		if !o.Status.IsDeletable() {
			return apperrors.InvalidState("cannot delete order with status: %s", o.Status)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("order_deleted", "Order deleted", requestID, map[string]interface{}{
		"order_id": id,
	})
	return nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *models.Order, tableNumber, requestID string) {
	if s.publisher == nil {
		return
	}
	msg := models.NewOrderCreatedMessage(order, tableNumber)
	if err := s.publisher.PublishOrderEvent(ctx, msg, models.OrderCreatedRoutingKey(order.Priority)); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order created event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, order *models.Order, oldStatus models.OrderStatus, requestID string) {
	if s.publisher == nil {
		return
	}
	msg := models.NewStatusChangedMessage(order, oldStatus)
	if err := s.publisher.PublishOrderEvent(ctx, msg, models.StatusChangedRoutingKey); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish status changed event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish status notification", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}
