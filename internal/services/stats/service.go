package stats

import (
	"context"
	"time"

	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// Repository provides the aggregate queries behind the statistics endpoints
type Repository interface {
	CountOrders(ctx context.Context) (int, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)
	CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	AverageOrderValue(ctx context.Context) (float64, error)
	OrderStatusBreakdown(ctx context.Context) (map[string]int, error)
	OrderPriorityBreakdown(ctx context.Context) (map[string]int, error)

	CountMenuItems(ctx context.Context) (int, error)
	CountAvailableMenuItems(ctx context.Context) (int, error)
	CountFeaturedMenuItems(ctx context.Context) (int, error)
	AverageMenuPrice(ctx context.Context) (float64, error)
	MenuCategoryBreakdown(ctx context.Context) (map[string]int, error)

	CountTables(ctx context.Context) (int, error)
	CountOccupiedTables(ctx context.Context) (int, error)
	CountTablesByStatus(ctx context.Context, status models.TableStatus) (int, error)
}

// Service computes read-only statistics; empty data aggregates to zero
type Service struct {
	repo Repository
	log  *logger.Logger

	now func() time.Time
}

// NewService creates a new statistics service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// OrderStatistics returns aggregate order figures; "today" starts at
// local midnight.
func (s *Service) OrderStatistics(ctx context.Context) (*models.OrderStatistics, error) {
	stats := &models.OrderStatistics{}
	midnight := startOfDay(s.now())

	var err error
	if stats.TotalOrders, err = s.repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if stats.TodayOrders, err = s.repo.CountOrdersSince(ctx, midnight); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.repo.CountOrdersByStatus(ctx, models.OrderPending); err != nil {
		return nil, err
	}
	if stats.PreparingOrders, err = s.repo.CountOrdersByStatus(ctx, models.OrderPreparing); err != nil {
		return nil, err
	}
	if stats.ReadyOrders, err = s.repo.CountOrdersByStatus(ctx, models.OrderReady); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.repo.CountOrdersByStatus(ctx, models.OrderCompleted); err != nil {
		return nil, err
	}
	if stats.TodayRevenue, err = s.repo.RevenueSince(ctx, midnight); err != nil {
		return nil, err
	}
	if stats.AverageOrderValue, err = s.repo.AverageOrderValue(ctx); err != nil {
		return nil, err
	}
	if stats.StatusBreakdown, err = s.repo.OrderStatusBreakdown(ctx); err != nil {
		return nil, err
	}
	if stats.PriorityBreakdown, err = s.repo.OrderPriorityBreakdown(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// MenuStatistics returns aggregate menu catalog figures
func (s *Service) MenuStatistics(ctx context.Context) (*models.MenuStatistics, error) {
	stats := &models.MenuStatistics{}

	var err error
	if stats.TotalItems, err = s.repo.CountMenuItems(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableItems, err = s.repo.CountAvailableMenuItems(ctx); err != nil {
		return nil, err
	}
	stats.UnavailableItems = stats.TotalItems - stats.AvailableItems
	if stats.FeaturedItems, err = s.repo.CountFeaturedMenuItems(ctx); err != nil {
		return nil, err
	}
	if stats.AveragePrice, err = s.repo.AverageMenuPrice(ctx); err != nil {
		return nil, err
	}
	if stats.CategoryBreakdown, err = s.repo.MenuCategoryBreakdown(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// TableStatistics returns aggregate table registry figures
func (s *Service) TableStatistics(ctx context.Context) (*models.TableStatistics, error) {
	stats := &models.TableStatistics{}

	var err error
	if stats.TotalTables, err = s.repo.CountTables(ctx); err != nil {
		return nil, err
	}
	if stats.OccupiedTables, err = s.repo.CountOccupiedTables(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableTables, err = s.repo.CountTablesByStatus(ctx, models.TableAvailable); err != nil {
		return nil, err
	}
	if stats.ReservedTables, err = s.repo.CountTablesByStatus(ctx, models.TableReserved); err != nil {
		return nil, err
	}
	if stats.CleaningTables, err = s.repo.CountTablesByStatus(ctx, models.TableCleaning); err != nil {
		return nil, err
	}
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
