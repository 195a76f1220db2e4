package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// fakeRepository returns canned aggregates and records the midnight cutoff
type fakeRepository struct {
	orderCounts   map[models.OrderStatus]int
	tableCounts   map[models.TableStatus]int
	totalOrders   int
	todayOrders   int
	revenue       float64
	avgOrderValue float64

	totalItems     int
	availableItems int
	featuredItems  int
	avgPrice       float64

	totalTables    int
	occupiedTables int

	sinceSeen time.Time
}

func (f *fakeRepository) CountOrders(ctx context.Context) (int, error) { return f.totalOrders, nil }

func (f *fakeRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	f.sinceSeen = since
	return f.todayOrders, nil
}

func (f *fakeRepository) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int, error) {
	return f.orderCounts[status], nil
}

func (f *fakeRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	return f.revenue, nil
}

func (f *fakeRepository) AverageOrderValue(ctx context.Context) (float64, error) {
	return f.avgOrderValue, nil
}

func (f *fakeRepository) OrderStatusBreakdown(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	for status, count := range f.orderCounts {
		out[string(status)] = count
	}
	return out, nil
}

func (f *fakeRepository) OrderPriorityBreakdown(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeRepository) CountMenuItems(ctx context.Context) (int, error) { return f.totalItems, nil }

func (f *fakeRepository) CountAvailableMenuItems(ctx context.Context) (int, error) {
	return f.availableItems, nil
}

func (f *fakeRepository) CountFeaturedMenuItems(ctx context.Context) (int, error) {
	return f.featuredItems, nil
}

func (f *fakeRepository) AverageMenuPrice(ctx context.Context) (float64, error) {
	return f.avgPrice, nil
}

func (f *fakeRepository) MenuCategoryBreakdown(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeRepository) CountTables(ctx context.Context) (int, error) { return f.totalTables, nil }

func (f *fakeRepository) CountOccupiedTables(ctx context.Context) (int, error) {
	return f.occupiedTables, nil
}

func (f *fakeRepository) CountTablesByStatus(ctx context.Context, status models.TableStatus) (int, error) {
	return f.tableCounts[status], nil
}

func TestOrderStatisticsEmptyDataIsZero(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo, logger.New("stats-test"))

	stats, err := svc.OrderStatistics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TodayOrders)
	assert.Zero(t, stats.TodayRevenue)
	assert.Zero(t, stats.AverageOrderValue)
	assert.NotNil(t, stats.StatusBreakdown)
	assert.NotNil(t, stats.PriorityBreakdown)
}

func TestOrderStatisticsTodayStartsAtLocalMidnight(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo, logger.New("stats-test"))
	loc := time.FixedZone("UTC+6", 6*3600)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 14, 30, 0, 0, loc)
	}

	_, err := svc.OrderStatistics(context.Background())
	require.NoError(t, err)

	want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	assert.True(t, repo.sinceSeen.Equal(want), "got cutoff %v, want %v", repo.sinceSeen, want)
}

func TestOrderStatisticsCounts(t *testing.T) {
	repo := &fakeRepository{
		totalOrders:   12,
		todayOrders:   4,
		revenue:       182.50,
		avgOrderValue: 25.75,
		orderCounts: map[models.OrderStatus]int{
			models.OrderPending:   3,
			models.OrderPreparing: 2,
			models.OrderReady:     1,
			models.OrderCompleted: 6,
		},
	}
	svc := NewService(repo, logger.New("stats-test"))

	stats, err := svc.OrderStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalOrders)
	assert.Equal(t, 4, stats.TodayOrders)
	assert.Equal(t, 3, stats.PendingOrders)
	assert.Equal(t, 2, stats.PreparingOrders)
	assert.Equal(t, 1, stats.ReadyOrders)
	assert.Equal(t, 6, stats.CompletedOrders)
	assert.Equal(t, 182.50, stats.TodayRevenue)
	assert.Equal(t, 25.75, stats.AverageOrderValue)
	assert.Equal(t, 6, stats.StatusBreakdown["COMPLETED"])
}

func TestMenuStatistics(t *testing.T) {
	repo := &fakeRepository{
		totalItems:     8,
		availableItems: 6,
		featuredItems:  3,
		avgPrice:       8.11,
	}
	svc := NewService(repo, logger.New("stats-test"))

	stats, err := svc.MenuStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalItems)
	assert.Equal(t, 6, stats.AvailableItems)
	assert.Equal(t, 2, stats.UnavailableItems)
	assert.Equal(t, 3, stats.FeaturedItems)
	assert.Equal(t, 8.11, stats.AveragePrice)
}

func TestTableStatistics(t *testing.T) {
	repo := &fakeRepository{
		totalTables:    10,
		occupiedTables: 4,
		tableCounts: map[models.TableStatus]int{
			models.TableAvailable: 5,
			models.TableReserved:  1,
		},
	}
	svc := NewService(repo, logger.New("stats-test"))

	stats, err := svc.TableStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalTables)
	assert.Equal(t, 4, stats.OccupiedTables)
	assert.Equal(t, 5, stats.AvailableTables)
	assert.Equal(t, 1, stats.ReservedTables)
	assert.Zero(t, stats.CleaningTables)
}
