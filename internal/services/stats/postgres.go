package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/HelloTanvir/scan-and-dine/internal/database"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// PostgresRepository implements Repository on top of the pgx pool
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new statistics repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountOrders(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountOrdersSQL)
}

func (r *PostgresRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	return r.queryCount(ctx, database.CountOrdersSinceSQL, since)
}

func (r *PostgresRepository) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int, error) {
	return r.queryCount(ctx, database.CountOrdersByStatusSQL, status)
}

func (r *PostgresRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	return r.queryFloat(ctx, database.RevenueSinceSQL, since)
}

func (r *PostgresRepository) AverageOrderValue(ctx context.Context) (float64, error) {
	return r.queryFloat(ctx, database.AverageOrderValueSQL)
}

func (r *PostgresRepository) OrderStatusBreakdown(ctx context.Context) (map[string]int, error) {
	return r.queryBreakdown(ctx, database.OrderStatusBreakdownSQL)
}

func (r *PostgresRepository) OrderPriorityBreakdown(ctx context.Context) (map[string]int, error) {
	return r.queryBreakdown(ctx, database.OrderPriorityBreakdownSQL)
}

func (r *PostgresRepository) CountMenuItems(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountMenuItemsSQL)
}

func (r *PostgresRepository) CountAvailableMenuItems(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountAvailableMenuItemsSQL)
}

func (r *PostgresRepository) CountFeaturedMenuItems(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountFeaturedMenuItemsSQL)
}

func (r *PostgresRepository) AverageMenuPrice(ctx context.Context) (float64, error) {
	return r.queryFloat(ctx, database.AverageMenuPriceSQL)
}

func (r *PostgresRepository) MenuCategoryBreakdown(ctx context.Context) (map[string]int, error) {
	return r.queryBreakdown(ctx, database.MenuCategoryBreakdownSQL)
}

func (r *PostgresRepository) CountTables(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountTablesSQL)
}

func (r *PostgresRepository) CountOccupiedTables(ctx context.Context) (int, error) {
	return r.queryCount(ctx, database.CountOccupiedTablesSQL)
}

func (r *PostgresRepository) CountTablesByStatus(ctx context.Context, status models.TableStatus) (int, error) {
	return r.queryCount(ctx, database.CountTablesByStatusSQL, status)
}

func (r *PostgresRepository) queryCount(ctx context.Context, query string, args ...interface{}) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query count: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) queryFloat(ctx context.Context, query string, args ...interface{}) (float64, error) {
	var value float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to query aggregate: %w", err)
	}
	return value, nil
}

func (r *PostgresRepository) queryBreakdown(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		breakdown[key] = count
	}
	return breakdown, rows.Err()
}
