package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/database"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// PostgresRepository implements Repository on top of the pgx pool
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new order repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertOrder persists order + lines and occupies the table in one transaction
func (r *PostgresRepository) InsertOrder(ctx context.Context, order *models.Order) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	table := models.Table{ID: order.TableID}

	err = tx.QueryRow(ctx,
		`SELECT number, status, is_occupied, current_order, session_start_time
		 FROM tables WHERE id = $1 FOR UPDATE`,
		order.TableID).
		Scan(&table.Number, &table.Status, &table.IsOccupied,
			&table.CurrentOrder, &table.SessionStartTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NotFound("table not found with id: %s", order.TableID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to lock table row: %w", err)
	}

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail, order.TableID,
		order.TotalAmount, order.Status, order.Priority, order.SpecialInstructions,
		order.PaymentStatus, order.EstimatedReadyTime).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		err = tx.QueryRow(ctx, database.InsertOrderLineSQL,
			order.ID, line.MenuItemID, line.Quantity, line.UnitPrice,
			line.TotalPrice, line.SpecialInstructions).
			Scan(&line.ID, &line.CreatedAt)
		if err != nil {
			return "", fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if occupyTable(&table, order.ID, time.Now().UTC()) {
		_, err = tx.Exec(ctx,
			`UPDATE tables
			 SET status = $2, is_occupied = $3, current_order = $4,
				session_start_time = $5, updated_at = NOW()
			 WHERE id = $1`,
			order.TableID, table.Status, table.IsOccupied,
			table.CurrentOrder, table.SessionStartTime)
		if err != nil {
			return "", fmt.Errorf("failed to occupy table: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return table.Number, nil
}

// GetByID returns one order with its lines
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := r.db.QueryRow(ctx, database.SelectOrderSQL+` WHERE id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("order not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.attachLines(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders matching the filter with limit/offset paging. The
// predicate builder adds a clause only for parameters that are set.
func (r *PostgresRepository) List(ctx context.Context, filter models.OrderFilter, page models.Page) ([]models.Order, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(clause string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if filter.CustomerName != "" {
		add(`customer_name ILIKE '%%' || $%d || '%%'`, filter.CustomerName)
	}
	if filter.CustomerPhone != "" {
		add(`customer_phone ILIKE '%%' || $%d || '%%'`, filter.CustomerPhone)
	}
	if filter.TableID != nil {
		add(`table_id = $%d`, *filter.TableID)
	}
	if filter.Status != nil {
		add(`status = $%d`, *filter.Status)
	}
	if filter.Priority != nil {
		add(`priority = $%d`, *filter.Priority)
	}
	if filter.PaymentStatus != nil {
		add(`payment_status = $%d`, *filter.PaymentStatus)
	}

	query := database.SelectOrderSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, page.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, page.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryOrders(ctx, query, args...)
}

// ListByStatus returns all orders in the given status
func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return r.queryOrders(ctx, database.SelectOrderSQL+` WHERE status = $1 ORDER BY created_at DESC`, status)
}

// ListByTable returns all orders placed against a table
func (r *PostgresRepository) ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	return r.queryOrders(ctx, database.SelectOrderSQL+` WHERE table_id = $1 ORDER BY created_at DESC`, tableID)
}

// ListKitchenActive returns the orders the kitchen still has to act on
func (r *PostgresRepository) ListKitchenActive(ctx context.Context) ([]models.Order, error) {
	return r.queryOrders(ctx, database.SelectKitchenActiveOrdersSQL)
}

// ListReady returns READY orders
func (r *PostgresRepository) ListReady(ctx context.Context) ([]models.Order, error) {
	return r.queryOrders(ctx, database.SelectReadyOrdersSQL)
}

// UpdateWithLock applies mutate to the order under a row lock
func (r *PostgresRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, database.SelectOrderForUpdateSQL, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("order not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order row: %w", err)
	}

	if err := mutate(order); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, database.UpdateOrderStatusSQL,
		order.ID, order.Status, order.ActualReadyTime, order.ServedTime).
		Scan(&order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := r.attachLines(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// EnsureExist fails with NotFound unless every id resolves
func (r *PostgresRepository) EnsureExist(ctx context.Context, ids []uuid.UUID) error {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	distinct := make([]uuid.UUID, 0, len(unique))
	for id := range unique {
		distinct = append(distinct, id)
	}

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE id = ANY($1)`, distinct).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if count != len(distinct) {
		return apperrors.NotFound("some orders not found")
	}
	return nil
}

// Delete removes the order after guard accepts its current state
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID, guard func(*models.Order) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, database.SelectOrderForUpdateSQL, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("order not found with id: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock order row: %w", err)
	}

	if err := guard(order); err != nil {
		return err
	}

	// order_lines rows go with the order via ON DELETE CASCADE
	if _, err := tx.Exec(ctx, database.DeleteOrderSQL, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachLines(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachLines loads and attaches the lines for every given order
func (r *PostgresRepository) attachLines(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Order, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.Query(ctx, database.SelectOrderLinesSQL, ids)
	if err != nil {
		return fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.Quantity,
			&line.UnitPrice, &line.TotalPrice, &line.SpecialInstructions,
			&line.CreatedAt, &line.MenuItemName, &line.MenuItemImageURL)
		if err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if order, ok := byID[line.OrderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.TableID, &o.TotalAmount, &o.Status, &o.Priority, &o.SpecialInstructions,
		&o.Tip, &o.Tax, &o.Discount, &o.PaymentStatus, &o.PaymentMethod,
		&o.EstimatedReadyTime, &o.ActualReadyTime, &o.ServedTime,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
