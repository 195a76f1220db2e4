package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/database"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// foreignKeyViolation is the Postgres error code for FK constraint failures
const foreignKeyViolation = "23503"

// PostgresRepository implements Repository on top of the pgx pool
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new table repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a new table
func (r *PostgresRepository) Insert(ctx context.Context, table *models.Table) error {
	err := r.db.QueryRow(ctx, database.InsertTableSQL,
		table.Number, table.Capacity, table.Status, table.IsOccupied,
		table.QRCode, table.Location, table.Features).
		Scan(&table.ID, &table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// GetByID returns one table
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	row := r.db.QueryRow(ctx, database.SelectTableSQL+` WHERE id = $1`, id)
	table, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("table not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

// GetByNumber returns the table with the given number
func (r *PostgresRepository) GetByNumber(ctx context.Context, number string) (*models.Table, error) {
	row := r.db.QueryRow(ctx, database.SelectTableSQL+` WHERE number = $1`, number)
	table, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("table not found with number: %s", number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

// List returns tables matching the filter with limit/offset paging
func (r *PostgresRepository) List(ctx context.Context, filter models.TableFilter, page models.Page) ([]models.Table, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(clause string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if filter.Number != "" {
		add(`number ILIKE '%%' || $%d || '%%'`, filter.Number)
	}
	if filter.Location != "" {
		add(`location ILIKE '%%' || $%d || '%%'`, filter.Location)
	}
	if filter.Status != nil {
		add(`status = $%d`, *filter.Status)
	}
	if filter.IsOccupied != nil {
		add(`is_occupied = $%d`, *filter.IsOccupied)
	}

	query := database.SelectTableSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, page.Limit)
	query += fmt.Sprintf(" ORDER BY number ASC LIMIT $%d", len(args))
	args = append(args, page.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryTables(ctx, query, args...)
}

// ListByStatus returns all tables in the given status
func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.TableStatus) ([]models.Table, error) {
	return r.queryTables(ctx, database.SelectTableSQL+` WHERE status = $1 ORDER BY number ASC`, status)
}

// ListAvailable returns all unoccupied tables
func (r *PostgresRepository) ListAvailable(ctx context.Context) ([]models.Table, error) {
	return r.queryTables(ctx, database.SelectTableSQL+` WHERE is_occupied = FALSE ORDER BY number ASC`)
}

// UpdateWithLock applies mutate to the table under a row lock; status,
// occupancy flag and session fields persist in a single statement.
func (r *PostgresRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (*models.Table, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, database.SelectTableForUpdateSQL, id)
	table, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("table not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock table row: %w", err)
	}

	if err := mutate(table); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, database.UpdateTableSQL,
		table.ID, table.Number, table.Capacity, table.Status, table.IsOccupied,
		table.QRCode, table.Location, table.Features, table.CurrentCustomers,
		table.CurrentOrder, table.CurrentReservation, table.SessionStartTime,
		table.TotalSessionAmount, table.LastCleaned).
		Scan(&table.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return table, nil
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
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tables WHERE id = ANY($1)`, distinct).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}
	if count != len(distinct) {
		return apperrors.NotFound("some tables not found")
	}
	return nil
}

// NumberExists reports whether another table already uses the number
func (r *PostgresRepository) NumberExists(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.TableNumberExistsSQL, number, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table number: %w", err)
	}
	return exists, nil
}

// Delete removes the table after guard accepts its current state
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID, guard func(*models.Table) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, database.SelectTableForUpdateSQL, id)
	table, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("table not found with id: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock table row: %w", err)
	}

	if err := guard(table); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, database.DeleteTableSQL, id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return apperrors.InvalidState("table is referenced by existing orders")
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) queryTables(ctx context.Context, query string, args ...interface{}) ([]models.Table, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

func scanTable(row pgx.Row) (*models.Table, error) {
	var t models.Table
	err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status, &t.IsOccupied,
		&t.QRCode, &t.Location, &t.Features, &t.CurrentCustomers, &t.CurrentOrder,
		&t.CurrentReservation, &t.SessionStartTime, &t.TotalSessionAmount,
		&t.LastCleaned, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
