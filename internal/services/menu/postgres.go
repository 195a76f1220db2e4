package menu

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

// NewPostgresRepository creates a new menu repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a new menu item
func (r *PostgresRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	err := r.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL,
		item.IsAvailable, item.IsFeatured, item.Ingredients, item.Allergens,
		item.DietaryTags, item.PreparationTimeMinutes, item.Calories, item.SpiceLevel).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

// GetByID returns one menu item
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row := r.db.QueryRow(ctx, database.SelectMenuItemSQL+` WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("menu item not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// GetByName returns the menu item with the given name
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.MenuItem, error) {
	row := r.db.QueryRow(ctx, database.SelectMenuItemSQL+` WHERE name = $1`, name)
	item, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("menu item not found with name: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// List returns menu items matching the filter with limit/offset paging
func (r *PostgresRepository) List(ctx context.Context, filter models.MenuFilter, page models.Page) ([]models.MenuItem, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(clause string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if filter.Name != "" {
		add(`name ILIKE '%%' || $%d || '%%'`, filter.Name)
	}
	if filter.Category != nil {
		add(`category = $%d`, *filter.Category)
	}
	if filter.IsAvailable != nil {
		add(`is_available = $%d`, *filter.IsAvailable)
	}
	if filter.IsFeatured != nil {
		add(`is_featured = $%d`, *filter.IsFeatured)
	}

	query := database.SelectMenuItemSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, page.Limit)
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", len(args))
	args = append(args, page.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryMenuItems(ctx, query, args...)
}

// ListByCategory returns all items in the given category
func (r *PostgresRepository) ListByCategory(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error) {
	return r.queryMenuItems(ctx, database.SelectMenuItemSQL+` WHERE category = $1 ORDER BY name ASC`, category)
}

// ListAvailable returns all currently orderable items
func (r *PostgresRepository) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryMenuItems(ctx, database.SelectMenuItemSQL+` WHERE is_available = TRUE ORDER BY name ASC`)
}

// ListFeatured returns all featured items
func (r *PostgresRepository) ListFeatured(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryMenuItems(ctx, database.SelectMenuItemSQL+` WHERE is_featured = TRUE ORDER BY name ASC`)
}

// UpdateWithLock applies mutate to the item under a row lock
func (r *PostgresRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.MenuItem) error) (*models.MenuItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, database.SelectMenuItemSQL+` WHERE id = $1 FOR UPDATE`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("menu item not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock menu item row: %w", err)
	}

	if err := mutate(item); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, database.UpdateMenuItemSQL,
		item.ID, item.Name, item.Description, item.Price, item.Category,
		item.ImageURL, item.IsAvailable, item.IsFeatured, item.Ingredients,
		item.Allergens, item.DietaryTags, item.PreparationTimeMinutes,
		item.Calories, item.SpiceLevel).
		Scan(&item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}

// NameExists reports whether another item already uses the name
func (r *PostgresRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.MenuItemNameExistsSQL, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check menu item name: %w", err)
	}
	return exists, nil
}

// Delete removes the menu item; a foreign key violation from existing
// order lines surfaces as InvalidState.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return apperrors.InvalidState("menu item is referenced by existing orders")
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("menu item not found with id: %s", id)
	}
	return nil
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...interface{}) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var m models.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.ImageURL, &m.IsAvailable, &m.IsFeatured, &m.Ingredients, &m.Allergens,
		&m.DietaryTags, &m.PreparationTimeMinutes, &m.Calories, &m.SpiceLevel,
		&m.Rating, &m.ReviewCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
