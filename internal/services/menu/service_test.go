package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// fakeRepository is an in-memory Repository for service tests
type fakeRepository struct {
	items map[uuid.UUID]*models.MenuItem
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[uuid.UUID]*models.MenuItem)}
}

func (f *fakeRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("menu item not found with id: %s", id)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepository) GetByName(ctx context.Context, name string) (*models.MenuItem, error) {
	for _, item := range f.items {
		if item.Name == name {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("menu item not found with name: %s", name)
}

func (f *fakeRepository) List(ctx context.Context, filter models.MenuFilter, page models.Page) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepository) ListByCategory(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		if item.Category == category {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		if item.IsAvailable {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListFeatured(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		if item.IsFeatured {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.MenuItem) error) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("menu item not found with id: %s", id)
	}
	if err := mutate(item); err != nil {
		return nil, err
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for _, item := range f.items {
		if item.Name == name && item.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.NotFound("menu item not found with id: %s", id)
	}
	delete(f.items, id)
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, logger.New("menu-test"))
}

func TestCreateMenuItem(t *testing.T) {
	svc := newTestService(newFakeRepository())

	item, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name:     "Tiramisu",
		Price:    7.00,
		Category: "DESSERT",
	}, "req")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, models.CategoryDessert, item.Category)
	assert.True(t, item.IsAvailable, "items default to available")
}

func TestCreateMenuItemDuplicateName(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Tiramisu", Price: 7.00, Category: "DESSERT",
	}, "req")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Tiramisu", Price: 8.00, Category: "DESSERT",
	}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc := newTestService(newFakeRepository())

	tests := []struct {
		name string
		req  models.CreateMenuItemRequest
	}{
		{"missing name", models.CreateMenuItemRequest{Price: 5, Category: "SOUP"}},
		{"zero price", models.CreateMenuItemRequest{Name: "Soup", Price: 0, Category: "SOUP"}},
		{"negative price", models.CreateMenuItemRequest{Name: "Soup", Price: -1, Category: "SOUP"}},
		{"bad category", models.CreateMenuItemRequest{Name: "Soup", Price: 5, Category: "STEW"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req, "req")
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidInput(err))
		})
	}
}

func TestUpdateMenuItemPartial(t *testing.T) {
	svc := newTestService(newFakeRepository())

	item, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Espresso", Price: 2.50, Category: "BEVERAGE",
	}, "req")
	require.NoError(t, err)

	price := 2.80
	updated, err := svc.Update(context.Background(), item.ID, &models.UpdateMenuItemRequest{
		Price: &price,
	}, "req")
	require.NoError(t, err)

	assert.Equal(t, 2.80, updated.Price)
	assert.Equal(t, "Espresso", updated.Name, "unspecified fields keep their value")
	assert.Equal(t, models.CategoryBeverage, updated.Category)
}

func TestUpdateMenuItemRenameCollision(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Espresso", Price: 2.50, Category: "BEVERAGE",
	}, "req")
	require.NoError(t, err)

	latte, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Latte", Price: 3.50, Category: "BEVERAGE",
	}, "req")
	require.NoError(t, err)

	name := "Espresso"
	_, err = svc.Update(context.Background(), latte.ID, &models.UpdateMenuItemRequest{Name: &name}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestUpdateAvailability(t *testing.T) {
	svc := newTestService(newFakeRepository())

	item, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Latte", Price: 3.50, Category: "BEVERAGE",
	}, "req")
	require.NoError(t, err)

	updated, err := svc.UpdateAvailability(context.Background(), item.ID, false, "req")
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	available, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestGetMenuItemNotFound(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListByCategoryInvalid(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.ListByCategory(context.Background(), "STEW")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestDeleteMenuItem(t *testing.T) {
	svc := newTestService(newFakeRepository())

	item, err := svc.Create(context.Background(), &models.CreateMenuItemRequest{
		Name: "Latte", Price: 3.50, Category: "BEVERAGE",
	}, "req")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), item.ID, "req"))

	_, err = svc.Get(context.Background(), item.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
