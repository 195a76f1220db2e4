package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestOccupyTable(t *testing.T) {
	orderID := uuid.New()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("available table gets seated", func(t *testing.T) {
		table := &models.Table{Number: "T01", Status: models.TableAvailable}

		changed := occupyTable(table, orderID, now)

		assert.True(t, changed)
		assert.Equal(t, models.TableOccupied, table.Status)
		assert.True(t, table.IsOccupied)
		require.NotNil(t, table.CurrentOrder)
		assert.Equal(t, orderID.String(), *table.CurrentOrder)
		require.NotNil(t, table.SessionStartTime)
		assert.Equal(t, now, *table.SessionStartTime)
	})

	t.Run("existing session start survives", func(t *testing.T) {
		earlier := now.Add(-30 * time.Minute)
		table := &models.Table{
			Number:           "T02",
			Status:           models.TableAvailable,
			SessionStartTime: timePtr(earlier),
		}

		changed := occupyTable(table, orderID, now)

		assert.True(t, changed)
		require.NotNil(t, table.SessionStartTime)
		assert.Equal(t, earlier, *table.SessionStartTime)
	})

	t.Run("non-available statuses stay untouched", func(t *testing.T) {
		for _, status := range []models.TableStatus{
			models.TableOccupied,
			models.TableReserved,
			models.TableCleaning,
			models.TableMaintenance,
		} {
			existing := "previous-order"
			table := &models.Table{
				Number:       "T03",
				Status:       status,
				IsOccupied:   status == models.TableOccupied,
				CurrentOrder: &existing,
			}

			changed := occupyTable(table, orderID, now)

			assert.False(t, changed, "status %s", status)
			assert.Equal(t, status, table.Status)
			assert.Equal(t, "previous-order", *table.CurrentOrder)
			assert.Nil(t, table.SessionStartTime)
		}
	})
}

func TestCreateOrderOccupiesAvailableTable(t *testing.T) {
	repo := newFakeRepository()
	menu, pizzaID, _ := menuFixture()
	svc := newTestService(repo, menu, &fakePublisher{})

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	repo.now = func() time.Time { return start }

	tableID := uuid.New()
	repo.tables[tableID] = &models.Table{
		ID:     tableID,
		Number: "T05",
		Status: models.TableAvailable,
	}

	order, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerPhone: "+15550100",
		TableID:       tableID,
		Lines: []models.CreateOrderLineRequest{
			{MenuItemID: pizzaID, Quantity: 1},
		},
	}, "req-occupy-1")
	require.NoError(t, err)

	table := repo.tables[tableID]
	assert.Equal(t, models.TableOccupied, table.Status)
	assert.True(t, table.IsOccupied)
	require.NotNil(t, table.CurrentOrder)
	assert.Equal(t, order.ID.String(), *table.CurrentOrder)
	require.NotNil(t, table.SessionStartTime)
	assert.Equal(t, start, *table.SessionStartTime)
}

func TestCreateOrderOnSeatedTableKeepsSession(t *testing.T) {
	repo := newFakeRepository()
	menu, pizzaID, saladID := menuFixture()
	svc := newTestService(repo, menu, &fakePublisher{})

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	repo.now = func() time.Time { return start }

	tableID := uuid.New()
	repo.tables[tableID] = &models.Table{
		ID:     tableID,
		Number: "T06",
		Status: models.TableAvailable,
	}

	first, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerPhone: "+15550100",
		TableID:       tableID,
		Lines: []models.CreateOrderLineRequest{
			{MenuItemID: pizzaID, Quantity: 1},
		},
	}, "req-occupy-2")
	require.NoError(t, err)

	// Dessert round half an hour into the same session
	repo.now = func() time.Time { return start.Add(30 * time.Minute) }
	svc.now = repo.now

	_, err = svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerPhone: "+15550100",
		TableID:       tableID,
		Lines: []models.CreateOrderLineRequest{
			{MenuItemID: saladID, Quantity: 1},
		},
	}, "req-occupy-3")
	require.NoError(t, err)

	table := repo.tables[tableID]
	assert.Equal(t, models.TableOccupied, table.Status)
	require.NotNil(t, table.CurrentOrder)
	assert.Equal(t, first.ID.String(), *table.CurrentOrder)
	require.NotNil(t, table.SessionStartTime)
	assert.Equal(t, start, *table.SessionStartTime)
}

func TestCreateOrderUnknownTable(t *testing.T) {
	repo := newFakeRepository()
	menu, pizzaID, _ := menuFixture()
	svc := newTestService(repo, menu, &fakePublisher{})

	repo.tables[uuid.New()] = &models.Table{Number: "T07", Status: models.TableAvailable}

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerPhone: "+15550100",
		TableID:       uuid.New(),
		Lines: []models.CreateOrderLineRequest{
			{MenuItemID: pizzaID, Quantity: 1},
		},
	}, "req-occupy-4")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
