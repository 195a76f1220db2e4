package table

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
	tables map[uuid.UUID]*models.Table
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tables: make(map[uuid.UUID]*models.Table)}
}

func (f *fakeRepository) Insert(ctx context.Context, table *models.Table) error {
	table.ID = uuid.New()
	table.CreatedAt = time.Now().UTC()
	stored := *table
	f.tables[table.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, apperrors.NotFound("table not found with id: %s", id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) GetByNumber(ctx context.Context, number string) (*models.Table, error) {
	for _, t := range f.tables {
		if t.Number == number {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("table not found with number: %s", number)
}

func (f *fakeRepository) List(ctx context.Context, filter models.TableFilter, page models.Page) ([]models.Table, error) {
	var out []models.Table
	for _, t := range f.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRepository) ListByStatus(ctx context.Context, status models.TableStatus) ([]models.Table, error) {
	var out []models.Table
	for _, t := range f.tables {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListAvailable(ctx context.Context) ([]models.Table, error) {
	var out []models.Table
	for _, t := range f.tables {
		if !t.IsOccupied {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (*models.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, apperrors.NotFound("table not found with id: %s", id)
	}
	if err := mutate(t); err != nil {
		return nil, err
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) EnsureExist(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := f.tables[id]; !ok {
			return apperrors.NotFound("some tables not found")
		}
	}
	return nil
}

func (f *fakeRepository) NumberExists(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	for _, t := range f.tables {
		if t.Number == number && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID, guard func(*models.Table) error) error {
	t, ok := f.tables[id]
	if !ok {
		return apperrors.NotFound("table not found with id: %s", id)
	}
	if err := guard(t); err != nil {
		return err
	}
	delete(f.tables, id)
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, logger.New("table-test"))
}

func createTable(t *testing.T, svc *Service, number string) *models.Table {
	t.Helper()
	table, err := svc.Create(context.Background(), &models.CreateTableRequest{
		Number:   number,
		Capacity: 4,
	}, "req")
	require.NoError(t, err)
	return table
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	svc := newTestService(newFakeRepository())
	createTable(t, svc, "T01")

	_, err := svc.Create(context.Background(), &models.CreateTableRequest{
		Number:   "T01",
		Capacity: 2,
	}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestSeatCustomers(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	seated := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return seated }

	table := createTable(t, svc, "T01")

	updated, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{
		CustomerCount: 3,
	}, "req")
	require.NoError(t, err)

	assert.Equal(t, models.TableOccupied, updated.Status)
	assert.True(t, updated.IsOccupied)
	require.NotNil(t, updated.CurrentCustomers)
	assert.Equal(t, 3, *updated.CurrentCustomers)
	require.NotNil(t, updated.SessionStartTime)
	assert.Equal(t, seated, *updated.SessionStartTime)
	require.NotNil(t, updated.TotalSessionAmount)
	assert.Equal(t, 0.0, *updated.TotalSessionAmount)
}

func TestSeatCustomersAlreadyOccupied(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 2}, "req")
	require.NoError(t, err)

	_, err = svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 4}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestSeatCustomersValidation(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 0}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestUpdateStatusOccupancyFlagTracksStatus(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	for _, tt := range []struct {
		status   string
		occupied bool
	}{
		{"OCCUPIED", true},
		{"CLEANING", false},
		{"RESERVED", false},
		{"MAINTENANCE", false},
		{"AVAILABLE", false},
	} {
		updated, err := svc.UpdateStatus(context.Background(), table.ID, tt.status, "req")
		require.NoError(t, err)
		assert.Equal(t, models.TableStatus(tt.status), updated.Status)
		assert.Equal(t, tt.occupied, updated.IsOccupied, "occupancy flag for %s", tt.status)
	}
}

func TestUpdateStatusAvailableClearsSession(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 2}, "req")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), table.ID, "AVAILABLE", "req")
	require.NoError(t, err)

	assert.Equal(t, models.TableAvailable, updated.Status)
	assert.False(t, updated.IsOccupied)
	assert.Nil(t, updated.CurrentCustomers)
	assert.Nil(t, updated.CurrentOrder)
	assert.Nil(t, updated.CurrentReservation)
	assert.Nil(t, updated.SessionStartTime)
	assert.Nil(t, updated.TotalSessionAmount)
}

func TestUpdateStatusReoccupyKeepsSession(t *testing.T) {
	svc := newTestService(newFakeRepository())
	first := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	table := createTable(t, svc, "T01")
	_, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 2}, "req")
	require.NoError(t, err)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	updated, err := svc.UpdateStatus(context.Background(), table.ID, "OCCUPIED", "req")
	require.NoError(t, err)

	// session started at seating time; a redundant OCCUPIED must not reset it
	require.NotNil(t, updated.SessionStartTime)
	assert.Equal(t, first, *updated.SessionStartTime)
}

func TestUpdateStatusCleaningSetsLastCleaned(t *testing.T) {
	svc := newTestService(newFakeRepository())
	cleanedAt := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return cleanedAt }

	table := createTable(t, svc, "T01")
	updated, err := svc.UpdateStatus(context.Background(), table.ID, "CLEANING", "req")
	require.NoError(t, err)

	require.NotNil(t, updated.LastCleaned)
	assert.Equal(t, cleanedAt, *updated.LastCleaned)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.UpdateStatus(context.Background(), table.ID, "FLOODED", "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestBulkUpdateStatusAllOrNothingLookup(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.BulkUpdateStatus(context.Background(), &models.BulkTableStatusRequest{
		TableIDs: []uuid.UUID{table.ID, uuid.New()},
		Status:   "CLEANING",
	}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	unchanged, err := svc.Get(context.Background(), table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, unchanged.Status)
}

func TestUpdateTableDuplicateNumber(t *testing.T) {
	svc := newTestService(newFakeRepository())
	createTable(t, svc, "T01")
	second := createTable(t, svc, "T02")

	number := "T01"
	_, err := svc.Update(context.Background(), second.ID, &models.UpdateTableRequest{Number: &number}, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestDeleteOccupiedTable(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	_, err := svc.SeatCustomers(context.Background(), table.ID, &models.SeatCustomersRequest{CustomerCount: 2}, "req")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), table.ID, "req")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	// release the table, then the delete goes through
	_, err = svc.UpdateStatus(context.Background(), table.ID, "AVAILABLE", "req")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), table.ID, "req"))
}

func TestQRCodeData(t *testing.T) {
	svc := newTestService(newFakeRepository())
	table := createTable(t, svc, "T01")

	data, err := svc.QRCodeData(context.Background(), table.ID)
	require.NoError(t, err)
	assert.Contains(t, data, table.ID.String())
}
