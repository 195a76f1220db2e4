package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

func TestApplyTransitionForwardPath(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		from           models.OrderStatus
		to             models.OrderStatus
		wantReadyTime  bool
		wantServedTime bool
	}{
		{"pending to confirmed", models.OrderPending, models.OrderConfirmed, false, false},
		{"confirmed to preparing", models.OrderConfirmed, models.OrderPreparing, false, false},
		{"preparing to ready", models.OrderPreparing, models.OrderReady, true, false},
		{"ready to served", models.OrderReady, models.OrderServed, false, true},
		{"served to completed", models.OrderServed, models.OrderCompleted, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &models.Order{Status: tt.from}
			applyTransition(o, tt.to, now)

			assert.Equal(t, tt.to, o.Status)
			if tt.wantReadyTime {
				require.NotNil(t, o.ActualReadyTime)
				assert.Equal(t, now, *o.ActualReadyTime)
			} else {
				assert.Nil(t, o.ActualReadyTime)
			}
			if tt.wantServedTime {
				require.NotNil(t, o.ServedTime)
				assert.Equal(t, now, *o.ServedTime)
			} else {
				assert.Nil(t, o.ServedTime)
			}
		})
	}
}

func TestApplyTransitionJumpSkipsSideEffects(t *testing.T) {
	now := time.Now().UTC()

	// A jump straight from PENDING to READY changes the status but must not
	// record a ready timestamp: that belongs to PREPARING -> READY only.
	o := &models.Order{Status: models.OrderPending}
	applyTransition(o, models.OrderReady, now)

	assert.Equal(t, models.OrderReady, o.Status)
	assert.Nil(t, o.ActualReadyTime)

	o = &models.Order{Status: models.OrderConfirmed}
	applyTransition(o, models.OrderServed, now)

	assert.Equal(t, models.OrderServed, o.Status)
	assert.Nil(t, o.ServedTime)
}

func TestApplyTransitionCancelFromAnyState(t *testing.T) {
	now := time.Now().UTC()

	for _, from := range []models.OrderStatus{
		models.OrderPending, models.OrderConfirmed, models.OrderPreparing,
		models.OrderReady, models.OrderServed,
	} {
		o := &models.Order{Status: from}
		applyTransition(o, models.OrderCancelled, now)

		assert.Equal(t, models.OrderCancelled, o.Status)
		assert.Nil(t, o.ActualReadyTime)
		assert.Nil(t, o.ServedTime)
	}
}

func TestApplyTransitionTimestampsSetOnce(t *testing.T) {
	first := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	o := &models.Order{Status: models.OrderPreparing}
	applyTransition(o, models.OrderReady, first)
	require.NotNil(t, o.ActualReadyTime)

	// Re-applying the same transition must not move the timestamp
	o.Status = models.OrderPreparing
	applyTransition(o, models.OrderReady, second)
	assert.Equal(t, first, *o.ActualReadyTime)
}

func TestOrderStatusPredicates(t *testing.T) {
	assert.True(t, models.OrderCompleted.IsTerminal())
	assert.True(t, models.OrderCancelled.IsTerminal())
	assert.False(t, models.OrderServed.IsTerminal())

	assert.True(t, models.OrderPending.IsDeletable())
	assert.True(t, models.OrderCancelled.IsDeletable())
	assert.False(t, models.OrderPreparing.IsDeletable())
	assert.False(t, models.OrderCompleted.IsDeletable())
}
