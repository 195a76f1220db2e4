package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// occupyTable transitions an available table to occupied for a freshly
// created order and reports whether the table changed. A table that is
// already seated (or reserved, cleaning, in maintenance) is left untouched,
// so a second order against the same session changes nothing. An existing
// session start time survives, only a missing one is stamped.
func occupyTable(t *models.Table, orderID uuid.UUID, now time.Time) bool {
	if t.Status != models.TableAvailable {
		return false
	}

	t.Status = models.TableOccupied
	t.IsOccupied = true
	id := orderID.String()
	t.CurrentOrder = &id
	if t.SessionStartTime == nil {
		t.SessionStartTime = &now
	}
	return true
}
