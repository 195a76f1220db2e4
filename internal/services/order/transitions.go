package order

import (
	"time"

	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// transition is an (old, new) status pair
type transition struct {
	from models.OrderStatus
	to   models.OrderStatus
}

// sideEffect mutates order timestamps for a recognized transition
type sideEffect func(o *models.Order, now time.Time)

func setActualReadyTime(o *models.Order, now time.Time) {
	if o.ActualReadyTime == nil {
		o.ActualReadyTime = &now
	}
}

func setServedTime(o *models.Order, now time.Time) {
	if o.ServedTime == nil {
		o.ServedTime = &now
	}
}

// transitionEffects maps each expected forward transition to its side effect.
// A nil side effect means the transition only changes the status field.
var transitionEffects = map[transition]sideEffect{
	{models.OrderPending, models.OrderConfirmed}:   nil,
	{models.OrderConfirmed, models.OrderPreparing}: nil,
	{models.OrderPreparing, models.OrderReady}:     setActualReadyTime,
	{models.OrderReady, models.OrderServed}:        setServedTime,
	{models.OrderServed, models.OrderCompleted}:    nil,
}

// applyTransition moves o to the requested status. Timestamp side effects are
// keyed on the exact (old, new) pair: a jump such as PENDING -> READY still
// updates the status but skips the ready timestamp. Cancellation from any
// state carries no side effect. Ready and served timestamps are set at most
// once and never move backward.
func applyTransition(o *models.Order, to models.OrderStatus, now time.Time) {
	from := o.Status
	o.Status = to

	if to == models.OrderCancelled {
		return
	}
	if effect, ok := transitionEffects[transition{from, to}]; ok && effect != nil {
		effect(o, now)
	}
}
