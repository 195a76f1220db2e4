package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{NotFound("order not found"), KindNotFound},
		{InvalidInput("bad quantity"), KindInvalidInput},
		{InvalidState("already occupied"), KindInvalidState},
		{Duplicate("name taken"), KindDuplicate},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating order: %w", NotFound("table not found"))
	if !IsNotFound(err) {
		t.Error("wrapped NotFound error lost its kind")
	}
	if IsInvalidState(err) {
		t.Error("wrapped NotFound error misreported as InvalidState")
	}
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("order not found with id: %d", 42)
	if err.Error() != "order not found with id: 42" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
