package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{RoundNotActive, http.StatusForbidden},
		{Eliminated, http.StatusForbidden},
		{Authorization, http.StatusForbidden},
		{DuplicateApplication, http.StatusConflict},
		{InvalidState, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := Status(New(tt.kind, "boom")); got != tt.want {
				t.Errorf("Status(%s) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestStatusUnknownError(t *testing.T) {
	if got := Status(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("Status(plain error) = %d, want 500", got)
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(NotFound, "task not found"))
	if !IsKind(err, NotFound) {
		t.Error("IsKind failed to see through wrapping")
	}
	if IsKind(err, Validation) {
		t.Error("IsKind matched the wrong kind")
	}

	kind, ok := KindOf(err)
	if !ok || kind != NotFound {
		t.Errorf("KindOf = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf reported a kind for a plain error")
	}
}

func TestNewFormatsMessage(t *testing.T) {
	err := New(Validation, "round %d: bad deadline", 3)
	if err.Error() != "round 3: bad deadline" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
