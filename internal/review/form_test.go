package review

import (
	"errors"
	"strings"
	"testing"

	"github.com/jharden/campgrounds/internal/apperror"
)

func TestFormValid(t *testing.T) {
	f := Form{Rating: 4, Body: "Great spot, would camp again"}
	if err := f.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFormEmptyBody(t *testing.T) {
	f := Form{Rating: 4}
	err := f.Validate()
	if err == nil {
		t.Fatal("expected error for empty body")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "review body is required") {
		t.Errorf("message = %q, want body violation", err.Error())
	}
}

func TestFormRatingBounds(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"rating 1", 1, false},
		{"rating 5", 5, false},
		{"rating 0", 0, true},
		{"rating 6", 6, true},
		{"rating -2", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Form{Rating: tt.rating, Body: "fine"}
			err := f.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
