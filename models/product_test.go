package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestVariant_Validate(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
		want error
	}{
		{"ok", Variant{Price: decimal.NewFromInt(10), Stock: 0}, nil},
		{"negative price", Variant{Price: decimal.NewFromInt(-1)}, ErrNegativePrice},
		{"negative old price", Variant{Price: decimal.NewFromInt(1), OldPrice: decimal.NewFromInt(-5)}, ErrNegativePrice},
		{"negative stock", Variant{Price: decimal.NewFromInt(1), Stock: -1}, ErrNegativeStock},
	}
	for _, tt := range tests {
		if err := tt.v.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestVariant_Available(t *testing.T) {
	if (Variant{Stock: 0}).Available() {
		t.Error("zero stock must be unavailable")
	}
	if !(Variant{Stock: 2}).Available() {
		t.Error("positive stock must be available")
	}
}
