package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"kelvin conversion noise", 300.0 - 273.15, 2, 26.85},
		{"one place", 24.96, 1, 25.0},
		{"negative", -3.456, 2, -3.46},
		{"zero places", 2.5, 0, 3},
		{"zero", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 1e-9)
		})
	}
}
