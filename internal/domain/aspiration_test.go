package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAspirationCanTransitionTo(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{AspirationOpen, AspirationInReview, true},
		{AspirationOpen, AspirationResolved, true},
		{AspirationInReview, AspirationResolved, true},
		{AspirationInReview, AspirationOpen, false},
		{AspirationResolved, AspirationInReview, false},
		{AspirationResolved, AspirationOpen, false},
		{AspirationOpen, AspirationOpen, false},
	}

	for _, tt := range tests {
		a := Aspiration{Status: tt.from}
		assert.Equal(t, tt.want, a.CanTransitionTo(tt.to), "%v -> %v", tt.from, tt.to)
	}
}
