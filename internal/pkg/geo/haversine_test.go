package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_SamePointIsZero(t *testing.T) {
	assert.Zero(t, Haversine(-6.71263, 108.53125, -6.71263, 108.53125))
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(-6.71263, 108.53125, -6.2088, 106.8456)
	d2 := Haversine(-6.2088, 106.8456, -6.71263, 108.53125)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestHaversine_KnownDistances(t *testing.T) {
	// One degree of latitude along a meridian is about 111.19 km for the
	// spherical model with R = 6371 km.
	d := Haversine(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 10)

	// A small latitude offset of 0.00045 degrees is about 50 m.
	d = Haversine(-6.71263, 108.53125, -6.71263+0.00045, 108.53125)
	assert.InDelta(t, 50, d, 0.5)
}

func TestHaversine_AntipodalIsHalfCircumference(t *testing.T) {
	d := Haversine(0, 0, 0, 180)
	assert.InDelta(t, 20015086, d, 1000)
}
