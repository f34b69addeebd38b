package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitOffer_InRange(t *testing.T) {
	v, ok := FitOffer(45, 2, 200)
	assert.True(t, ok)
	assert.Equal(t, 45.0, v)
}

func TestFitOffer_BoundsInclusive(t *testing.T) {
	v, ok := FitOffer(2, 2, 200)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = FitOffer(200, 2, 200)
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)
}

func TestFitOffer_RescuesAbsoluteAmounts(t *testing.T) {
	// 4500000 rupees is 45 lakhs
	v, ok := FitOffer(4500000, 2, 200)
	assert.True(t, ok)
	assert.Equal(t, 45.0, v)
}

func TestFitOffer_RescueStillOutOfRange(t *testing.T) {
	// 100000000 / 100000 = 1000, above max
	_, ok := FitOffer(100000000, 2, 200)
	assert.False(t, ok)
}

func TestFitOffer_BelowMin(t *testing.T) {
	_, ok := FitOffer(1, 2, 200)
	assert.False(t, ok)
}

func TestFitOffer_RescueBelowMin(t *testing.T) {
	// 250 > max, 250/100000 = 0.0025 < min, and 250 itself is > max
	_, ok := FitOffer(250, 2, 200)
	assert.False(t, ok)
}

func TestYearsBand(t *testing.T) {
	tests := []struct {
		yoe  float64
		band string
	}{
		{0, "Entry (0-1)"},
		{1, "Entry (0-1)"},
		{1.5, "Mid (2-6)"},
		{6, "Mid (2-6)"},
		{7, "Senior (7-10)"},
		{10, "Senior (7-10)"},
		{11, "Senior + (11+)"},
		{25, "Senior + (11+)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, YearsBand(tt.yoe), "yoe=%v", tt.yoe)
	}
}

func TestIsInternRole(t *testing.T) {
	assert.True(t, IsInternRole("SDE Intern"))
	assert.True(t, IsInternRole("INTERNSHIP"))
	assert.True(t, IsInternRole("summer intern"))
	assert.False(t, IsInternRole("Software Engineer"))
}
