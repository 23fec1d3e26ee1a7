package utils

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "sunday itself", at: time.Date(2024, 1, 7, 8, 30, 0, 0, time.UTC)},
		{name: "midweek", at: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)},
		{name: "saturday night", at: time.Date(2024, 1, 13, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.at)
			assert.Equal(t, sunday, start)
			assert.Equal(t, saturday, end)
		})
	}
}

func TestCurrentWeek_UsesLocation(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	// Saturday 20:00 UTC is already Sunday in Jakarta
	now := time.Date(2024, 1, 13, 20, 0, 0, 0, time.UTC)

	start, end := CurrentWeek(now, jakarta)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), end)

	start, _ = CurrentWeek(now, nil)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), start)
}

func TestIsSevenDaySpan(t *testing.T) {
	start := time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSevenDaySpan(start, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsSevenDaySpan(start, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsSevenDaySpan(start, start))
}

func TestWeekLabel(t *testing.T) {
	start, end := WeekBounds(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "07 Jan 2024 - 13 Jan 2024", WeekLabel(start, end))
}

func TestDecimalFromFloat(t *testing.T) {
	assert.True(t, DecimalFromFloat(1.5).Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, DecimalFromFloat(math.NaN()).IsZero())
	assert.True(t, DecimalFromFloat(math.Inf(1)).IsZero())
	assert.True(t, DecimalFromFloat(math.Inf(-1)).IsZero())
}
