package utils

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const dayLayout = "02 Jan 2006"

// WeekStart returns the Sunday that opens the week containing t, as a UTC
// calendar date. The weekday is taken in t's own location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekBounds returns the Sunday and Saturday of the week containing t
func WeekBounds(t time.Time) (start, end time.Time) {
	start = WeekStart(t)
	return start, start.AddDate(0, 0, 6)
}

// CurrentWeek returns the bounds of the week containing now in loc
func CurrentWeek(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	return WeekBounds(now.In(loc))
}

// IsSevenDaySpan reports whether end is exactly six days after start
func IsSevenDaySpan(start, end time.Time) bool {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return s.AddDate(0, 0, 6).Equal(e)
}

// WeekLabel formats a default label such as "07 Jan 2024 - 13 Jan 2024"
func WeekLabel(start, end time.Time) string {
	return start.Format(dayLayout) + " - " + end.Format(dayLayout)
}

// DecimalFromFloat converts float64 to decimal.Decimal; NaN and infinities become zero
func DecimalFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
