package payroll

import (
	"testing"

	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregateWeekTotals(t *testing.T) {
	first := ComputeBreakdown(standardRates(), &domain.WeekEntry{
		DaysPresent:        6,
		OvertimeHours:      hours(0, 2, 0, 3),
		Bonus:              d(10000),
		Additions:          domain.Additions{{Label: "fuel", Amount: d(5500)}},
		RequestedDeduction: d(20000),
	})
	second := ComputeBreakdown(standardRates(), &domain.WeekEntry{
		DaysPresent:        1,
		RequestedDeduction: d(1),
	})

	totals, count := AggregateWeekTotals([]domain.PayBreakdown{first, second})

	assert.Equal(t, 2, count)
	assert.True(t, totals.Base.Equal(d(490000)), "base %s", totals.Base)
	assert.True(t, totals.Overtime.Equal(d(75000)))
	assert.True(t, totals.Transport.Equal(d(105000)))
	assert.True(t, totals.Meal.Equal(d(140000)))
	assert.True(t, totals.Bonus.Equal(d(10000)))
	assert.True(t, totals.Additions.Equal(d(6000)))
	assert.True(t, totals.GrossEarnings.Equal(d(826000)), "gross %s", totals.GrossEarnings)
	assert.True(t, totals.LoanDeduction.Equal(d(21000)))
	assert.True(t, totals.NetPay.Equal(d(805000)), "net %s", totals.NetPay)
}

func TestAggregateWeekTotals_Empty(t *testing.T) {
	totals, count := AggregateWeekTotals(nil)

	assert.Equal(t, 0, count)
	assert.True(t, totals.GrossEarnings.IsZero())
	assert.True(t, totals.NetPay.IsZero())
}
