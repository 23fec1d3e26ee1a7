package payroll

import (
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/shopspring/decimal"
)

// AggregateWeekTotals sums each field of the breakdowns independently. The
// items are already rounded, so no rounding is applied here.
func AggregateWeekTotals(breakdowns []domain.PayBreakdown) (domain.WeekTotals, int) {
	t := domain.WeekTotals{
		Base:          decimal.Zero,
		Overtime:      decimal.Zero,
		Transport:     decimal.Zero,
		Meal:          decimal.Zero,
		Bonus:         decimal.Zero,
		Additions:     decimal.Zero,
		GrossEarnings: decimal.Zero,
		LoanDeduction: decimal.Zero,
		NetPay:        decimal.Zero,
	}
	for _, b := range breakdowns {
		t.Base = t.Base.Add(b.Base)
		t.Overtime = t.Overtime.Add(b.Overtime)
		t.Transport = t.Transport.Add(b.Transport)
		t.Meal = t.Meal.Add(b.Meal)
		t.Bonus = t.Bonus.Add(b.Bonus)
		t.Additions = t.Additions.Add(b.Additions)
		t.GrossEarnings = t.GrossEarnings.Add(b.GrossEarnings)
		t.LoanDeduction = t.LoanDeduction.Add(b.LoanDeduction)
		t.NetPay = t.NetPay.Add(b.NetPay)
	}
	return t, len(breakdowns)
}
