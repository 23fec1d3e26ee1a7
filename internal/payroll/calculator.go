package payroll

import (
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/shopspring/decimal"
)

// Calculator turns a rate schedule and one week entry into a PayBreakdown.
// The zero value is ready to use.
type Calculator struct {
	// HonorZeroOverride makes an explicit override of 0 win over the
	// schedule rate. When false a zero override is treated as absent.
	HonorZeroOverride bool
}

var defaultCalculator = Calculator{}

// ComputeBreakdown computes a breakdown with the default calculator
func ComputeBreakdown(rates domain.RateSchedule, entry *domain.WeekEntry) domain.PayBreakdown {
	return defaultCalculator.Compute(rates, entry)
}

// Compute rounds every pay item on its own before any of them are summed.
func (c Calculator) Compute(rates domain.RateSchedule, entry *domain.WeekEntry) domain.PayBreakdown {
	if entry == nil {
		entry = &domain.WeekEntry{}
	}

	effective := c.EffectiveRates(rates, entry.RateOverrides)
	days := decimal.NewFromInt(int64(clampDays(entry.DaysPresent)))
	hours := entry.OvertimeHours.Total()

	b := domain.PayBreakdown{
		Base:          RoundUp(effective.DailyWage.Mul(days)),
		OvertimeHours: hours,
		Overtime:      RoundUp(effective.HourlyOvertime.Mul(hours)),
		Transport:     RoundUp(effective.DailyTransport.Mul(days)),
		Meal:          RoundUp(effective.DailyMeal.Mul(days)),
		Bonus:         RoundUp(entry.Bonus),
		AdditionItems: make([]decimal.Decimal, 0, len(entry.Additions)),
		Additions:     decimal.Zero,
		LoanDeduction: RoundUp(entry.RequestedDeduction),
		Rates:         effective,
	}

	for _, item := range entry.Additions {
		rounded := RoundUp(item.Amount)
		b.AdditionItems = append(b.AdditionItems, rounded)
		b.Additions = b.Additions.Add(rounded)
	}

	b.GrossEarnings = b.Base.
		Add(b.Overtime).
		Add(b.Transport).
		Add(b.Meal).
		Add(b.Bonus).
		Add(b.Additions)
	b.NetPay = b.GrossEarnings.Sub(b.LoanDeduction)

	return b
}

// EffectiveRates resolves each overridable rate against the schedule
func (c Calculator) EffectiveRates(rates domain.RateSchedule, o domain.RateOverrides) domain.EffectiveRates {
	return domain.EffectiveRates{
		DailyWage:      c.resolveRate(o.DailyWage, rates.DailyWage),
		HourlyOvertime: c.resolveRate(o.HourlyOvertime, rates.HourlyOvertime),
		DailyTransport: c.resolveRate(o.DailyTransport, rates.DailyTransport),
		DailyMeal:      c.resolveRate(o.DailyMeal, rates.DailyMeal),
	}
}

func (c Calculator) resolveRate(override *decimal.Decimal, scheduled decimal.Decimal) decimal.Decimal {
	if override != nil && (c.HonorZeroOverride || !override.IsZero()) {
		return *override
	}
	return scheduled
}

func clampDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > domain.DaysPerWeek {
		return domain.DaysPerWeek
	}
	return days
}
