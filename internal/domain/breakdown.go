package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EffectiveRates are the rates a breakdown was computed with after overrides
type EffectiveRates struct {
	DailyWage      decimal.Decimal `json:"daily_wage"`
	HourlyOvertime decimal.Decimal `json:"hourly_overtime"`
	DailyTransport decimal.Decimal `json:"daily_transport"`
	DailyMeal      decimal.Decimal `json:"daily_meal"`
}

// PayBreakdown is the itemized, rounded pay of one employee for one week.
// It is computed on read and never stored.
type PayBreakdown struct {
	Base          decimal.Decimal   `json:"base"`
	OvertimeHours decimal.Decimal   `json:"overtime_hours"`
	Overtime      decimal.Decimal   `json:"overtime"`
	Transport     decimal.Decimal   `json:"transport"`
	Meal          decimal.Decimal   `json:"meal"`
	Bonus         decimal.Decimal   `json:"bonus"`
	AdditionItems []decimal.Decimal `json:"addition_items"`
	Additions     decimal.Decimal   `json:"additions"`
	GrossEarnings decimal.Decimal   `json:"gross_earnings"`
	LoanDeduction decimal.Decimal   `json:"loan_deduction"`
	NetPay        decimal.Decimal   `json:"net_pay"`
	Rates         EffectiveRates    `json:"rates"`
}

// WeekTotals sums the breakdowns of all active employees in one week
type WeekTotals struct {
	Base          decimal.Decimal `json:"base"`
	Overtime      decimal.Decimal `json:"overtime"`
	Transport     decimal.Decimal `json:"transport"`
	Meal          decimal.Decimal `json:"meal"`
	Bonus         decimal.Decimal `json:"bonus"`
	Additions     decimal.Decimal `json:"additions"`
	GrossEarnings decimal.Decimal `json:"gross_earnings"`
	LoanDeduction decimal.Decimal `json:"loan_deduction"`
	NetPay        decimal.Decimal `json:"net_pay"`
}

type WeeklyReportResponse struct {
	WeekID        uuid.UUID  `json:"week_id"`
	Totals        WeekTotals `json:"totals"`
	EmployeeCount int        `json:"employee_count"`
}

// Payslip is the printable view of one entry
type Payslip struct {
	Employee    *Employee       `json:"employee"`
	Week        *PayrollWeek    `json:"week"`
	Entry       *WeekEntry      `json:"entry"`
	Breakdown   PayBreakdown    `json:"breakdown"`
	LoanBalance decimal.Decimal `json:"loan_balance"`
}
