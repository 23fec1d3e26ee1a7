// Package payroll computes weekly pay breakdowns and allocates loan
// deductions. It performs no I/O; callers load and persist the records.
package payroll

import (
	"github.com/mhans98/payroll-app/pkg/utils"

	"github.com/shopspring/decimal"
)

// RoundUnitValue is the money unit every pay item is rounded up to
const RoundUnitValue = 1000

var roundUnit = decimal.NewFromInt(RoundUnitValue)

// RoundUp rounds amount up to the next multiple of RoundUnitValue. Zero and
// negative amounts round to zero.
func RoundUp(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(roundUnit).Ceil().Mul(roundUnit)
}

// RoundUpFloat is RoundUp for float input; NaN and infinities become zero.
func RoundUpFloat(amount float64) decimal.Decimal {
	return RoundUp(utils.DecimalFromFloat(amount))
}
