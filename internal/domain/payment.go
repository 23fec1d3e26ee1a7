package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPayment is one append-only ledger row produced by a deduction allocation
type LoanPayment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	LoanID       uuid.UUID       `json:"loan_id" db:"loan_id"`
	WeekID       uuid.UUID       `json:"week_id" db:"week_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after" db:"balance_after"`
	PaymentDate  time.Time       `json:"payment_date" db:"payment_date"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// LoanPaymentHistory is a payment row joined with its loan and week for history views
type LoanPaymentHistory struct {
	LoanPayment
	LoanCode  *string          `json:"loan_code,omitempty" db:"loan_code"`
	Principal *decimal.Decimal `json:"principal,omitempty" db:"principal"`
	WeekLabel *string          `json:"week_label,omitempty" db:"week_label"`
	WeekStart *time.Time       `json:"week_start,omitempty" db:"week_start"`
	WeekEnd   *time.Time       `json:"week_end,omitempty" db:"week_end"`
}
