package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan represents money lent to an employee and repaid through weekly deductions
type Loan struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	LoanCode   string          `json:"loan_code" db:"loan_code"`
	EmployeeID uuid.UUID       `json:"employee_id" db:"employee_id"`
	Principal  decimal.Decimal `json:"principal" db:"principal"`
	Remaining  decimal.Decimal `json:"remaining" db:"remaining"`
	StartDate  time.Time       `json:"start_date" db:"start_date"`
	IsActive   bool            `json:"is_active" db:"is_active"`
	Notes      *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// IsOutstanding reports whether the loan still takes part in deduction allocation
func (l *Loan) IsOutstanding() bool {
	return l.IsActive && l.Remaining.IsPositive()
}

// Paid returns principal minus remaining
func (l *Loan) Paid() decimal.Decimal {
	return l.Principal.Sub(l.Remaining)
}

// LoanWithEmployee is a loan row joined with its owner for listings
type LoanWithEmployee struct {
	Loan
	EmployeeCode string `json:"employee_code" db:"employee_code"`
	EmployeeName string `json:"employee_name" db:"employee_name"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	LoanCode   string          `json:"loan_code" validate:"required,max=50"`
	EmployeeID uuid.UUID       `json:"employee_id" validate:"required"`
	Principal  decimal.Decimal `json:"principal" validate:"decimal_gt=0"`
	StartDate  Date            `json:"start_date"`
	Notes      *string         `json:"notes,omitempty"`
}

// UpdateLoanRequest is the administrative correction of a loan ledger
type UpdateLoanRequest struct {
	Principal decimal.Decimal `json:"principal" validate:"decimal_gt=0"`
	Remaining decimal.Decimal `json:"remaining" validate:"decimal_gte=0"`
	Notes     *string         `json:"notes,omitempty"`
}

type AllocatePaymentRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" validate:"required"`
	WeekID     uuid.UUID       `json:"week_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

type AllocatePaymentResponse struct {
	Payments    []*LoanPayment  `json:"payments"`
	Requested   decimal.Decimal `json:"requested"`
	Applied     decimal.Decimal `json:"applied"`
	Unallocated decimal.Decimal `json:"unallocated"`
}

type OutstandingResponse struct {
	EmployeeID  uuid.UUID       `json:"employee_id"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Loans       []*Loan         `json:"loans"`
}
