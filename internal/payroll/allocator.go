package payroll

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"github.com/shopspring/decimal"
)

// ExcessPolicy decides what happens to the part of a requested deduction that
// exceeds the employee's total outstanding balance
type ExcessPolicy string

const (
	// ExcessDrop applies what fits and leaves the rest unallocated
	ExcessDrop ExcessPolicy = "drop"
	// ExcessReject refuses the whole allocation
	ExcessReject ExcessPolicy = "reject"
)

// ParseExcessPolicy falls back to ExcessDrop for unknown values
func ParseExcessPolicy(s string) ExcessPolicy {
	if ExcessPolicy(s) == ExcessReject {
		return ExcessReject
	}
	return ExcessDrop
}

// Allocation is the outcome of splitting one deduction across loans
type Allocation struct {
	Payments    []*domain.LoanPayment
	Requested   decimal.Decimal
	Applied     decimal.Decimal
	Unallocated decimal.Decimal
}

// Allocator applies deductions to loans oldest first
type Allocator struct {
	Policy ExcessPolicy
	// NewID generates payment IDs; uuid.New when nil
	NewID func() uuid.UUID
}

// Allocate distributes amount over the outstanding loans in loans, mutating
// each loan it touches and returning one payment per touched loan. The
// caller must hold the employee's loans exclusively and persist the loans and
// payments together.
func (a Allocator) Allocate(loans []*domain.Loan, weekID uuid.UUID, amount decimal.Decimal, paidAt time.Time) (*Allocation, error) {
	result := &Allocation{
		Payments:    []*domain.LoanPayment{},
		Requested:   amount,
		Applied:     decimal.Zero,
		Unallocated: decimal.Zero,
	}
	if !amount.IsPositive() {
		return result, nil
	}

	outstanding := OutstandingOldestFirst(loans)

	if total := TotalRemaining(outstanding); amount.GreaterThan(total) && a.Policy == ExcessReject {
		return nil, customError.WrapDeductionExceedsOutstanding(amount.String(), total.String())
	}

	newID := a.NewID
	if newID == nil {
		newID = uuid.New
	}

	left := amount
	for _, loan := range outstanding {
		if !left.IsPositive() {
			break
		}

		applied := decimal.Min(left, loan.Remaining)
		loan.Remaining = loan.Remaining.Sub(applied)
		if loan.Remaining.IsZero() {
			loan.IsActive = false
		}
		loan.UpdatedAt = paidAt

		result.Payments = append(result.Payments, &domain.LoanPayment{
			ID:           newID(),
			LoanID:       loan.ID,
			WeekID:       weekID,
			Amount:       applied,
			BalanceAfter: loan.Remaining,
			PaymentDate:  paidAt,
			CreatedAt:    paidAt,
		})

		result.Applied = result.Applied.Add(applied)
		left = left.Sub(applied)
	}

	result.Unallocated = left
	return result, nil
}

// OutstandingOldestFirst filters loans to those still owing and orders them
// by start date, then by ID. The input slice is not reordered.
func OutstandingOldestFirst(loans []*domain.Loan) []*domain.Loan {
	out := make([]*domain.Loan, 0, len(loans))
	for _, l := range loans {
		if l != nil && l.IsOutstanding() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out
}

// TotalRemaining sums the remaining balance of loans
func TotalRemaining(loans []*domain.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l != nil && l.IsOutstanding() {
			total = total.Add(l.Remaining)
		}
	}
	return total
}
