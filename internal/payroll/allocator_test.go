package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	customError "github.com/mhans98/payroll-app/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	employeeID = uuid.MustParse("7f9c1f7e-0000-4000-8000-000000000001")
	weekID     = uuid.MustParse("7f9c1f7e-0000-4000-8000-0000000000aa")
	paidAt     = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
)

func newLoan(id string, start string, principal, remaining int64) *domain.Loan {
	startDate, _ := time.Parse("2006-01-02", start)
	return &domain.Loan{
		ID:         uuid.MustParse(id),
		EmployeeID: employeeID,
		Principal:  decimal.NewFromInt(principal),
		Remaining:  decimal.NewFromInt(remaining),
		StartDate:  startDate,
		IsActive:   remaining > 0,
	}
}

func sumPayments(payments []*domain.LoanPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func TestAllocate_OldestFirst(t *testing.T) {
	loanB := newLoan("00000000-0000-4000-8000-00000000000b", "2024-02-01", 5000, 5000)
	loanA := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 5000, 5000)

	result, err := Allocator{}.Allocate([]*domain.Loan{loanB, loanA}, weekID, d(7000), paidAt)
	require.NoError(t, err)

	require.Len(t, result.Payments, 2)
	assert.Equal(t, loanA.ID, result.Payments[0].LoanID)
	assert.True(t, result.Payments[0].Amount.Equal(d(5000)))
	assert.True(t, result.Payments[0].BalanceAfter.IsZero())
	assert.Equal(t, loanB.ID, result.Payments[1].LoanID)
	assert.True(t, result.Payments[1].Amount.Equal(d(2000)))
	assert.True(t, result.Payments[1].BalanceAfter.Equal(d(3000)))

	assert.False(t, loanA.IsActive)
	assert.True(t, loanA.Remaining.IsZero())
	assert.True(t, loanB.IsActive)
	assert.True(t, loanB.Remaining.Equal(d(3000)))

	for _, p := range result.Payments {
		assert.Equal(t, weekID, p.WeekID)
		assert.Equal(t, paidAt, p.PaymentDate)
		assert.NotEqual(t, uuid.Nil, p.ID)
	}
	assert.True(t, result.Applied.Equal(d(7000)))
	assert.True(t, result.Unallocated.IsZero())
}

func TestAllocate_TieBreakByLoanID(t *testing.T) {
	second := newLoan("00000000-0000-4000-8000-000000000002", "2024-01-01", 1000, 1000)
	first := newLoan("00000000-0000-4000-8000-000000000001", "2024-01-01", 1000, 1000)

	result, err := Allocator{}.Allocate([]*domain.Loan{second, first}, weekID, d(1500), paidAt)
	require.NoError(t, err)

	require.Len(t, result.Payments, 2)
	assert.Equal(t, first.ID, result.Payments[0].LoanID)
	assert.Equal(t, second.ID, result.Payments[1].LoanID)
}

func TestAllocate_NoOpOnZeroOrNegative(t *testing.T) {
	for _, amount := range []decimal.Decimal{decimal.Zero, d(-500), {}} {
		loan := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 5000, 5000)

		result, err := Allocator{}.Allocate([]*domain.Loan{loan}, weekID, amount, paidAt)
		require.NoError(t, err)

		assert.Empty(t, result.Payments)
		assert.True(t, result.Requested.Equal(amount), "requested %s", result.Requested)
		assert.True(t, result.Applied.IsZero())
		assert.True(t, result.Unallocated.IsZero())
		assert.True(t, loan.Remaining.Equal(d(5000)))
		assert.True(t, loan.IsActive)
	}
}

func TestAllocate_SkipsSettledAndInactiveLoans(t *testing.T) {
	settled := newLoan("00000000-0000-4000-8000-000000000001", "2023-06-01", 4000, 0)
	inactive := newLoan("00000000-0000-4000-8000-000000000002", "2023-07-01", 4000, 4000)
	inactive.IsActive = false
	open := newLoan("00000000-0000-4000-8000-000000000003", "2024-01-01", 4000, 4000)

	result, err := Allocator{}.Allocate([]*domain.Loan{settled, inactive, open}, weekID, d(1000), paidAt)
	require.NoError(t, err)

	require.Len(t, result.Payments, 1)
	assert.Equal(t, open.ID, result.Payments[0].LoanID)
	assert.True(t, inactive.Remaining.Equal(d(4000)))
}

func TestAllocate_StopsOnceAmountIsUsed(t *testing.T) {
	a := newLoan("00000000-0000-4000-8000-000000000001", "2024-01-01", 5000, 5000)
	b := newLoan("00000000-0000-4000-8000-000000000002", "2024-02-01", 5000, 5000)

	result, err := Allocator{}.Allocate([]*domain.Loan{a, b}, weekID, d(5000), paidAt)
	require.NoError(t, err)

	require.Len(t, result.Payments, 1, "the second loan must not get a zero payment row")
	assert.True(t, b.Remaining.Equal(d(5000)))
}

// The excess over the total outstanding balance is dropped on purpose: it is
// neither applied nor recorded. Callers detect it through Unallocated or by
// summing the returned payments.
func TestAllocate_ExcessIsDropped(t *testing.T) {
	loan := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 5000, 5000)

	result, err := Allocator{Policy: ExcessDrop}.Allocate([]*domain.Loan{loan}, weekID, d(8000), paidAt)
	require.NoError(t, err)

	assert.True(t, sumPayments(result.Payments).Equal(d(5000)))
	assert.True(t, result.Applied.Equal(d(5000)))
	assert.True(t, result.Unallocated.Equal(d(3000)))
	assert.True(t, result.Requested.Equal(d(8000)))
	assert.False(t, loan.IsActive)
}

func TestAllocate_ExcessRejected(t *testing.T) {
	loan := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 5000, 5000)

	result, err := Allocator{Policy: ExcessReject}.Allocate([]*domain.Loan{loan}, weekID, d(8000), paidAt)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, customError.ErrDeductionExceedsOutstanding)
	assert.True(t, loan.Remaining.Equal(d(5000)), "rejected allocation must not mutate loans")
}

func TestAllocate_Conservation(t *testing.T) {
	loan := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 10000, 10000)
	var ledger []*domain.LoanPayment

	for _, amount := range []int64{1500, 0, 2500, 999, 4000, 3000, 1000} {
		result, err := Allocator{}.Allocate([]*domain.Loan{loan}, weekID, d(amount), paidAt)
		require.NoError(t, err)
		ledger = append(ledger, result.Payments...)

		assert.True(t, loan.Principal.Sub(loan.Remaining).Equal(sumPayments(ledger)),
			"after %d: paid %s, ledger %s", amount, loan.Paid(), sumPayments(ledger))
		assert.False(t, loan.Remaining.IsNegative())
	}

	assert.True(t, loan.Remaining.IsZero())
	assert.False(t, loan.IsActive)
}

func TestAllocate_DeterministicIDs(t *testing.T) {
	fixed := uuid.MustParse("00000000-0000-4000-8000-0000000000ff")
	loan := newLoan("00000000-0000-4000-8000-00000000000a", "2024-01-01", 5000, 5000)

	result, err := Allocator{NewID: func() uuid.UUID { return fixed }}.Allocate([]*domain.Loan{loan}, weekID, d(1000), paidAt)
	require.NoError(t, err)

	require.Len(t, result.Payments, 1)
	assert.Equal(t, fixed, result.Payments[0].ID)
}

func TestParseExcessPolicy(t *testing.T) {
	assert.Equal(t, ExcessReject, ParseExcessPolicy("reject"))
	assert.Equal(t, ExcessDrop, ParseExcessPolicy("drop"))
	assert.Equal(t, ExcessDrop, ParseExcessPolicy(""))
	assert.Equal(t, ExcessDrop, ParseExcessPolicy("clamp"))
}
