package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

const paymentHistorySelect = `
	SELECT lp.id, lp.loan_id, lp.week_id, lp.amount, lp.balance_after, lp.payment_date, lp.created_at,
		l.loan_code, l.principal, w.week_label, w.week_start, w.week_end
	FROM loan_payments lp
	JOIN loans l ON lp.loan_id = l.id
	LEFT JOIN payroll_weeks w ON lp.week_id = w.id`

type loanPaymentRepository struct {
	db *sqlx.DB
}

func NewLoanPaymentRepository(db *sqlx.DB) LoanPaymentRepository {
	return &loanPaymentRepository{db: db}
}

func (r *loanPaymentRepository) Create(ctx context.Context, payment *domain.LoanPayment) error {
	query := `
		INSERT INTO loan_payments (id, loan_id, week_id, amount, balance_after, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.WeekID,
		payment.Amount,
		payment.BalanceAfter,
		payment.PaymentDate,
		payment.CreatedAt,
	)

	return err
}

func (r *loanPaymentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	query := paymentHistorySelect + `
		WHERE lp.loan_id = $1
		ORDER BY lp.payment_date DESC, lp.created_at DESC`

	payments := []*domain.LoanPaymentHistory{}
	if err := conn(ctx, r.db).SelectContext(ctx, &payments, query, loanID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *loanPaymentRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	query := paymentHistorySelect + `
		WHERE l.employee_id = $1
		ORDER BY lp.payment_date DESC, lp.created_at DESC`

	payments := []*domain.LoanPaymentHistory{}
	if err := conn(ctx, r.db).SelectContext(ctx, &payments, query, employeeID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *loanPaymentRepository) DeleteByLoan(ctx context.Context, loanID uuid.UUID) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM loan_payments WHERE loan_id = $1`, loanID)
	return err
}
