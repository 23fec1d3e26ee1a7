package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

const loanColumns = `l.id, l.loan_code, l.employee_id, l.principal, l.remaining, l.start_date, l.is_active, l.notes, l.created_at, l.updated_at`

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, loan_code, employee_id, principal, remaining, start_date, is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		loan.ID,
		loan.LoanCode,
		loan.EmployeeID,
		loan.Principal,
		loan.Remaining,
		loan.StartDate,
		loan.IsActive,
		loan.Notes,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.id = $1`

	var loan domain.Loan
	if err := conn(ctx, r.db).GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetByCode(ctx context.Context, code string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.loan_code = $1`

	var loan domain.Loan
	if err := conn(ctx, r.db).GetContext(ctx, &loan, query, code); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListActive(ctx context.Context) ([]*domain.LoanWithEmployee, error) {
	query := `
		SELECT ` + loanColumns + `, e.employee_code, e.name AS employee_name
		FROM loans l
		JOIN employees e ON l.employee_id = e.id
		WHERE l.is_active = TRUE
		ORDER BY l.start_date DESC, l.created_at DESC
	`

	loans := []*domain.LoanWithEmployee{}
	if err := conn(ctx, r.db).SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

const outstandingByEmployeeQuery = `SELECT ` + loanColumns + `
	FROM loans l
	WHERE l.employee_id = $1 AND l.is_active = TRUE AND l.remaining > 0
	ORDER BY l.start_date, l.id`

func (r *loanRepository) ListOutstandingByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Loan, error) {
	loans := []*domain.Loan{}
	if err := conn(ctx, r.db).SelectContext(ctx, &loans, outstandingByEmployeeQuery, employeeID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) LockOutstandingByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Loan, error) {
	loans := []*domain.Loan{}
	if err := conn(ctx, r.db).SelectContext(ctx, &loans, outstandingByEmployeeQuery+` FOR UPDATE`, employeeID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) UpdateBalance(ctx context.Context, loan *domain.Loan) error {
	query := `UPDATE loans SET remaining = $2, is_active = $3, updated_at = $4 WHERE id = $1`

	if loan.UpdatedAt.IsZero() {
		loan.UpdatedAt = time.Now()
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		loan.ID,
		loan.Remaining,
		loan.IsActive,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET principal = $2, remaining = $3, is_active = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	loan.UpdatedAt = time.Now()
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		loan.ID,
		loan.Principal,
		loan.Remaining,
		loan.IsActive,
		loan.Notes,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	return err
}
