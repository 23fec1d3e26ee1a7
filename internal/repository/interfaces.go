package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	// Create creates a new employee
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// GetByCode retrieves an employee by employee code
	GetByCode(ctx context.Context, code string) (*domain.Employee, error)

	// ListActive lists active employees ordered by name
	ListActive(ctx context.Context) ([]*domain.Employee, error)

	// Update updates an employee
	Update(ctx context.Context, employee *domain.Employee) error

	// Deactivate soft-deletes an employee
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// WeekRepository defines the interface for payroll week data operations
type WeekRepository interface {
	// GetOrCreate returns the week with the same start and end, inserting week if none exists
	GetOrCreate(ctx context.Context, week *domain.PayrollWeek) (*domain.PayrollWeek, error)

	// GetByID retrieves a week by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PayrollWeek, error)

	// ListRecent lists the latest weeks, newest first
	ListRecent(ctx context.Context, limit int) ([]*domain.PayrollWeek, error)
}

// EntryRepository defines the interface for week entry data operations
type EntryRepository interface {
	// GetOrCreate returns the entry for the entry's employee and week, inserting entry if none exists
	GetOrCreate(ctx context.Context, entry *domain.WeekEntry) (*domain.WeekEntry, bool, error)

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WeekEntry, error)

	// Update updates the inputs of an entry
	Update(ctx context.Context, entry *domain.WeekEntry) error

	// ListByWeek lists the entries of active employees for a week, ordered by employee name
	ListByWeek(ctx context.Context, weekID uuid.UUID) ([]*domain.EntryWithEmployee, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByCode retrieves a loan by loan code
	GetByCode(ctx context.Context, code string) (*domain.Loan, error)

	// ListActive lists active loans with their employee, latest start date first
	ListActive(ctx context.Context) ([]*domain.LoanWithEmployee, error)

	// ListOutstandingByEmployee lists an employee's outstanding loans, oldest first
	ListOutstandingByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Loan, error)

	// LockOutstandingByEmployee is ListOutstandingByEmployee with row locks held until the transaction ends
	LockOutstandingByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Loan, error)

	// UpdateBalance writes remaining and the active flag
	UpdateBalance(ctx context.Context, loan *domain.Loan) error

	// Update overwrites principal, remaining, notes and active flag
	Update(ctx context.Context, loan *domain.Loan) error

	// Delete deletes a loan
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanPaymentRepository defines the interface for loan payment data operations
type LoanPaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.LoanPayment) error

	// ListByLoan lists a loan's payments, newest first
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPaymentHistory, error)

	// ListByEmployee lists the payments of all loans of an employee, newest first
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.LoanPaymentHistory, error)

	// DeleteByLoan deletes a loan's payments
	DeleteByLoan(ctx context.Context, loanID uuid.UUID) error
}

// AuditRepository defines the interface for audit log data operations
type AuditRepository interface {
	// Create appends an audit record
	Create(ctx context.Context, entry *domain.AuditLog) error

	// ListRecent lists the latest audit records
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error)
}

// MaintenanceRepository holds operations spanning every table
type MaintenanceRepository interface {
	// ResetAll deletes all payroll data
	ResetAll(ctx context.Context) error
}
