package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
)

// EmployeeService is the employee use case set served over HTTP
type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	Create(ctx context.Context, request *domain.CreateEmployeeRequest) (*domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, request *domain.UpdateEmployeeRequest) (*domain.Employee, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PayrollService covers payroll weeks and their entries
type PayrollService interface {
	ListWeeks(ctx context.Context) ([]*domain.PayrollWeek, error)
	CreateWeek(ctx context.Context, request *domain.CreateWeekRequest) (*domain.PayrollWeek, error)
	GetOrCreateEntry(ctx context.Context, request *domain.CreateEntryRequest) (*domain.WeekEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, request *domain.UpdateEntryRequest) (*domain.WeekEntry, error)
	InitializeWeek(ctx context.Context, weekID uuid.UUID) (*domain.InitializeWeekResponse, error)
	ListEntries(ctx context.Context, weekID uuid.UUID) ([]*domain.EntryWithBreakdown, error)
	Payslip(ctx context.Context, entryID uuid.UUID) (*domain.Payslip, error)
}

// LoanService covers loans, deduction allocation and payment history
type LoanService interface {
	ListActive(ctx context.Context) ([]*domain.LoanWithEmployee, error)
	GetOutstanding(ctx context.Context, employeeID uuid.UUID) (*domain.OutstandingResponse, error)
	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error)
	AllocatePayment(ctx context.Context, request *domain.AllocatePaymentRequest) (*domain.AllocatePaymentResponse, error)
	UpdateLoan(ctx context.Context, id uuid.UUID, request *domain.UpdateLoanRequest) (*domain.Loan, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
	PaymentHistory(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPaymentHistory, error)
	EmployeeLoanHistory(ctx context.Context, employeeID uuid.UUID) ([]*domain.LoanPaymentHistory, error)
}

// ReportService covers weekly totals, exports, audit and maintenance
type ReportService interface {
	WeeklyReport(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, error)
	ExportWeek(ctx context.Context, weekID uuid.UUID) (string, [][]string, error)
	ListAudit(ctx context.Context) ([]*domain.AuditLog, error)
	ResetAll(ctx context.Context) error
}
