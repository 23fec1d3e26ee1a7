package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Create(ctx context.Context, request *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateEmployeeRequest) (*domain.Employee, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) ListWeeks(ctx context.Context) ([]*domain.PayrollWeek, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PayrollWeek), args.Error(1)
}

func (m *MockPayrollService) CreateWeek(ctx context.Context, request *domain.CreateWeekRequest) (*domain.PayrollWeek, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollWeek), args.Error(1)
}

func (m *MockPayrollService) GetOrCreateEntry(ctx context.Context, request *domain.CreateEntryRequest) (*domain.WeekEntry, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeekEntry), args.Error(1)
}

func (m *MockPayrollService) UpdateEntry(ctx context.Context, id uuid.UUID, request *domain.UpdateEntryRequest) (*domain.WeekEntry, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeekEntry), args.Error(1)
}

func (m *MockPayrollService) InitializeWeek(ctx context.Context, weekID uuid.UUID) (*domain.InitializeWeekResponse, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InitializeWeekResponse), args.Error(1)
}

func (m *MockPayrollService) ListEntries(ctx context.Context, weekID uuid.UUID) ([]*domain.EntryWithBreakdown, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EntryWithBreakdown), args.Error(1)
}

func (m *MockPayrollService) Payslip(ctx context.Context, entryID uuid.UUID) (*domain.Payslip, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) ListActive(ctx context.Context) ([]*domain.LoanWithEmployee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanWithEmployee), args.Error(1)
}

func (m *MockLoanService) GetOutstanding(ctx context.Context, employeeID uuid.UUID) (*domain.OutstandingResponse, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutstandingResponse), args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) AllocatePayment(ctx context.Context, request *domain.AllocatePaymentRequest) (*domain.AllocatePaymentResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllocatePaymentResponse), args.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, id uuid.UUID, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLoanService) PaymentHistory(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanPaymentHistory), args.Error(1)
}

func (m *MockLoanService) EmployeeLoanHistory(ctx context.Context, employeeID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanPaymentHistory), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WeeklyReport(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReportResponse), args.Error(1)
}

func (m *MockReportService) ExportWeek(ctx context.Context, weekID uuid.UUID) (string, [][]string, error) {
	args := m.Called(ctx, weekID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([][]string), args.Error(2)
}

func (m *MockReportService) ListAudit(ctx context.Context) ([]*domain.AuditLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditLog), args.Error(1)
}

func (m *MockReportService) ResetAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
