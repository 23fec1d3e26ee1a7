package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/payroll"
	"github.com/mhans98/payroll-app/internal/repository"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const loansTable = "loans"

// LoanRepositories groups the repositories LoanService reads and writes
type LoanRepositories struct {
	Loans     repository.LoanRepository
	Payments  repository.LoanPaymentRepository
	Employees repository.EmployeeRepository
	Weeks     repository.WeekRepository
	Audit     repository.AuditRepository
	Tx        repository.Transactor
}

type LoanService struct {
	LoanRepo     repository.LoanRepository
	PaymentRepo  repository.LoanPaymentRepository
	EmployeeRepo repository.EmployeeRepository
	WeekRepo     repository.WeekRepository
	tx           repository.Transactor
	locker       cache.Locker
	totals       cache.TotalsCache
	allocator    payroll.Allocator
	metrics      *metrics.Metrics
	audit        *auditor
	logger       *zap.Logger
	now          func() time.Time
}

func NewLoanService(
	repos LoanRepositories,
	locker cache.Locker,
	totals cache.TotalsCache,
	allocator payroll.Allocator,
	m *metrics.Metrics,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		LoanRepo:     repos.Loans,
		PaymentRepo:  repos.Payments,
		EmployeeRepo: repos.Employees,
		WeekRepo:     repos.Weeks,
		tx:           repos.Tx,
		locker:       locker,
		totals:       totals,
		allocator:    allocator,
		metrics:      m,
		audit:        newAuditor(repos.Audit, logger),
		logger:       logger,
		now:          time.Now,
	}
}

// ListActive returns all active loans with their employee
func (s *LoanService) ListActive(ctx context.Context) ([]*domain.LoanWithEmployee, error) {
	loans, err := s.LoanRepo.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// GetOutstanding returns the employee's outstanding loans, oldest first, and their total
func (s *LoanService) GetOutstanding(ctx context.Context, employeeID uuid.UUID) (*domain.OutstandingResponse, error) {
	loans, err := s.LoanRepo.ListOutstandingByEmployee(ctx, employeeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.OutstandingResponse{
		EmployeeID:  employeeID,
		Outstanding: payroll.TotalRemaining(loans),
		Loans:       loans,
	}, nil
}

func (s *LoanService) getLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapLoanNotFound(id.String()))
	}
	return loan, nil
}

// CreateLoan opens a loan with remaining equal to principal
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if !request.Principal.IsPositive() {
		return nil, customError.WrapInvalidLoanAmount(request.Principal.String())
	}

	if _, err := s.EmployeeRepo.GetByID(ctx, request.EmployeeID); err != nil {
		return nil, lookupError(err, customError.WrapEmployeeNotFound(request.EmployeeID.String()))
	}

	existing, err := s.LoanRepo.GetByCode(ctx, request.LoanCode)
	if err == nil && existing != nil {
		return nil, customError.WrapLoanAlreadyExists(request.LoanCode)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	startDate := request.StartDate
	if startDate.IsZero() {
		startDate = domain.NewDate(now)
	}

	loan := &domain.Loan{
		ID:         uuid.New(),
		LoanCode:   request.LoanCode,
		EmployeeID: request.EmployeeID,
		Principal:  request.Principal,
		Remaining:  request.Principal,
		StartDate:  startDate.Time,
		IsActive:   true,
		Notes:      request.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.record(ctx, loansTable, loan.ID, domain.AuditActionInsert, nil, loan)
	s.logger.Info("loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("employee_id", loan.EmployeeID.String()),
		zap.String("principal", loan.Principal.String()),
	)
	return loan, nil
}

// AllocatePayment applies a weekly deduction to the employee's loans, oldest
// first. The employee lock and the row locks taken inside the transaction keep
// concurrent allocations for the same employee from interleaving.
func (s *LoanService) AllocatePayment(ctx context.Context, request *domain.AllocatePaymentRequest) (*domain.AllocatePaymentResponse, error) {
	if !request.Amount.IsPositive() {
		s.metrics.ObserveAllocation(metrics.OutcomeNoop, decimal.Zero, decimal.Zero, 0)
		return &domain.AllocatePaymentResponse{
			Payments:    []*domain.LoanPayment{},
			Requested:   request.Amount,
			Applied:     decimal.Zero,
			Unallocated: decimal.Zero,
		}, nil
	}

	if _, err := s.EmployeeRepo.GetByID(ctx, request.EmployeeID); err != nil {
		return nil, lookupError(err, customError.WrapEmployeeNotFound(request.EmployeeID.String()))
	}
	if _, err := s.WeekRepo.GetByID(ctx, request.WeekID); err != nil {
		return nil, lookupError(err, customError.WrapWeekNotFound(request.WeekID.String()))
	}

	release, err := s.locker.Acquire(ctx, cache.EmployeeLockKey(request.EmployeeID))
	if err != nil {
		if errors.Is(err, cache.ErrLockNotAcquired) {
			return nil, customError.WrapAllocationInProgress(request.EmployeeID.String())
		}
		return nil, customError.WrapCacheError(err)
	}
	defer release()

	var allocation *payroll.Allocation
	settled := 0
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		loans, err := s.LoanRepo.LockOutstandingByEmployee(ctx, request.EmployeeID)
		if err != nil {
			return err
		}

		allocation, err = s.allocator.Allocate(loans, request.WeekID, request.Amount, s.now())
		if err != nil {
			return err
		}

		byID := make(map[uuid.UUID]*domain.Loan, len(loans))
		for _, loan := range loans {
			byID[loan.ID] = loan
		}
		for _, payment := range allocation.Payments {
			loan := byID[payment.LoanID]
			if err := s.LoanRepo.UpdateBalance(ctx, loan); err != nil {
				return err
			}
			if err := s.PaymentRepo.Create(ctx, payment); err != nil {
				return err
			}
			if !loan.IsActive {
				settled++
			}
		}
		return nil
	})
	if err != nil {
		var be *customError.BusinessError
		if errors.As(err, &be) {
			s.metrics.ObserveAllocation(metrics.OutcomeRejected, decimal.Zero, decimal.Zero, 0)
			return nil, be
		}
		s.metrics.ObserveAllocation(metrics.OutcomeFailed, decimal.Zero, decimal.Zero, 0)
		return nil, customError.WrapDatabaseError(err)
	}

	s.metrics.ObserveAllocation(metrics.OutcomeApplied, allocation.Applied, allocation.Unallocated, settled)
	if err := s.totals.Invalidate(ctx, request.WeekID); err != nil {
		s.logger.Warn("failed to invalidate weekly totals", zap.String("week_id", request.WeekID.String()), zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("employee_id", request.EmployeeID.String()),
		zap.String("week_id", request.WeekID.String()),
		zap.String("requested", allocation.Requested.String()),
		zap.String("applied", allocation.Applied.String()),
		zap.Int("payments", len(allocation.Payments)),
	}
	if allocation.Unallocated.IsPositive() {
		s.logger.Warn("deduction exceeds outstanding loans", append(fields, zap.String("unallocated", allocation.Unallocated.String()))...)
	} else {
		s.logger.Info("loan deduction allocated", fields...)
	}

	return &domain.AllocatePaymentResponse{
		Payments:    allocation.Payments,
		Requested:   allocation.Requested,
		Applied:     allocation.Applied,
		Unallocated: allocation.Unallocated,
	}, nil
}

// UpdateLoan overwrites a loan's ledger values. It bypasses the payment
// history and exists for administrative corrections.
func (s *LoanService) UpdateLoan(ctx context.Context, id uuid.UUID, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	if !request.Principal.IsPositive() {
		return nil, customError.WrapInvalidLoanAmount(request.Principal.String())
	}
	if request.Remaining.IsNegative() || request.Remaining.GreaterThan(request.Principal) {
		return nil, customError.WrapInvalidLoanBalance(request.Principal.String(), request.Remaining.String())
	}

	loan, err := s.getLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *loan

	loan.Principal = request.Principal
	loan.Remaining = request.Remaining
	loan.Notes = request.Notes
	loan.IsActive = request.Remaining.IsPositive()

	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.record(ctx, loansTable, loan.ID, domain.AuditActionUpdate, &before, loan)
	return loan, nil
}

// MarkPaid settles a loan without recording a payment
func (s *LoanService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *loan

	loan.Remaining = decimal.Zero
	loan.IsActive = false
	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.record(ctx, loansTable, loan.ID, domain.AuditActionUpdate, &before, loan)
	return loan, nil
}

// DeleteLoan removes a loan together with its payments
func (s *LoanService) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	loan, err := s.getLoan(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.PaymentRepo.DeleteByLoan(ctx, id); err != nil {
			return err
		}
		return s.LoanRepo.Delete(ctx, id)
	})
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.audit.record(ctx, loansTable, id, domain.AuditActionDelete, loan, nil)
	s.logger.Info("loan deleted", zap.String("loan_id", id.String()))
	return nil
}

// PaymentHistory lists the payments of one loan, newest first
func (s *LoanService) PaymentHistory(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	if _, err := s.getLoan(ctx, loanID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

// EmployeeLoanHistory lists the payments of all of an employee's loans, newest first
func (s *LoanService) EmployeeLoanHistory(ctx context.Context, employeeID uuid.UUID) ([]*domain.LoanPaymentHistory, error) {
	if _, err := s.EmployeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, lookupError(err, customError.WrapEmployeeNotFound(employeeID.String()))
	}

	payments, err := s.PaymentRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}
