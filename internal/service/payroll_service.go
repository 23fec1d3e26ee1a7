package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/payroll"
	"github.com/mhans98/payroll-app/internal/repository"
	customError "github.com/mhans98/payroll-app/pkg/errors"
	"github.com/mhans98/payroll-app/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	entriesTable    = "payroll_entries"
	recentWeekLimit = 10
)

// PayrollRepositories groups the repositories PayrollService reads and writes
type PayrollRepositories struct {
	Weeks     repository.WeekRepository
	Entries   repository.EntryRepository
	Employees repository.EmployeeRepository
	Loans     repository.LoanRepository
	Audit     repository.AuditRepository
	Tx        repository.Transactor
}

type PayrollService struct {
	WeekRepo     repository.WeekRepository
	EntryRepo    repository.EntryRepository
	EmployeeRepo repository.EmployeeRepository
	LoanRepo     repository.LoanRepository
	tx           repository.Transactor
	totals       cache.TotalsCache
	calculator   payroll.Calculator
	metrics      *metrics.Metrics
	audit        *auditor
	logger       *zap.Logger
	location     *time.Location
	now          func() time.Time
}

func NewPayrollService(
	repos PayrollRepositories,
	totals cache.TotalsCache,
	calculator payroll.Calculator,
	m *metrics.Metrics,
	location *time.Location,
	logger *zap.Logger,
) *PayrollService {
	if location == nil {
		location = time.UTC
	}
	return &PayrollService{
		WeekRepo:     repos.Weeks,
		EntryRepo:    repos.Entries,
		EmployeeRepo: repos.Employees,
		LoanRepo:     repos.Loans,
		tx:           repos.Tx,
		totals:       totals,
		calculator:   calculator,
		metrics:      m,
		audit:        newAuditor(repos.Audit, logger),
		logger:       logger,
		location:     location,
		now:          time.Now,
	}
}

// ListWeeks returns the most recent weeks, newest first
func (s *PayrollService) ListWeeks(ctx context.Context) ([]*domain.PayrollWeek, error) {
	weeks, err := s.WeekRepo.ListRecent(ctx, recentWeekLimit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return weeks, nil
}

// CreateWeek returns the week spanning start..end, creating it if needed
func (s *PayrollService) CreateWeek(ctx context.Context, request *domain.CreateWeekRequest) (*domain.PayrollWeek, error) {
	if request.WeekStart.IsZero() || request.WeekEnd.IsZero() {
		return nil, customError.WrapInvalidRequest("week_start and week_end are required")
	}

	start, end := request.WeekStart.Time, request.WeekEnd.Time
	if !utils.IsSevenDaySpan(start, end) {
		return nil, customError.WrapInvalidWeekRange(start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	}

	label := request.WeekLabel
	if label == "" {
		label = utils.WeekLabel(start, end)
	}

	week, err := s.WeekRepo.GetOrCreate(ctx, &domain.PayrollWeek{
		ID:        uuid.New(),
		WeekStart: start,
		WeekEnd:   end,
		WeekLabel: label,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return week, nil
}

// CurrentWeek returns the Sunday-first week containing now in the service time zone
func (s *PayrollService) CurrentWeek(ctx context.Context) (*domain.PayrollWeek, error) {
	start, end := utils.CurrentWeek(s.now(), s.location)
	return s.CreateWeek(ctx, &domain.CreateWeekRequest{
		WeekStart: domain.NewDate(start),
		WeekEnd:   domain.NewDate(end),
	})
}

func (s *PayrollService) getWeek(ctx context.Context, id uuid.UUID) (*domain.PayrollWeek, error) {
	week, err := s.WeekRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapWeekNotFound(id.String()))
	}
	return week, nil
}

func (s *PayrollService) getEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.EmployeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapEmployeeNotFound(id.String()))
	}
	return employee, nil
}

func newEntry(employeeID, weekID uuid.UUID, bonus decimal.Decimal, now time.Time) *domain.WeekEntry {
	return &domain.WeekEntry{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		WeekID:             weekID,
		OvertimeHours:      domain.OvertimeHours{}.Normalize(),
		Bonus:              bonus,
		Additions:          domain.Additions{},
		RequestedDeduction: decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// GetOrCreateEntry returns the employee's entry for the week, creating an empty one if needed
func (s *PayrollService) GetOrCreateEntry(ctx context.Context, request *domain.CreateEntryRequest) (*domain.WeekEntry, error) {
	if _, err := s.getEmployee(ctx, request.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := s.getWeek(ctx, request.WeekID); err != nil {
		return nil, err
	}

	entry, created, err := s.EntryRepo.GetOrCreate(ctx, newEntry(request.EmployeeID, request.WeekID, decimal.Zero, s.now()))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if created {
		s.invalidateTotals(ctx, request.WeekID)
	}
	return entry, nil
}

// UpdateEntry applies a partial update to the inputs of an entry
func (s *PayrollService) UpdateEntry(ctx context.Context, id uuid.UUID, request *domain.UpdateEntryRequest) (*domain.WeekEntry, error) {
	entry, err := s.EntryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapEntryNotFound(id.String()))
	}
	before := *entry

	request.Apply(entry)
	if err := s.EntryRepo.Update(ctx, entry); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateTotals(ctx, entry.WeekID)
	s.audit.record(ctx, entriesTable, entry.ID, domain.AuditActionUpdate, &before, entry)
	return entry, nil
}

// InitializeWeek creates the missing entries of every active employee, seeding
// the bonus from the employee's default
func (s *PayrollService) InitializeWeek(ctx context.Context, weekID uuid.UUID) (*domain.InitializeWeekResponse, error) {
	if _, err := s.getWeek(ctx, weekID); err != nil {
		return nil, err
	}

	result := &domain.InitializeWeekResponse{WeekID: weekID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employees, err := s.EmployeeRepo.ListActive(ctx)
		if err != nil {
			return err
		}
		result.EmployeeCount = len(employees)

		now := s.now()
		for _, employee := range employees {
			_, created, err := s.EntryRepo.GetOrCreate(ctx, newEntry(employee.ID, weekID, employee.DefaultBonus, now))
			if err != nil {
				return err
			}
			if created {
				result.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if result.Created > 0 {
		s.metrics.EntriesInitialized.Add(float64(result.Created))
		s.invalidateTotals(ctx, weekID)
	}
	s.logger.Info("week initialized",
		zap.String("week_id", weekID.String()),
		zap.Int("employees", result.EmployeeCount),
		zap.Int("created", result.Created),
	)
	return result, nil
}

// ListEntries returns the week's entries of active employees with their computed pay
func (s *PayrollService) ListEntries(ctx context.Context, weekID uuid.UUID) ([]*domain.EntryWithBreakdown, error) {
	if _, err := s.getWeek(ctx, weekID); err != nil {
		return nil, err
	}

	entries, err := s.EntryRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	out := make([]*domain.EntryWithBreakdown, 0, len(entries))
	for _, entry := range entries {
		out = append(out, &domain.EntryWithBreakdown{
			EntryWithEmployee: *entry,
			Calculated:        s.calculator.Compute(entry.RateSchedule, &entry.WeekEntry),
		})
	}
	return out, nil
}

// Payslip assembles the printable pay view of one entry
func (s *PayrollService) Payslip(ctx context.Context, entryID uuid.UUID) (*domain.Payslip, error) {
	entry, err := s.EntryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, lookupError(err, customError.WrapEntryNotFound(entryID.String()))
	}
	employee, err := s.getEmployee(ctx, entry.EmployeeID)
	if err != nil {
		return nil, err
	}
	week, err := s.getWeek(ctx, entry.WeekID)
	if err != nil {
		return nil, err
	}
	loans, err := s.LoanRepo.ListOutstandingByEmployee(ctx, entry.EmployeeID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.Payslip{
		Employee:    employee,
		Week:        week,
		Entry:       entry,
		Breakdown:   s.calculator.Compute(employee.RateSchedule, entry),
		LoanBalance: payroll.TotalRemaining(loans),
	}, nil
}

func (s *PayrollService) invalidateTotals(ctx context.Context, weekID uuid.UUID) {
	if err := s.totals.Invalidate(ctx, weekID); err != nil {
		s.logger.Warn("failed to invalidate weekly totals", zap.String("week_id", weekID.String()), zap.Error(err))
	}
}
