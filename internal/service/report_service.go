package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/payroll"
	"github.com/mhans98/payroll-app/internal/repository"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"go.uber.org/zap"
)

const auditListLimit = 100

var exportHeader = []string{
	"Employee Code", "Name", "Days Present", "Overtime Hours", "Base", "Overtime", "Transport",
	"Meal", "Bonus", "Additions", "Gross Earnings", "Loan Deduction", "Net Pay",
}

type ReportService struct {
	WeekRepo        repository.WeekRepository
	EntryRepo       repository.EntryRepository
	AuditRepo       repository.AuditRepository
	MaintenanceRepo repository.MaintenanceRepository
	totals          cache.TotalsCache
	calculator      payroll.Calculator
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewReportService(
	weekRepo repository.WeekRepository,
	entryRepo repository.EntryRepository,
	auditRepo repository.AuditRepository,
	maintenanceRepo repository.MaintenanceRepository,
	totals cache.TotalsCache,
	calculator payroll.Calculator,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		WeekRepo:        weekRepo,
		EntryRepo:       entryRepo,
		AuditRepo:       auditRepo,
		MaintenanceRepo: maintenanceRepo,
		totals:          totals,
		calculator:      calculator,
		metrics:         m,
		logger:          logger,
	}
}

func (s *ReportService) weekEntries(ctx context.Context, weekID uuid.UUID) (*domain.PayrollWeek, []*domain.EntryWithEmployee, error) {
	week, err := s.WeekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, nil, lookupError(err, customError.WrapWeekNotFound(weekID.String()))
	}

	entries, err := s.EntryRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}
	return week, entries, nil
}

// WeeklyReport sums the computed pay of all active employees in a week.
// Results are cached per week until an entry, allocation, rate change or reset
// drops them.
func (s *ReportService) WeeklyReport(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, error) {
	cached, ok, err := s.totals.Get(ctx, weekID)
	switch {
	case err != nil:
		s.metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("failed to read cached weekly totals", zap.String("week_id", weekID.String()), zap.Error(err))
	case ok:
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	_, entries, err := s.weekEntries(ctx, weekID)
	if err != nil {
		return nil, err
	}

	breakdowns := make([]domain.PayBreakdown, 0, len(entries))
	for _, entry := range entries {
		breakdowns = append(breakdowns, s.calculator.Compute(entry.RateSchedule, &entry.WeekEntry))
	}
	totals, count := payroll.AggregateWeekTotals(breakdowns)

	report := &domain.WeeklyReportResponse{
		WeekID:        weekID,
		Totals:        totals,
		EmployeeCount: count,
	}
	if err := s.totals.Set(ctx, report); err != nil {
		s.logger.Warn("failed to cache weekly totals", zap.String("week_id", weekID.String()), zap.Error(err))
	}
	return report, nil
}

// ExportWeek renders the week as CSV records, header first, and suggests a file name
func (s *ReportService) ExportWeek(ctx context.Context, weekID uuid.UUID) (string, [][]string, error) {
	week, entries, err := s.weekEntries(ctx, weekID)
	if err != nil {
		return "", nil, err
	}

	records := make([][]string, 0, len(entries)+1)
	records = append(records, exportHeader)
	for _, entry := range entries {
		b := s.calculator.Compute(entry.RateSchedule, &entry.WeekEntry)
		records = append(records, []string{
			entry.EmployeeCode,
			entry.EmployeeName,
			strconv.Itoa(entry.DaysPresent),
			b.OvertimeHours.String(),
			b.Base.String(),
			b.Overtime.String(),
			b.Transport.String(),
			b.Meal.String(),
			b.Bonus.String(),
			b.Additions.String(),
			b.GrossEarnings.String(),
			b.LoanDeduction.String(),
			b.NetPay.String(),
		})
	}

	filename := "payroll-" + week.WeekStart.Format(domain.DateLayout) + ".csv"
	return filename, records, nil
}

// ListAudit returns the latest audit records
func (s *ReportService) ListAudit(ctx context.Context) ([]*domain.AuditLog, error) {
	entries, err := s.AuditRepo.ListRecent(ctx, auditListLimit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return entries, nil
}

// ResetAll deletes every employee, week, entry, loan, payment and audit record
func (s *ReportService) ResetAll(ctx context.Context) error {
	if err := s.MaintenanceRepo.ResetAll(ctx); err != nil {
		return customError.WrapDatabaseError(err)
	}
	if err := s.totals.InvalidateAll(ctx); err != nil {
		s.logger.Warn("failed to invalidate weekly totals", zap.Error(err))
	}
	s.logger.Warn("all payroll data deleted")
	return nil
}
