package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/mocks"
	"github.com/mhans98/payroll-app/internal/payroll"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	service     *ReportService
	weeks       *mocks.MockWeekRepository
	entries     *mocks.MockEntryRepository
	audit       *mocks.MockAuditRepository
	maintenance *mocks.MockMaintenanceRepository
	totals      *mocks.MockTotalsCache
	metrics     *metrics.Metrics
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		weeks:       new(mocks.MockWeekRepository),
		entries:     new(mocks.MockEntryRepository),
		audit:       new(mocks.MockAuditRepository),
		maintenance: new(mocks.MockMaintenanceRepository),
		totals:      new(mocks.MockTotalsCache),
		metrics:     metrics.New(prometheus.NewRegistry()),
	}
	f.service = NewReportService(f.weeks, f.entries, f.audit, f.maintenance, f.totals, payroll.Calculator{}, f.metrics, zap.NewNop())
	return f
}

func reportRows(weekID uuid.UUID) []*domain.EntryWithEmployee {
	rates := domain.RateSchedule{
		DailyWage:      decimal.NewFromInt(70000),
		HourlyOvertime: decimal.NewFromInt(15000),
		DailyTransport: decimal.NewFromInt(15000),
		DailyMeal:      decimal.NewFromInt(20000),
	}
	return []*domain.EntryWithEmployee{
		{
			WeekEntry: domain.WeekEntry{
				WeekID:      weekID,
				DaysPresent: 6,
				OvertimeHours: domain.OvertimeHours{
					decimal.Zero, decimal.NewFromInt(2), decimal.Zero, decimal.NewFromInt(3),
				}.Normalize(),
				Bonus:              decimal.NewFromInt(10000),
				Additions:          domain.Additions{{Label: "fuel", Amount: decimal.NewFromInt(5500)}},
				RequestedDeduction: decimal.NewFromInt(20000),
			},
			EmployeeCode: "EMP001",
			EmployeeName: "Budi",
			RateSchedule: rates,
		},
		{
			WeekEntry: domain.WeekEntry{
				WeekID:             weekID,
				DaysPresent:        1,
				OvertimeHours:      domain.OvertimeHours{}.Normalize(),
				Bonus:              decimal.Zero,
				RequestedDeduction: decimal.NewFromInt(500),
			},
			EmployeeCode: "EMP002",
			EmployeeName: "Sari, Dewi",
			RateSchedule: rates,
		},
	}
}

func TestWeeklyReport_ComputesAndCaches(t *testing.T) {
	f := newReportFixture()
	weekID := uuid.New()

	f.totals.On("Get", mock.Anything, weekID).Return(nil, false, nil)
	f.weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID}, nil)
	f.entries.On("ListByWeek", mock.Anything, weekID).Return(reportRows(weekID), nil)
	f.totals.On("Set", mock.Anything, mock.AnythingOfType("*domain.WeeklyReportResponse")).Return(nil)

	report, err := f.service.WeeklyReport(context.Background(), weekID)

	require.NoError(t, err)
	assert.Equal(t, 2, report.EmployeeCount)
	// 721000 + (70000 + 15000 + 20000)
	assert.True(t, report.Totals.GrossEarnings.Equal(decimal.NewFromInt(826000)), "gross %s", report.Totals.GrossEarnings)
	// deductions 20000 + RoundUp(500)
	assert.True(t, report.Totals.LoanDeduction.Equal(decimal.NewFromInt(21000)))
	assert.True(t, report.Totals.NetPay.Equal(decimal.NewFromInt(805000)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("miss")))
	f.totals.AssertExpectations(t)
}

func TestWeeklyReport_CacheHit(t *testing.T) {
	f := newReportFixture()
	weekID := uuid.New()
	cached := &domain.WeeklyReportResponse{WeekID: weekID, EmployeeCount: 3}

	f.totals.On("Get", mock.Anything, weekID).Return(cached, true, nil)

	report, err := f.service.WeeklyReport(context.Background(), weekID)

	require.NoError(t, err)
	assert.Equal(t, cached, report)
	f.entries.AssertNotCalled(t, "ListByWeek", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("hit")))
}

func TestWeeklyReport_CacheErrorFallsBackToDatabase(t *testing.T) {
	f := newReportFixture()
	weekID := uuid.New()

	f.totals.On("Get", mock.Anything, weekID).Return(nil, false, errors.New("redis down"))
	f.weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID}, nil)
	f.entries.On("ListByWeek", mock.Anything, weekID).Return([]*domain.EntryWithEmployee{}, nil)
	f.totals.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	report, err := f.service.WeeklyReport(context.Background(), weekID)

	require.NoError(t, err)
	assert.Equal(t, 0, report.EmployeeCount)
	assert.True(t, report.Totals.NetPay.IsZero())
}

func TestWeeklyReport_UnknownWeek(t *testing.T) {
	f := newReportFixture()
	weekID := uuid.New()

	f.totals.On("Get", mock.Anything, weekID).Return(nil, false, nil)
	f.weeks.On("GetByID", mock.Anything, weekID).Return(nil, sql.ErrNoRows)

	_, err := f.service.WeeklyReport(context.Background(), weekID)

	assert.ErrorIs(t, err, customError.ErrWeekNotFound)
}

func TestExportWeek(t *testing.T) {
	f := newReportFixture()
	weekID := uuid.New()

	f.weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID, WeekStart: date("2024-01-07")}, nil)
	f.entries.On("ListByWeek", mock.Anything, weekID).Return(reportRows(weekID), nil)

	filename, records, err := f.service.ExportWeek(context.Background(), weekID)

	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-01-07.csv", filename)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{
		"EMP001", "Budi", "6", "5", "420000", "75000", "90000", "120000", "10000", "6000", "721000", "20000", "701000",
	}, records[1])
	assert.Equal(t, "Sari, Dewi", records[2][1])
}

func TestListAudit(t *testing.T) {
	f := newReportFixture()
	f.audit.On("ListRecent", mock.Anything, 100).Return([]*domain.AuditLog{{TableName: "loans"}}, nil)

	entries, err := f.service.ListAudit(context.Background())

	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResetAll(t *testing.T) {
	f := newReportFixture()
	f.maintenance.On("ResetAll", mock.Anything).Return(errors.New("locked"))

	err := f.service.ResetAll(context.Background())

	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
	f.totals.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestResetAll_DropsCachedTotals(t *testing.T) {
	f := newReportFixture()
	f.maintenance.On("ResetAll", mock.Anything).Return(nil)
	f.totals.On("InvalidateAll", mock.Anything).Return(nil)

	require.NoError(t, f.service.ResetAll(context.Background()))
	f.totals.AssertExpectations(t)
}

func TestResetAll_CacheErrorIsNotFatal(t *testing.T) {
	f := newReportFixture()
	f.maintenance.On("ResetAll", mock.Anything).Return(nil)
	f.totals.On("InvalidateAll", mock.Anything).Return(errors.New("redis down"))

	assert.NoError(t, f.service.ResetAll(context.Background()))
}

// memoryTotals is a map backed TotalsCache
type memoryTotals struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*domain.WeeklyReportResponse
}

func newMemoryTotals() *memoryTotals {
	return &memoryTotals{reports: map[uuid.UUID]*domain.WeeklyReportResponse{}}
}

func (m *memoryTotals) Get(_ context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[weekID]
	return report, ok, nil
}

func (m *memoryTotals) Set(_ context.Context, report *domain.WeeklyReportResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.WeekID] = report
	return nil
}

func (m *memoryTotals) Invalidate(_ context.Context, weekID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reports, weekID)
	return nil
}

func (m *memoryTotals) InvalidateAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = map[uuid.UUID]*domain.WeeklyReportResponse{}
	return nil
}

func sixDayRow(weekID uuid.UUID, dailyWage int64) []*domain.EntryWithEmployee {
	return []*domain.EntryWithEmployee{{
		WeekEntry: domain.WeekEntry{
			WeekID:        weekID,
			DaysPresent:   6,
			OvertimeHours: domain.OvertimeHours{}.Normalize(),
		},
		EmployeeCode: "EMP001",
		EmployeeName: "Budi",
		RateSchedule: domain.RateSchedule{DailyWage: decimal.NewFromInt(dailyWage)},
	}}
}

func TestWeeklyReport_ReflectsRateChange(t *testing.T) {
	weeks := new(mocks.MockWeekRepository)
	entries := new(mocks.MockEntryRepository)
	employees := new(mocks.MockEmployeeRepository)
	audit := new(mocks.MockAuditRepository)
	totals := newMemoryTotals()
	m := metrics.New(prometheus.NewRegistry())

	reports := NewReportService(weeks, entries, audit, new(mocks.MockMaintenanceRepository), totals, payroll.Calculator{}, m, zap.NewNop())
	employeeService := NewEmployeeService(employees, audit, totals, zap.NewNop())

	weekID := uuid.New()
	employee := &domain.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		Name:         "Budi",
		RateSchedule: domain.RateSchedule{DailyWage: decimal.NewFromInt(70000)},
		IsActive:     true,
	}
	weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID}, nil)
	entries.On("ListByWeek", mock.Anything, weekID).Return(sixDayRow(weekID, 70000), nil).Once()
	entries.On("ListByWeek", mock.Anything, weekID).Return(sixDayRow(weekID, 100000), nil).Once()
	employees.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	employees.On("Update", mock.Anything, employee).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	before, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)
	assert.True(t, before.Totals.Base.Equal(decimal.NewFromInt(420000)), "base %s", before.Totals.Base)

	cached, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)
	assert.Same(t, before, cached)

	wage := decimal.NewFromInt(100000)
	_, err = employeeService.Update(context.Background(), employee.ID, &domain.UpdateEmployeeRequest{DailyWage: &wage})
	require.NoError(t, err)

	after, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)
	assert.True(t, after.Totals.Base.Equal(decimal.NewFromInt(600000)), "base %s", after.Totals.Base)
	entries.AssertExpectations(t)
}

func TestWeeklyReport_DropsDeactivatedEmployee(t *testing.T) {
	weeks := new(mocks.MockWeekRepository)
	entries := new(mocks.MockEntryRepository)
	employees := new(mocks.MockEmployeeRepository)
	audit := new(mocks.MockAuditRepository)
	totals := newMemoryTotals()
	m := metrics.New(prometheus.NewRegistry())

	reports := NewReportService(weeks, entries, audit, new(mocks.MockMaintenanceRepository), totals, payroll.Calculator{}, m, zap.NewNop())
	employeeService := NewEmployeeService(employees, audit, totals, zap.NewNop())

	weekID, employeeID := uuid.New(), uuid.New()
	weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID}, nil)
	entries.On("ListByWeek", mock.Anything, weekID).Return(sixDayRow(weekID, 70000), nil).Once()
	entries.On("ListByWeek", mock.Anything, weekID).Return([]*domain.EntryWithEmployee{}, nil).Once()
	employees.On("GetByID", mock.Anything, employeeID).Return(&domain.Employee{ID: employeeID, IsActive: true}, nil)
	employees.On("Deactivate", mock.Anything, employeeID).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	before, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)
	assert.Equal(t, 1, before.EmployeeCount)

	require.NoError(t, employeeService.Deactivate(context.Background(), employeeID))

	after, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.EmployeeCount)
	assert.True(t, after.Totals.Base.IsZero())
}

func TestWeeklyReport_EmptyAfterReset(t *testing.T) {
	weeks := new(mocks.MockWeekRepository)
	entries := new(mocks.MockEntryRepository)
	maintenance := new(mocks.MockMaintenanceRepository)
	totals := newMemoryTotals()
	m := metrics.New(prometheus.NewRegistry())

	reports := NewReportService(weeks, entries, new(mocks.MockAuditRepository), maintenance, totals, payroll.Calculator{}, m, zap.NewNop())

	weekID := uuid.New()
	weeks.On("GetByID", mock.Anything, weekID).Return(&domain.PayrollWeek{ID: weekID}, nil).Once()
	weeks.On("GetByID", mock.Anything, weekID).Return(nil, sql.ErrNoRows).Once()
	entries.On("ListByWeek", mock.Anything, weekID).Return(sixDayRow(weekID, 70000), nil).Once()
	maintenance.On("ResetAll", mock.Anything).Return(nil)

	_, err := reports.WeeklyReport(context.Background(), weekID)
	require.NoError(t, err)

	require.NoError(t, reports.ResetAll(context.Background()))

	_, err = reports.WeeklyReport(context.Background(), weekID)
	assert.ErrorIs(t, err, customError.ErrWeekNotFound)
}
