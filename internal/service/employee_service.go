package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/repository"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"go.uber.org/zap"
)

const employeesTable = "employees"

type EmployeeService struct {
	EmployeeRepo repository.EmployeeRepository
	totals       cache.TotalsCache
	audit        *auditor
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	totals cache.TotalsCache,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		EmployeeRepo: employeeRepo,
		totals:       totals,
		audit:        newAuditor(auditRepo, logger),
		logger:       logger,
	}
}

// List returns active employees ordered by name
func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.EmployeeRepo.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.EmployeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapEmployeeNotFound(id.String()))
	}
	return employee, nil
}

func (s *EmployeeService) Create(ctx context.Context, request *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	existing, err := s.EmployeeRepo.GetByCode(ctx, request.EmployeeCode)
	if err == nil && existing != nil {
		return nil, customError.WrapEmployeeAlreadyExists(request.EmployeeCode)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	employee := &domain.Employee{
		ID:           uuid.New(),
		EmployeeCode: request.EmployeeCode,
		Name:         request.Name,
		RateSchedule: domain.RateSchedule{
			DailyWage:      request.DailyWage,
			HourlyOvertime: request.HourlyOvertime,
			DailyTransport: request.DailyTransport,
			DailyMeal:      request.DailyMeal,
			DefaultBonus:   request.DefaultBonus,
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.EmployeeRepo.Create(ctx, employee); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.record(ctx, employeesTable, employee.ID, domain.AuditActionInsert, nil, employee)
	s.logger.Info("employee created", zap.String("employee_id", employee.ID.String()), zap.String("code", employee.EmployeeCode))

	return employee, nil
}

// Update applies a partial update; fields missing from request keep their value
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateEmployeeRequest) (*domain.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *employee

	if request.EmployeeCode != nil && *request.EmployeeCode != "" && *request.EmployeeCode != employee.EmployeeCode {
		other, err := s.EmployeeRepo.GetByCode(ctx, *request.EmployeeCode)
		if err == nil && other != nil {
			return nil, customError.WrapEmployeeAlreadyExists(*request.EmployeeCode)
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	request.Apply(employee)
	if err := s.EmployeeRepo.Update(ctx, employee); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	s.invalidateTotals(ctx, id)

	s.audit.record(ctx, employeesTable, employee.ID, domain.AuditActionUpdate, &before, employee)
	return employee, nil
}

// Deactivate soft-deletes the employee; their history stays in place
func (s *EmployeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepo.Deactivate(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	s.invalidateTotals(ctx, id)

	s.audit.record(ctx, employeesTable, id, domain.AuditActionDelete, employee, nil)
	s.logger.Info("employee deactivated", zap.String("employee_id", id.String()))
	return nil
}

// invalidateTotals drops every cached week; reports price entries with current rates
func (s *EmployeeService) invalidateTotals(ctx context.Context, id uuid.UUID) {
	if err := s.totals.InvalidateAll(ctx); err != nil {
		s.logger.Warn("failed to invalidate weekly totals", zap.String("employee_id", id.String()), zap.Error(err))
	}
}
