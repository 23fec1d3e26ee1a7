package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/mocks"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateEmployee(t *testing.T) {
	tests := []struct {
		name       string
		request    *domain.CreateEmployeeRequest
		setupMocks func(*mocks.MockEmployeeRepository, *mocks.MockAuditRepository)
		wantCode   string
	}{
		{
			name: "Success - create new employee",
			request: &domain.CreateEmployeeRequest{
				EmployeeCode: "EMP001",
				Name:         "Budi",
				DailyWage:    decimal.NewFromInt(70000),
				DefaultBonus: decimal.NewFromInt(10000),
			},
			setupMocks: func(repo *mocks.MockEmployeeRepository, audit *mocks.MockAuditRepository) {
				repo.On("GetByCode", mock.Anything, "EMP001").Return(nil, sql.ErrNoRows)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Employee) bool {
					return e.IsActive && e.DailyWage.Equal(decimal.NewFromInt(70000)) && e.HourlyOvertime.IsZero()
				})).Return(nil)
				audit.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:    "Failure - duplicate code",
			request: &domain.CreateEmployeeRequest{EmployeeCode: "EMP002", Name: "Sari"},
			setupMocks: func(repo *mocks.MockEmployeeRepository, audit *mocks.MockAuditRepository) {
				repo.On("GetByCode", mock.Anything, "EMP002").Return(&domain.Employee{EmployeeCode: "EMP002"}, nil)
			},
			wantCode: customError.ErrCodeEmployeeAlreadyExists,
		},
		{
			name:    "Failure - database error on lookup",
			request: &domain.CreateEmployeeRequest{EmployeeCode: "EMP003", Name: "Andi"},
			setupMocks: func(repo *mocks.MockEmployeeRepository, audit *mocks.MockAuditRepository) {
				repo.On("GetByCode", mock.Anything, "EMP003").Return(nil, errors.New("database connection error"))
			},
			wantCode: customError.ErrCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockEmployeeRepository)
			audit := new(mocks.MockAuditRepository)
			tt.setupMocks(repo, audit)
			svc := NewEmployeeService(repo, audit, new(mocks.MockTotalsCache), zap.NewNop())

			employee, err := svc.Create(context.Background(), tt.request)

			if tt.wantCode != "" {
				assert.Nil(t, employee)
				assert.Equal(t, tt.wantCode, customError.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.request.EmployeeCode, employee.EmployeeCode)
			}
			repo.AssertExpectations(t)
			audit.AssertExpectations(t)
		})
	}
}

func TestUpdateEmployee_KeepsAbsentFields(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	audit := new(mocks.MockAuditRepository)
	totals := new(mocks.MockTotalsCache)
	svc := NewEmployeeService(repo, audit, totals, zap.NewNop())

	stored := &domain.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		Name:         "Budi",
		RateSchedule: domain.RateSchedule{DailyWage: decimal.NewFromInt(70000), DailyMeal: decimal.NewFromInt(20000)},
		IsActive:     true,
	}
	repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)
	totals.On("InvalidateAll", mock.Anything).Return(nil)

	wage := decimal.NewFromInt(80000)
	updated, err := svc.Update(context.Background(), stored.ID, &domain.UpdateEmployeeRequest{DailyWage: &wage})

	require.NoError(t, err)
	assert.True(t, updated.DailyWage.Equal(wage))
	assert.True(t, updated.DailyMeal.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "Budi", updated.Name)
	repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	totals.AssertExpectations(t)
}

func TestUpdateEmployee_CacheErrorIsNotFatal(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	audit := new(mocks.MockAuditRepository)
	totals := new(mocks.MockTotalsCache)
	svc := NewEmployeeService(repo, audit, totals, zap.NewNop())

	stored := &domain.Employee{ID: uuid.New(), EmployeeCode: "EMP001", IsActive: true}
	repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)
	totals.On("InvalidateAll", mock.Anything).Return(errors.New("redis down"))

	wage := decimal.NewFromInt(100000)
	updated, err := svc.Update(context.Background(), stored.ID, &domain.UpdateEmployeeRequest{DailyWage: &wage})

	require.NoError(t, err)
	assert.True(t, updated.DailyWage.Equal(wage))
	totals.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestUpdateEmployee_FailedWriteKeepsCache(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	totals := new(mocks.MockTotalsCache)
	svc := NewEmployeeService(repo, new(mocks.MockAuditRepository), totals, zap.NewNop())

	stored := &domain.Employee{ID: uuid.New(), EmployeeCode: "EMP001"}
	repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(errors.New("database connection error"))

	wage := decimal.NewFromInt(100000)
	_, err := svc.Update(context.Background(), stored.ID, &domain.UpdateEmployeeRequest{DailyWage: &wage})

	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
	totals.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestUpdateEmployee_CodeTaken(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	totals := new(mocks.MockTotalsCache)
	svc := NewEmployeeService(repo, new(mocks.MockAuditRepository), totals, zap.NewNop())

	stored := &domain.Employee{ID: uuid.New(), EmployeeCode: "EMP001"}
	repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("GetByCode", mock.Anything, "EMP009").Return(&domain.Employee{ID: uuid.New(), EmployeeCode: "EMP009"}, nil)

	code := "EMP009"
	_, err := svc.Update(context.Background(), stored.ID, &domain.UpdateEmployeeRequest{EmployeeCode: &code})

	assert.ErrorIs(t, err, customError.ErrEmployeeAlreadyExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	totals.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestDeactivateEmployee(t *testing.T) {
	t.Run("soft deletes, audits and drops cached totals", func(t *testing.T) {
		repo := new(mocks.MockEmployeeRepository)
		audit := new(mocks.MockAuditRepository)
		totals := new(mocks.MockTotalsCache)
		svc := NewEmployeeService(repo, audit, totals, zap.NewNop())

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(&domain.Employee{ID: id, IsActive: true}, nil)
		repo.On("Deactivate", mock.Anything, id).Return(nil)
		totals.On("InvalidateAll", mock.Anything).Return(nil)
		audit.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.AuditLog) bool {
			return a.Action == domain.AuditActionDelete && a.RecordID == id
		})).Return(nil)

		require.NoError(t, svc.Deactivate(context.Background(), id))
		repo.AssertExpectations(t)
		audit.AssertExpectations(t)
		totals.AssertExpectations(t)
	})

	t.Run("unknown employee", func(t *testing.T) {
		repo := new(mocks.MockEmployeeRepository)
		totals := new(mocks.MockTotalsCache)
		svc := NewEmployeeService(repo, new(mocks.MockAuditRepository), totals, zap.NewNop())

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Deactivate(context.Background(), id), customError.ErrEmployeeNotFound)
		totals.AssertNotCalled(t, "InvalidateAll", mock.Anything)
	})
}
