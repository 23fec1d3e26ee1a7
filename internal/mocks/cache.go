package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockTotalsCache struct {
	mock.Mock
}

func (m *MockTotalsCache) Get(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, bool, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.WeeklyReportResponse), args.Bool(1), args.Error(2)
}

func (m *MockTotalsCache) Set(ctx context.Context, report *domain.WeeklyReportResponse) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockTotalsCache) Invalidate(ctx context.Context, weekID uuid.UUID) error {
	args := m.Called(ctx, weekID)
	return args.Error(0)
}

func (m *MockTotalsCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
