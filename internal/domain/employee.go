package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateSchedule holds an employee's standing pay rates
type RateSchedule struct {
	DailyWage      decimal.Decimal `json:"daily_wage" db:"daily_wage"`
	HourlyOvertime decimal.Decimal `json:"hourly_overtime" db:"hourly_overtime"`
	DailyTransport decimal.Decimal `json:"daily_transport" db:"daily_transport"`
	DailyMeal      decimal.Decimal `json:"daily_meal" db:"daily_meal"`
	DefaultBonus   decimal.Decimal `json:"default_bonus" db:"default_bonus"`
}

// Employee represents an employee entity
type Employee struct {
	ID           uuid.UUID `json:"id" db:"id"`
	EmployeeCode string    `json:"employee_code" db:"employee_code"`
	Name         string    `json:"name" db:"name"`
	RateSchedule
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateEmployeeRequest struct {
	EmployeeCode   string          `json:"employee_code" validate:"required,max=50"`
	Name           string          `json:"name" validate:"required,max=200"`
	DailyWage      decimal.Decimal `json:"daily_wage" validate:"decimal_gte=0"`
	HourlyOvertime decimal.Decimal `json:"hourly_overtime" validate:"decimal_gte=0"`
	DailyTransport decimal.Decimal `json:"daily_transport" validate:"decimal_gte=0"`
	DailyMeal      decimal.Decimal `json:"daily_meal" validate:"decimal_gte=0"`
	DefaultBonus   decimal.Decimal `json:"default_bonus" validate:"decimal_gte=0"`
}

// UpdateEmployeeRequest is a partial update; nil fields keep their stored value
type UpdateEmployeeRequest struct {
	EmployeeCode   *string          `json:"employee_code,omitempty" validate:"omitempty,max=50"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	DailyWage      *decimal.Decimal `json:"daily_wage,omitempty" validate:"omitempty,decimal_gte=0"`
	HourlyOvertime *decimal.Decimal `json:"hourly_overtime,omitempty" validate:"omitempty,decimal_gte=0"`
	DailyTransport *decimal.Decimal `json:"daily_transport,omitempty" validate:"omitempty,decimal_gte=0"`
	DailyMeal      *decimal.Decimal `json:"daily_meal,omitempty" validate:"omitempty,decimal_gte=0"`
	DefaultBonus   *decimal.Decimal `json:"default_bonus,omitempty" validate:"omitempty,decimal_gte=0"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

// Apply copies the set fields of the request onto e
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.EmployeeCode != nil && *r.EmployeeCode != "" {
		e.EmployeeCode = *r.EmployeeCode
	}
	if r.Name != nil && *r.Name != "" {
		e.Name = *r.Name
	}
	if r.DailyWage != nil {
		e.DailyWage = *r.DailyWage
	}
	if r.HourlyOvertime != nil {
		e.HourlyOvertime = *r.HourlyOvertime
	}
	if r.DailyTransport != nil {
		e.DailyTransport = *r.DailyTransport
	}
	if r.DailyMeal != nil {
		e.DailyMeal = *r.DailyMeal
	}
	if r.DefaultBonus != nil {
		e.DefaultBonus = *r.DefaultBonus
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
}
