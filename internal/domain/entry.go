package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OvertimeHours holds the per-day overtime hours of one week, Sunday first.
// Stored as a JSONB array.
type OvertimeHours []decimal.Decimal

// Normalize returns exactly DaysPerWeek values: missing days become zero and
// values past the seventh are dropped.
func (o OvertimeHours) Normalize() OvertimeHours {
	out := make(OvertimeHours, DaysPerWeek)
	for i := range out {
		if i < len(o) {
			out[i] = o[i]
		} else {
			out[i] = decimal.Zero
		}
	}
	return out
}

// Total sums the normalized hours
func (o OvertimeHours) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range o.Normalize() {
		total = total.Add(h)
	}
	return total
}

func (o OvertimeHours) Value() (driver.Value, error) {
	b, err := json.Marshal(o.Normalize())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *OvertimeHours) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	var hours OvertimeHours
	if len(data) > 0 {
		if err := json.Unmarshal(data, &hours); err != nil {
			return err
		}
	}
	*o = hours.Normalize()
	return nil
}

// Addition is one ad-hoc pay item added to a week entry
type Addition struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Additions is stored as a JSONB array
type Additions []Addition

func (a Additions) Value() (driver.Value, error) {
	if a == nil {
		a = Additions{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Additions) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	items := Additions{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
	}
	*a = items
	return nil
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported JSON column type")
	}
}

// RateOverrides replaces parts of the employee's rate schedule for one week.
// A nil field means no override.
type RateOverrides struct {
	DailyWage      *decimal.Decimal `json:"override_daily_wage" db:"override_daily_wage"`
	HourlyOvertime *decimal.Decimal `json:"override_hourly_overtime" db:"override_hourly_overtime"`
	DailyTransport *decimal.Decimal `json:"override_daily_transport" db:"override_daily_transport"`
	DailyMeal      *decimal.Decimal `json:"override_daily_meal" db:"override_daily_meal"`
}

// WeekEntry is one employee's raw payroll input for one week
type WeekEntry struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	EmployeeID         uuid.UUID       `json:"employee_id" db:"employee_id"`
	WeekID             uuid.UUID       `json:"week_id" db:"week_id"`
	DaysPresent        int             `json:"days_present" db:"days_present"`
	OvertimeHours      OvertimeHours   `json:"overtime_hours" db:"overtime_hours"`
	Bonus              decimal.Decimal `json:"bonus" db:"bonus"`
	Additions          Additions       `json:"additions" db:"additions"`
	RequestedDeduction decimal.Decimal `json:"requested_deduction" db:"requested_deduction"`
	RateOverrides
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EntryWithEmployee is a week entry joined with the owning employee's code,
// name and current rate schedule
type EntryWithEmployee struct {
	WeekEntry
	EmployeeCode string `json:"employee_code" db:"employee_code"`
	EmployeeName string `json:"employee_name" db:"employee_name"`
	RateSchedule
}

// EntryWithBreakdown is what week listings return
type EntryWithBreakdown struct {
	EntryWithEmployee
	Calculated PayBreakdown `json:"calculated"`
}

// DTOs for requests and responses

type CreateEntryRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	WeekID     uuid.UUID `json:"week_id" validate:"required"`
}

// UpdateEntryRequest is a partial update of a week entry. Inputs left nil keep
// their stored value; overrides are always replaced so that sending null
// clears them.
type UpdateEntryRequest struct {
	DaysPresent        *int             `json:"days_present,omitempty" validate:"omitempty,gte=0,lte=7"`
	OvertimeHours      OvertimeHours    `json:"overtime_hours,omitempty"`
	Bonus              *decimal.Decimal `json:"bonus,omitempty" validate:"omitempty,decimal_gte=0"`
	Additions          Additions        `json:"additions,omitempty"`
	RequestedDeduction *decimal.Decimal `json:"requested_deduction,omitempty" validate:"omitempty,decimal_gte=0"`
	RateOverrides
}

// Apply copies the request onto e
func (r *UpdateEntryRequest) Apply(e *WeekEntry) {
	if r.DaysPresent != nil {
		e.DaysPresent = *r.DaysPresent
	}
	if r.OvertimeHours != nil {
		e.OvertimeHours = r.OvertimeHours.Normalize()
	}
	if r.Bonus != nil {
		e.Bonus = *r.Bonus
	}
	if r.Additions != nil {
		e.Additions = r.Additions
	}
	if r.RequestedDeduction != nil {
		e.RequestedDeduction = *r.RequestedDeduction
	}
	e.RateOverrides = r.RateOverrides
}

type InitializeWeekResponse struct {
	WeekID        uuid.UUID `json:"week_id"`
	EmployeeCount int       `json:"employee_count"`
	Created       int       `json:"created"`
}
