package domain

import (
	"time"

	"github.com/google/uuid"
)

// DaysPerWeek is the fixed length of a payroll period
const DaysPerWeek = 7

// PayrollWeek is one Sunday-first calendar week of payroll
type PayrollWeek struct {
	ID        uuid.UUID `json:"id" db:"id"`
	WeekStart time.Time `json:"week_start" db:"week_start"`
	WeekEnd   time.Time `json:"week_end" db:"week_end"`
	WeekLabel string    `json:"week_label" db:"week_label"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateWeekRequest struct {
	WeekStart Date   `json:"week_start"`
	WeekEnd   Date   `json:"week_end"`
	WeekLabel string `json:"week_label" validate:"max=100"`
}
