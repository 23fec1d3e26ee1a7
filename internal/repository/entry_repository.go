package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

const entryColumns = `pe.id, pe.employee_id, pe.week_id, pe.days_present, pe.overtime_hours, pe.bonus, pe.additions,
	pe.requested_deduction, pe.override_daily_wage, pe.override_hourly_overtime, pe.override_daily_transport,
	pe.override_daily_meal, pe.created_at, pe.updated_at`

type entryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) GetOrCreate(ctx context.Context, entry *domain.WeekEntry) (*domain.WeekEntry, bool, error) {
	insert := `
		INSERT INTO payroll_entries (id, employee_id, week_id, days_present, overtime_hours, bonus, additions,
			requested_deduction, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, week_id) DO NOTHING
	`

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, insert,
		entry.ID,
		entry.EmployeeID,
		entry.WeekID,
		entry.DaysPresent,
		entry.OvertimeHours,
		entry.Bonus,
		entry.Additions,
		entry.RequestedDeduction,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return nil, false, err
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	query := `SELECT ` + entryColumns + ` FROM payroll_entries pe WHERE pe.employee_id = $1 AND pe.week_id = $2`

	var stored domain.WeekEntry
	if err := q.GetContext(ctx, &stored, query, entry.EmployeeID, entry.WeekID); err != nil {
		return nil, false, err
	}

	return &stored, inserted > 0, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WeekEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM payroll_entries pe WHERE pe.id = $1`

	var entry domain.WeekEntry
	if err := conn(ctx, r.db).GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *entryRepository) Update(ctx context.Context, entry *domain.WeekEntry) error {
	query := `
		UPDATE payroll_entries
		SET days_present = $2, overtime_hours = $3, bonus = $4, additions = $5, requested_deduction = $6,
		    override_daily_wage = $7, override_hourly_overtime = $8, override_daily_transport = $9,
		    override_daily_meal = $10, updated_at = $11
		WHERE id = $1
	`

	entry.UpdatedAt = time.Now()
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		entry.ID,
		entry.DaysPresent,
		entry.OvertimeHours,
		entry.Bonus,
		entry.Additions,
		entry.RequestedDeduction,
		entry.RateOverrides.DailyWage,
		entry.RateOverrides.HourlyOvertime,
		entry.RateOverrides.DailyTransport,
		entry.RateOverrides.DailyMeal,
		entry.UpdatedAt,
	)

	return err
}

func (r *entryRepository) ListByWeek(ctx context.Context, weekID uuid.UUID) ([]*domain.EntryWithEmployee, error) {
	query := `
		SELECT ` + entryColumns + `,
			e.employee_code, e.name AS employee_name,
			e.daily_wage, e.hourly_overtime, e.daily_transport, e.daily_meal, e.default_bonus
		FROM payroll_entries pe
		JOIN employees e ON pe.employee_id = e.id
		WHERE pe.week_id = $1 AND e.is_active = TRUE
		ORDER BY e.name
	`

	entries := []*domain.EntryWithEmployee{}
	if err := conn(ctx, r.db).SelectContext(ctx, &entries, query, weekID); err != nil {
		return nil, err
	}

	return entries, nil
}
