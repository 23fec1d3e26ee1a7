package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

const weekColumns = `id, week_start, week_end, week_label, created_at`

type weekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) WeekRepository {
	return &weekRepository{db: db}
}

func (r *weekRepository) GetOrCreate(ctx context.Context, week *domain.PayrollWeek) (*domain.PayrollWeek, error) {
	insert := `
		INSERT INTO payroll_weeks (id, week_start, week_end, week_label, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (week_start, week_end) DO NOTHING
	`

	q := conn(ctx, r.db)
	if _, err := q.ExecContext(ctx, insert, week.ID, week.WeekStart, week.WeekEnd, week.WeekLabel, week.CreatedAt); err != nil {
		return nil, err
	}

	query := `SELECT ` + weekColumns + ` FROM payroll_weeks WHERE week_start = $1 AND week_end = $2`

	var stored domain.PayrollWeek
	if err := q.GetContext(ctx, &stored, query, week.WeekStart, week.WeekEnd); err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *weekRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayrollWeek, error) {
	query := `SELECT ` + weekColumns + ` FROM payroll_weeks WHERE id = $1`

	var week domain.PayrollWeek
	if err := conn(ctx, r.db).GetContext(ctx, &week, query, id); err != nil {
		return nil, err
	}

	return &week, nil
}

func (r *weekRepository) ListRecent(ctx context.Context, limit int) ([]*domain.PayrollWeek, error) {
	query := `SELECT ` + weekColumns + ` FROM payroll_weeks ORDER BY week_start DESC LIMIT $1`

	weeks := []*domain.PayrollWeek{}
	if err := conn(ctx, r.db).SelectContext(ctx, &weeks, query, limit); err != nil {
		return nil, err
	}

	return weeks, nil
}
