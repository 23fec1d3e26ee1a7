package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

const employeeColumns = `id, employee_code, name, daily_wage, hourly_overtime, daily_transport, daily_meal, default_bonus, is_active, created_at, updated_at`

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, employee_code, name, daily_wage, hourly_overtime, daily_transport, daily_meal, default_bonus, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		employee.ID,
		employee.EmployeeCode,
		employee.Name,
		employee.DailyWage,
		employee.HourlyOvertime,
		employee.DailyTransport,
		employee.DailyMeal,
		employee.DefaultBonus,
		employee.IsActive,
		employee.CreatedAt,
		employee.UpdatedAt,
	)

	return err
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var employee domain.Employee
	if err := conn(ctx, r.db).GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}

	return &employee, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	var employee domain.Employee
	if err := conn(ctx, r.db).GetContext(ctx, &employee, query, code); err != nil {
		return nil, err
	}

	return &employee, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE ORDER BY name`

	employees := []*domain.Employee{}
	if err := conn(ctx, r.db).SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET employee_code = $2, name = $3, daily_wage = $4, hourly_overtime = $5, daily_transport = $6,
		    daily_meal = $7, default_bonus = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	employee.UpdatedAt = time.Now()
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		employee.ID,
		employee.EmployeeCode,
		employee.Name,
		employee.DailyWage,
		employee.HourlyOvertime,
		employee.DailyTransport,
		employee.DailyMeal,
		employee.DefaultBonus,
		employee.IsActive,
		employee.UpdatedAt,
	)

	return err
}

func (r *employeeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE employees SET is_active = FALSE, updated_at = $2 WHERE id = $1`

	_, err := conn(ctx, r.db).ExecContext(ctx, query, id, time.Now())
	return err
}
