package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// resetOrder lists tables children first so foreign keys never block a delete
var resetOrder = []string{
	"loan_payments",
	"loans",
	"payroll_entries",
	"payroll_weeks",
	"employees",
	"audit_log",
}

type maintenanceRepository struct {
	db *sqlx.DB
	tx Transactor
}

func NewMaintenanceRepository(db *sqlx.DB, tx Transactor) MaintenanceRepository {
	return &maintenanceRepository{db: db, tx: tx}
}

func (r *maintenanceRepository) ResetAll(ctx context.Context) error {
	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)
		for _, table := range resetOrder {
			if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}
