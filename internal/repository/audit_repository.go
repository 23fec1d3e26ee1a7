package repository

import (
	"context"
	"encoding/json"

	"github.com/mhans98/payroll-app/internal/domain"

	"github.com/jmoiron/sqlx"
)

type auditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_log (id, table_name, record_id, action, old_values, new_values, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		entry.ID,
		entry.TableName,
		entry.RecordID,
		entry.Action,
		rawJSON(entry.OldValues),
		rawJSON(entry.NewValues),
		entry.ChangedAt,
	)

	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, table_name, record_id, action, old_values, new_values, changed_at
		FROM audit_log
		ORDER BY changed_at DESC
		LIMIT $1
	`

	entries := []*domain.AuditLog{}
	if err := conn(ctx, r.db).SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, err
	}

	return entries, nil
}

// rawJSON converts an optional JSON document into a driver value, NULL when absent
func rawJSON(m *json.RawMessage) interface{} {
	if m == nil || len(*m) == 0 {
		return nil
	}
	return []byte(*m)
}
