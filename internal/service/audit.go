package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/repository"
	customError "github.com/mhans98/payroll-app/pkg/errors"

	"go.uber.org/zap"
)

// auditor writes before/after snapshots. A failed write is logged and never
// fails the mutation being audited.
type auditor struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

func newAuditor(repo repository.AuditRepository, logger *zap.Logger) *auditor {
	return &auditor{repo: repo, logger: logger}
}

func (a *auditor) record(ctx context.Context, table string, recordID uuid.UUID, action string, oldValues, newValues interface{}) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		OldValues: a.snapshot(oldValues),
		NewValues: a.snapshot(newValues),
		ChangedAt: time.Now(),
	}

	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("failed to write audit record",
			zap.String("table", table),
			zap.String("record_id", recordID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (a *auditor) snapshot(v interface{}) *json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Warn("failed to encode audit snapshot", zap.Error(err))
		return nil
	}
	raw := json.RawMessage(data)
	return &raw
}

// lookupError turns a repository read error into a business error
func lookupError(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return customError.WrapDatabaseError(err)
}
