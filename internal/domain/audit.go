package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog records a before/after snapshot of one mutation
type AuditLog struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	TableName string           `json:"table_name" db:"table_name"`
	RecordID  uuid.UUID        `json:"record_id" db:"record_id"`
	Action    string           `json:"action" db:"action"`
	OldValues *json.RawMessage `json:"old_values,omitempty" db:"old_values"`
	NewValues *json.RawMessage `json:"new_values,omitempty" db:"new_values"`
	ChangedAt time.Time        `json:"changed_at" db:"changed_at"`
}
