package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in activity_log.
type LogEntry struct {
	bun.BaseModel `bun:"table:activity_log"`

	ID          uuid.UUID      `bun:",pk,type:uuid"`
	LogName     string         `bun:"log_name,nullzero"`
	Description string         `bun:"description"`
	SubjectType string         `bun:"subject_type,nullzero"`
	SubjectID   string         `bun:"subject_id,nullzero"`
	CauserType  string         `bun:"causer_type,nullzero"`
	CauserID    string         `bun:"causer_id,nullzero"`
	Event       string         `bun:"event,nullzero"`
	Properties  map[string]any `bun:"properties,type:jsonb"`
	BatchUUID   uuid.UUID      `bun:"batch_uuid,type:uuid,nullzero"`
	TenantID    uuid.UUID      `bun:"tenant_id,type:uuid,nullzero"`
	CreatedAt   time.Time      `bun:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero"`

	// CauserName is filled from the causer directory, never persisted.
	CauserName string `bun:"-" json:"causer_name,omitempty"`
}
