package activity

import (
	"time"

	"github.com/goliatone/go-activitylog/pkg/types"
)

const (
	// DefaultPageSize is used when a filter omits the limit.
	DefaultPageSize = 25
	// MaxPageSize caps the limit accepted from callers.
	MaxPageSize = 200
)

// ToActivityEntry converts the Bun model into the domain entry.
func ToActivityEntry(entry *LogEntry) types.ActivityEntry {
	if entry == nil {
		return types.ActivityEntry{}
	}
	return types.ActivityEntry{
		ID:          entry.ID,
		LogName:     entry.LogName,
		Event:       entry.Event,
		Description: entry.Description,
		SubjectType: entry.SubjectType,
		SubjectID:   entry.SubjectID,
		CauserType:  entry.CauserType,
		CauserID:    entry.CauserID,
		Properties:  types.Properties(cloneMap(entry.Properties)),
		BatchID:     entry.BatchUUID,
		TenantID:    entry.TenantID,
		CreatedAt:   entry.CreatedAt,
	}
}

// FromActivityEntry converts a domain entry into the Bun model. Hosts use it
// to seed fixtures or import entries with the same column mapping.
func FromActivityEntry(entry types.ActivityEntry) *LogEntry {
	record := &LogEntry{
		ID:          entry.ID,
		LogName:     entry.LogName,
		Description: entry.Description,
		SubjectType: entry.SubjectType,
		SubjectID:   entry.SubjectID,
		CauserType:  entry.CauserType,
		CauserID:    entry.CauserID,
		Event:       entry.Event,
		Properties:  cloneMap(entry.Properties),
		BatchUUID:   entry.BatchID,
		TenantID:    entry.TenantID,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.CreatedAt,
	}
	if entry.Causer != nil {
		record.CauserName = entry.Causer.Name
	}
	return record
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// dayWindow returns the UTC bounds of the calendar day containing day, in
// day's own location.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
