package types

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActorRef identifies who is reading the activity log.
type ActorRef struct {
	ID   uuid.UUID
	Type string
}

// ScopeFilter carries tenant/org scoping fields used by queries.
type ScopeFilter struct {
	TenantID uuid.UUID
	OrgID    uuid.UUID
	Labels   map[string]uuid.UUID
}

// Clone returns a copy of the scope filter with labels detached from the
// original map reference so callers can mutate safely.
func (s ScopeFilter) Clone() ScopeFilter {
	clone := ScopeFilter{
		TenantID: s.TenantID,
		OrgID:    s.OrgID,
	}
	if len(s.Labels) > 0 {
		clone.Labels = make(map[string]uuid.UUID, len(s.Labels))
		for k, v := range s.Labels {
			clone.Labels[k] = v
		}
	}
	return clone
}

// WithLabel returns a cloned scope filter with the provided label set. Keys are
// normalized to lower-case so lookups stay consistent across transports.
func (s ScopeFilter) WithLabel(key string, id uuid.UUID) ScopeFilter {
	if strings.TrimSpace(key) == "" || id == uuid.Nil {
		return s
	}
	clone := s.Clone()
	if clone.Labels == nil {
		clone.Labels = make(map[string]uuid.UUID)
	}
	clone.Labels[strings.ToLower(key)] = id
	return clone
}

// Label returns the identifier previously stored under the key (case
// insensitive). When the label has not been set, uuid.Nil is returned.
func (s ScopeFilter) Label(key string) uuid.UUID {
	if len(s.Labels) == 0 {
		return uuid.Nil
	}
	return s.Labels[strings.ToLower(strings.TrimSpace(key))]
}

// IsZero reports whether the scope carries no tenant or org constraint.
func (s ScopeFilter) IsZero() bool {
	return s.TenantID == uuid.Nil && s.OrgID == uuid.Nil
}

// Pagination supports query pagination across admin panels.
type Pagination struct {
	Limit  int
	Offset int
}

// CauserRef describes the actor that triggered an activity entry.
type CauserRef struct {
	Type string
	ID   string
	Name string
}

// ActivityEntry mirrors one row recorded by the audit-log writer. Entries are
// created outside this module and treated as read-only.
type ActivityEntry struct {
	ID          uuid.UUID
	LogName     string
	Event       string
	Description string
	SubjectType string
	SubjectID   string
	CauserType  string
	CauserID    string
	Causer      *CauserRef
	Properties  Properties
	BatchID     uuid.UUID
	TenantID    uuid.UUID
	CreatedAt   time.Time
}

// HasSubject reports whether the entry references a subject entity.
func (e ActivityEntry) HasSubject() bool {
	return strings.TrimSpace(e.SubjectType) != ""
}

// HasCauser reports whether the entry references a causer.
func (e ActivityEntry) HasCauser() bool {
	return strings.TrimSpace(e.CauserID) != ""
}

// SortField enumerates the sortable activity columns.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByLogName   SortField = "log_name"
	SortByEvent     SortField = "event"
)

// ParseSortField maps user supplied column names to a SortField. Unknown
// values fall back to created_at.
func ParseSortField(raw string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByLogName:
		return SortByLogName
	case SortByEvent:
		return SortByEvent
	default:
		return SortByCreatedAt
	}
}

// Sort describes the requested ordering. The zero value sorts by created_at
// descending.
type Sort struct {
	Field SortField
	Asc   bool
}

// ActivityFilter narrows activity list queries.
type ActivityFilter struct {
	Actor       ActorRef
	Scope       ScopeFilter
	LogName     string
	SubjectType string
	SubjectID   string
	CauserID    string
	OldContains string
	NewContains string
	// LoggedOn matches entries created on the same calendar day, using the
	// location attached to the time value.
	LoggedOn   *time.Time
	Sort       Sort
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.list"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// ActivityPage represents a paginated list response.
type ActivityPage struct {
	Entries    []ActivityEntry
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityDetailRequest fetches a single entry.
type ActivityDetailRequest struct {
	Actor ActorRef
	Scope ScopeFilter
	ID    uuid.UUID
}

// Type implements gocommand.Message for query inputs.
func (ActivityDetailRequest) Type() string {
	return "query.activity.detail"
}

// Validate implements gocommand.Message.
func (req ActivityDetailRequest) Validate() error {
	if req.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if req.ID == uuid.Nil {
		return ErrActivityIDRequired
	}
	return nil
}

// ActivityRepository exposes read-side access to activity entries.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
	GetActivity(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*ActivityEntry, error)
}

// CauserKey identifies a causer record in the host application.
type CauserKey struct {
	Type string
	ID   string
}

// CauserDirectory resolves causer display data owned by the host application.
type CauserDirectory interface {
	LookupCausers(ctx context.Context, keys []CauserKey) (map[CauserKey]CauserRef, error)
}

// RegisteredEntity describes an admin resource and the data type it manages.
type RegisteredEntity struct {
	Resource string
	Model    string
}

// EntityRegistry enumerates the entity types known to the admin system.
type EntityRegistry interface {
	Entities(ctx context.Context) ([]RegisteredEntity, error)
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("go-activitylog: actor reference required")
	// ErrActivityIDRequired indicates a detail lookup omitted the entry id.
	ErrActivityIDRequired = errors.New("go-activitylog: activity id required")
	// ErrActivityNotFound indicates the requested entry does not exist in scope.
	ErrActivityNotFound = errors.New("go-activitylog: activity entry not found")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-activitylog: service not ready")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("go-activitylog: missing activity repository")
)
