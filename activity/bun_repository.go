package activity

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-activitylog/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// RepositoryConfig wires the Bun-backed activity repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
}

// RepositoryOption configures optional repository behavior.
type RepositoryOption func(*RepositoryOptions)

// RepositoryOptions captures optional behavior for activity reads.
type RepositoryOptions struct {
	CacheEnabled bool
	CacheConfig  *cache.Config
}

// WithCache toggles the cache decorator used for detail lookups.
func WithCache(enabled bool) RepositoryOption {
	return func(opts *RepositoryOptions) {
		if opts != nil {
			opts.CacheEnabled = enabled
		}
	}
}

// WithCacheConfig supplies the cache configuration used when caching is enabled.
func WithCacheConfig(cfg cache.Config) RepositoryOption {
	return func(opts *RepositoryOptions) {
		if opts != nil {
			opts.CacheConfig = &cfg
		}
	}
}

// Repository lists and fetches activity entries.
type Repository struct {
	store  repository.Repository[*LogEntry]
	lookup repository.Repository[*LogEntry]
}

var _ types.ActivityRepository = (*Repository)(nil)

// NewRepository constructs the read-side repository. Entries are immutable
// once written, so detail lookups can be served from the cache decorator.
func NewRepository(cfg RepositoryConfig, opts ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("activity: db or repository required")
	}
	store := cfg.Repository
	if store == nil {
		store = NewLogEntryRepository(cfg.DB)
	}

	var options RepositoryOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	lookup, err := wrapCache(store, options)
	if err != nil {
		return nil, err
	}
	return &Repository{store: store, lookup: lookup}, nil
}

// NewLogEntryRepository builds the go-repository-bun store for activity_log.
func NewLogEntryRepository(db *bun.DB) repository.Repository[*LogEntry] {
	return repository.NewRepository(db, repository.ModelHandlers[*LogEntry]{
		NewRecord: func() *LogEntry { return &LogEntry{} },
		GetID: func(entry *LogEntry) uuid.UUID {
			if entry == nil {
				return uuid.Nil
			}
			return entry.ID
		},
		SetID: func(entry *LogEntry, id uuid.UUID) {
			if entry != nil {
				entry.ID = id
			}
		},
	})
}

func wrapCache(base repository.Repository[*LogEntry], opts RepositoryOptions) (repository.Repository[*LogEntry], error) {
	if !opts.CacheEnabled {
		return base, nil
	}
	if _, ok := base.(*repositorycache.CachedRepository[*LogEntry]); ok {
		return base, nil
	}
	cfg := cache.DefaultConfig()
	if opts.CacheConfig != nil {
		cfg = *opts.CacheConfig
	}
	service, err := cache.NewCacheService(cfg)
	if err != nil {
		return nil, err
	}
	return repositorycache.New(base, service, cache.NewDefaultKeySerializer()), nil
}

// ListActivity returns a page of entries matching filter, newest first unless
// another sort is requested.
func (r *Repository) ListActivity(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	pagination := normalizePagination(filter.Pagination, DefaultPageSize, MaxPageSize)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = applySort(q, filter.Sort).
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			return applyActivityFilter(q, filter)
		},
	}

	rows, total, err := r.store.List(ctx, criteria...)
	if err != nil {
		return types.ActivityPage{}, err
	}
	entries := make([]types.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ToActivityEntry(row))
	}
	return types.ActivityPage{
		Entries:    entries,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

// GetActivity fetches one entry. Entries outside the tenant scope are
// reported as not found.
func (r *Repository) GetActivity(ctx context.Context, id uuid.UUID, scope types.ScopeFilter) (*types.ActivityEntry, error) {
	if id == uuid.Nil {
		return nil, types.ErrActivityIDRequired
	}
	row, err := r.lookup.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrActivityNotFound
		}
		return nil, err
	}
	if row == nil {
		return nil, types.ErrActivityNotFound
	}
	if scope.TenantID != uuid.Nil && row.TenantID != scope.TenantID {
		return nil, types.ErrActivityNotFound
	}
	entry := ToActivityEntry(row)
	return &entry, nil
}

// applySort only ever orders by whitelisted columns; unknown fields fall
// back to created_at.
func applySort(q *bun.SelectQuery, sort types.Sort) *bun.SelectQuery {
	field := types.ParseSortField(string(sort.Field))
	direction := "DESC"
	if sort.Asc {
		direction = "ASC"
	}
	q = q.OrderExpr(string(field) + " " + direction)
	if field != types.SortByCreatedAt {
		q = q.OrderExpr("created_at DESC")
	}
	return q.OrderExpr("id " + direction)
}

func applyActivityFilter(q *bun.SelectQuery, filter types.ActivityFilter) *bun.SelectQuery {
	if filter.Scope.TenantID != uuid.Nil {
		q = q.Where("tenant_id = ?", filter.Scope.TenantID)
	}
	if filter.LogName != "" {
		q = q.Where("log_name = ?", filter.LogName)
	}
	if filter.SubjectType != "" {
		q = q.Where("subject_type = ?", filter.SubjectType)
	}
	if filter.SubjectID != "" {
		q = q.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.CauserID != "" {
		q = q.Where("causer_id = ?", filter.CauserID)
	}
	if value := strings.TrimSpace(filter.OldContains); value != "" {
		q = applyPropertyContains(q, types.PropertyOld, value)
	}
	if value := strings.TrimSpace(filter.NewContains); value != "" {
		q = applyPropertyContains(q, types.PropertyAttributes, value)
	}
	if filter.LoggedOn != nil && !filter.LoggedOn.IsZero() {
		start, end := dayWindow(*filter.LoggedOn)
		q = q.Where("created_at >= ?", start).Where("created_at < ?", end)
	}
	return q
}

// applyPropertyContains matches value against the serialized text of a nested
// properties key.
func applyPropertyContains(q *bun.SelectQuery, key, value string) *bun.SelectQuery {
	pattern := "%" + escapeLike(value) + "%"
	switch q.Dialect().Name() {
	case dialect.PG:
		return q.Where("CAST(properties -> ? AS TEXT) ILIKE ? ESCAPE '!'", key, pattern)
	default:
		return q.Where("json_extract(properties, ?) LIKE ? ESCAPE '!'", "$."+key, pattern)
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
