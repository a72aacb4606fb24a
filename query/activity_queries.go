package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-activitylog/activity"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/scope"
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-masker"
	"github.com/google/uuid"
)

// ActivityQueryOption customizes the activity queries.
type ActivityQueryOption func(*activityQueryConfig)

type activityQueryConfig struct {
	causers  types.CauserDirectory
	logger   types.Logger
	masker   *masker.Masker
	sanitize bool
}

// WithCauserDirectory resolves causer names through the host directory.
func WithCauserDirectory(directory types.CauserDirectory) ActivityQueryOption {
	return func(cfg *activityQueryConfig) {
		cfg.causers = directory
	}
}

// WithLogger sets the logger used for non fatal lookup failures.
func WithLogger(logger types.Logger) ActivityQueryOption {
	return func(cfg *activityQueryConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSanitizer masks entry properties with mask before returning them. A nil
// mask uses the default activity masker.
func WithSanitizer(mask *masker.Masker) ActivityQueryOption {
	return func(cfg *activityQueryConfig) {
		cfg.sanitize = true
		cfg.masker = mask
	}
}

func newActivityQueryConfig(opts []ActivityQueryOption) activityQueryConfig {
	cfg := activityQueryConfig{logger: types.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ActivityListQuery returns scoped pages of activity entries.
type ActivityListQuery struct {
	repo  types.ActivityRepository
	guard scope.Guard
	cfg   activityQueryConfig
}

// NewActivityListQuery constructs the list query.
func NewActivityListQuery(repo types.ActivityRepository, guard scope.Guard, opts ...ActivityQueryOption) *ActivityListQuery {
	return &ActivityListQuery{
		repo:  repo,
		guard: scope.Ensure(guard),
		cfg:   newActivityQueryConfig(opts),
	}
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityListQuery)(nil)

// Query fetches a page of entries in the actor's resolved scope.
func (q *ActivityListQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityPage{}, err
	}
	resolved, err := q.guard.Enforce(ctx, filter.Actor, filter.Scope, types.PolicyActionActivityRead, uuid.Nil)
	if err != nil {
		return types.ActivityPage{}, err
	}
	filter.Scope = resolved

	page, err := q.repo.ListActivity(ctx, filter)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page.Entries = q.cfg.decorate(ctx, page.Entries)
	return page, nil
}

// ActivityDetailQuery fetches a single entry in the actor's resolved scope.
type ActivityDetailQuery struct {
	repo  types.ActivityRepository
	guard scope.Guard
	cfg   activityQueryConfig
}

// NewActivityDetailQuery constructs the detail query.
func NewActivityDetailQuery(repo types.ActivityRepository, guard scope.Guard, opts ...ActivityQueryOption) *ActivityDetailQuery {
	return &ActivityDetailQuery{
		repo:  repo,
		guard: scope.Ensure(guard),
		cfg:   newActivityQueryConfig(opts),
	}
}

var _ gocommand.Querier[types.ActivityDetailRequest, types.ActivityEntry] = (*ActivityDetailQuery)(nil)

// Query returns the entry or types.ErrActivityNotFound.
func (q *ActivityDetailQuery) Query(ctx context.Context, req types.ActivityDetailRequest) (types.ActivityEntry, error) {
	if q.repo == nil {
		return types.ActivityEntry{}, types.ErrMissingActivityRepository
	}
	if err := req.Validate(); err != nil {
		return types.ActivityEntry{}, err
	}
	resolved, err := q.guard.Enforce(ctx, req.Actor, req.Scope, types.PolicyActionActivityRead, req.ID)
	if err != nil {
		return types.ActivityEntry{}, err
	}
	entry, err := q.repo.GetActivity(ctx, req.ID, resolved)
	if err != nil {
		return types.ActivityEntry{}, err
	}
	if entry == nil {
		return types.ActivityEntry{}, types.ErrActivityNotFound
	}
	return q.cfg.decorate(ctx, []types.ActivityEntry{*entry})[0], nil
}

func (cfg activityQueryConfig) decorate(ctx context.Context, entries []types.ActivityEntry) []types.ActivityEntry {
	if len(entries) == 0 {
		return entries
	}
	entries = cfg.attachCausers(ctx, entries)
	if cfg.sanitize {
		entries = activity.SanitizeEntries(cfg.masker, entries)
	}
	return entries
}

// attachCausers resolves causer names in one directory call. Lookup failures
// are logged and leave causers unresolved.
func (cfg activityQueryConfig) attachCausers(ctx context.Context, entries []types.ActivityEntry) []types.ActivityEntry {
	if cfg.causers == nil {
		return entries
	}
	seen := make(map[types.CauserKey]bool)
	keys := make([]types.CauserKey, 0, len(entries))
	for _, entry := range entries {
		if !entry.HasCauser() {
			continue
		}
		key := types.CauserKey{Type: strings.TrimSpace(entry.CauserType), ID: strings.TrimSpace(entry.CauserID)}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return entries
	}

	found, err := cfg.causers.LookupCausers(ctx, keys)
	if err != nil {
		cfg.logger.Warn("activity: causer lookup failed", "error", err, "count", len(keys))
		return entries
	}
	for i := range entries {
		if !entries[i].HasCauser() {
			continue
		}
		key := types.CauserKey{Type: strings.TrimSpace(entries[i].CauserType), ID: strings.TrimSpace(entries[i].CauserID)}
		if causer, ok := found[key]; ok {
			resolved := causer
			entries[i].Causer = &resolved
		}
	}
	return entries
}
