package crudsvc

import (
	"strings"

	"github.com/goliatone/go-activitylog/activity"
	"github.com/goliatone/go-activitylog/crudguard"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/resource"
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	repository "github.com/goliatone/go-repository-bun"
)

// ActivityServiceConfig wires dependencies for the CRUD-backed activity service.
type ActivityServiceConfig struct {
	Guard       GuardAdapter
	ListQuery   gocommand.Querier[types.ActivityFilter, types.ActivityPage]
	DetailQuery gocommand.Querier[types.ActivityDetailRequest, types.ActivityEntry]
}

// ActivityService exposes the activity log as a read-only go-crud resource.
// List requests accept the table filters (log_name, subject_type, old, new,
// logged_at) plus subject_id, causer_id, sort, order, limit and offset.
type ActivityService struct {
	guard  GuardAdapter
	list   gocommand.Querier[types.ActivityFilter, types.ActivityPage]
	detail gocommand.Querier[types.ActivityDetailRequest, types.ActivityEntry]
	opts   serviceOptions
}

var _ crud.Service[*activity.LogEntry] = (*ActivityService)(nil)

// NewActivityService constructs the adapter.
func NewActivityService(cfg ActivityServiceConfig, opts ...ServiceOption) *ActivityService {
	return &ActivityService{
		guard:  cfg.Guard,
		list:   cfg.ListQuery,
		detail: cfg.DetailQuery,
		opts:   applyOptions(opts),
	}
}

func (s *ActivityService) Create(crud.Context, *activity.LogEntry) (*activity.LogEntry, error) {
	return nil, notSupported(crud.OpCreate)
}

func (s *ActivityService) CreateBatch(crud.Context, []*activity.LogEntry) ([]*activity.LogEntry, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *ActivityService) Update(crud.Context, *activity.LogEntry) (*activity.LogEntry, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *ActivityService) UpdateBatch(crud.Context, []*activity.LogEntry) ([]*activity.LogEntry, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ActivityService) Delete(crud.Context, *activity.LogEntry) error {
	return notSupported(crud.OpDelete)
}

func (s *ActivityService) DeleteBatch(crud.Context, []*activity.LogEntry) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *ActivityService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*activity.LogEntry, int, error) {
	if s.list == nil {
		return nil, 0, mapQueryError(types.ErrServiceNotReady)
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpList,
	})
	if err != nil {
		return nil, 0, err
	}

	state, err := resource.ParseFilterState(filterValues(ctx), s.opts.dateFormat, s.opts.location)
	if err != nil {
		return nil, 0, err
	}
	filter := state.Apply(types.ActivityFilter{
		Actor:     res.Actor,
		Scope:     res.Scope,
		SubjectID: strings.TrimSpace(ctx.Query("subject_id")),
		CauserID:  strings.TrimSpace(ctx.Query("causer_id")),
		Sort:      querySort(ctx),
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", activity.DefaultPageSize),
			Offset: queryInt(ctx, "offset", 0),
		},
	})

	page, err := s.list.Query(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, mapQueryError(err)
	}
	records := make([]*activity.LogEntry, 0, len(page.Entries))
	for _, entry := range page.Entries {
		records = append(records, activity.FromActivityEntry(entry))
	}
	s.opts.logger.Debug("crudsvc: activity index", "total", page.Total, "returned", len(records))
	return records, page.Total, nil
}

func (s *ActivityService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*activity.LogEntry, error) {
	if s.detail == nil {
		return nil, mapQueryError(types.ErrServiceNotReady)
	}
	entryID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{
		Context:   ctx,
		Operation: crud.OpRead,
		TargetID:  entryID,
	})
	if err != nil {
		return nil, err
	}
	entry, err := s.detail.Query(ctx.UserContext(), types.ActivityDetailRequest{
		Actor: res.Actor,
		Scope: res.Scope,
		ID:    entryID,
	})
	if err != nil {
		return nil, mapQueryError(err)
	}
	return activity.FromActivityEntry(entry), nil
}
