package crudsvc

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-activitylog/crudguard"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestActivityServiceIndexAppliesFilters(t *testing.T) {
	tenantID := uuid.New()
	actor := types.ActorRef{ID: uuid.New(), Type: types.ActorRoleTenantAdmin}
	list := &stubListQuery{
		result: types.ActivityPage{
			Entries: []types.ActivityEntry{{
				ID:       uuid.New(),
				LogName:  "Resource",
				CauserID: "7",
				Causer:   &types.CauserRef{ID: "7", Name: "Ada"},
			}},
			Total: 4,
		},
	}
	svc := NewActivityService(ActivityServiceConfig{
		Guard: &stubGuardAdapter{result: crudguard.GuardResult{
			Actor: actor,
			Scope: types.ScopeFilter{TenantID: tenantID},
		}},
		ListQuery: list,
	}, WithDateFilter("d/m/Y", time.UTC))

	ctx := newTestCrudContext(context.Background())
	ctx.queries["log_name"] = "Resource"
	ctx.queries["subject_type"] = "posts"
	ctx.queries["old"] = "draft"
	ctx.queries["new"] = "published"
	ctx.queries["logged_at"] = "10/03/2026"
	ctx.queries["sort"] = "log_name"
	ctx.queries["limit"] = "10"
	ctx.queries["offset"] = "20"

	records, total, err := svc.Index(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, records, 1)
	require.Equal(t, "Ada", records[0].CauserName)

	filter := list.lastFilter
	require.Equal(t, actor, filter.Actor)
	require.Equal(t, tenantID, filter.Scope.TenantID)
	require.Equal(t, "Resource", filter.LogName)
	require.Equal(t, "posts", filter.SubjectType)
	require.Equal(t, "draft", filter.OldContains)
	require.Equal(t, "published", filter.NewContains)
	require.NotNil(t, filter.LoggedOn)
	require.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *filter.LoggedOn)
	require.Equal(t, types.Sort{Field: types.SortByLogName, Asc: true}, filter.Sort)
	require.Equal(t, types.Pagination{Limit: 10, Offset: 20}, filter.Pagination)
}

func TestActivityServiceIndexDefaults(t *testing.T) {
	list := &stubListQuery{}
	svc := NewActivityService(ActivityServiceConfig{
		Guard:     &stubGuardAdapter{result: crudguard.GuardResult{Actor: types.ActorRef{ID: uuid.New()}}},
		ListQuery: list,
	})

	_, _, err := svc.Index(newTestCrudContext(context.Background()), nil)
	require.NoError(t, err)
	require.Equal(t, types.Sort{Field: types.SortByCreatedAt}, list.lastFilter.Sort)
	require.Equal(t, 25, list.lastFilter.Pagination.Limit)
	require.Nil(t, list.lastFilter.LoggedOn)
}

func TestActivityServiceIndexRejectsBadDate(t *testing.T) {
	list := &stubListQuery{}
	svc := NewActivityService(ActivityServiceConfig{
		Guard:     &stubGuardAdapter{result: crudguard.GuardResult{Actor: types.ActorRef{ID: uuid.New()}}},
		ListQuery: list,
	})
	ctx := newTestCrudContext(context.Background())
	ctx.queries["logged_at"] = "yesterday"

	_, _, err := svc.Index(ctx, nil)
	require.Error(t, err)
	require.False(t, list.called)
}

func TestActivityServiceIndexStopsOnGuardError(t *testing.T) {
	list := &stubListQuery{}
	svc := NewActivityService(ActivityServiceConfig{
		Guard:     &stubGuardAdapter{err: types.ErrUnauthorizedScope},
		ListQuery: list,
	})
	_, _, err := svc.Index(newTestCrudContext(context.Background()), nil)
	require.ErrorIs(t, err, types.ErrUnauthorizedScope)
	require.False(t, list.called)
}

func TestActivityServiceShow(t *testing.T) {
	entryID := uuid.New()
	actor := types.ActorRef{ID: uuid.New(), Type: types.ActorRoleSystemAdmin}
	detail := &stubDetailQuery{
		entries: map[uuid.UUID]types.ActivityEntry{
			entryID: {ID: entryID, LogName: "Access", Event: "login"},
		},
	}
	guard := &stubGuardAdapter{result: crudguard.GuardResult{Actor: actor}}
	svc := NewActivityService(ActivityServiceConfig{Guard: guard, DetailQuery: detail})

	record, err := svc.Show(newTestCrudContext(context.Background()), entryID.String(), nil)
	require.NoError(t, err)
	require.Equal(t, "Access", record.LogName)
	require.Equal(t, entryID, guard.lastInput.TargetID)
	require.Equal(t, crud.OpRead, guard.lastInput.Operation)
	require.Equal(t, actor, detail.lastRequest.Actor)

	_, err = svc.Show(newTestCrudContext(context.Background()), uuid.NewString(), nil)
	requireCategory(t, err, goerrors.CategoryNotFound)

	_, err = svc.Show(newTestCrudContext(context.Background()), "not-a-uuid", nil)
	requireCategory(t, err, goerrors.CategoryValidation)
}

func TestActivityServiceRejectsWrites(t *testing.T) {
	svc := NewActivityService(ActivityServiceConfig{Guard: &stubGuardAdapter{}})
	ctx := newTestCrudContext(context.Background())

	_, err := svc.Create(ctx, nil)
	requireCategory(t, err, goerrors.CategoryValidation)
	_, err = svc.Update(ctx, nil)
	requireCategory(t, err, goerrors.CategoryValidation)
	requireCategory(t, svc.Delete(ctx, nil), goerrors.CategoryValidation)
	requireCategory(t, svc.DeleteBatch(ctx, nil), goerrors.CategoryValidation)
}

func TestReadOnlyRoutesDisableWrites(t *testing.T) {
	cfg := ReadOnlyRoutes()
	require.Len(t, cfg.Operations, 6)
	for op, opts := range cfg.Operations {
		require.NotNil(t, opts.Enabled, "operation %s", op)
		require.False(t, *opts.Enabled)
	}
	_, listed := cfg.Operations[crud.OpList]
	require.False(t, listed)
}

// helpers

func requireCategory(t *testing.T, err error, category goerrors.Category) {
	t.Helper()
	require.Error(t, err)
	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr), "expected go-errors.Error, got %T", err)
	require.Equal(t, category, richErr.Category)
}

type stubGuardAdapter struct {
	result    crudguard.GuardResult
	err       error
	lastInput crudguard.GuardInput
}

func (s *stubGuardAdapter) Enforce(in crudguard.GuardInput) (crudguard.GuardResult, error) {
	s.lastInput = in
	if s.err != nil {
		return crudguard.GuardResult{}, s.err
	}
	return s.result, nil
}

type stubListQuery struct {
	result     types.ActivityPage
	lastFilter types.ActivityFilter
	called     bool
}

func (s *stubListQuery) Query(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	s.called = true
	s.lastFilter = filter
	return s.result, nil
}

type stubDetailQuery struct {
	entries     map[uuid.UUID]types.ActivityEntry
	lastRequest types.ActivityDetailRequest
}

func (s *stubDetailQuery) Query(_ context.Context, req types.ActivityDetailRequest) (types.ActivityEntry, error) {
	s.lastRequest = req
	entry, ok := s.entries[req.ID]
	if !ok {
		return types.ActivityEntry{}, types.ErrActivityNotFound
	}
	return entry, nil
}

type testCrudContext struct {
	ctx     context.Context
	queries map[string]string
}

func newTestCrudContext(ctx context.Context) *testCrudContext {
	return &testCrudContext{
		ctx:     ctx,
		queries: map[string]string{},
	}
}

func (t *testCrudContext) UserContext() context.Context {
	return t.ctx
}

func (t *testCrudContext) Params(string, ...string) string {
	return ""
}

func (t *testCrudContext) BodyParser(any) error {
	return nil
}

func (t *testCrudContext) Query(key string, defaultValue ...string) string {
	if v, ok := t.queries[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (t *testCrudContext) QueryValues(key string) []string {
	if v, ok := t.queries[key]; ok {
		return []string{v}
	}
	return nil
}

func (t *testCrudContext) QueryInt(string, ...int) int {
	return 0
}

func (t *testCrudContext) Queries() map[string]string {
	return t.queries
}

func (t *testCrudContext) Body() []byte {
	return nil
}

func (t *testCrudContext) Status(int) crud.Response {
	return t
}

func (t *testCrudContext) JSON(any, ...string) error {
	return nil
}

func (t *testCrudContext) SendStatus(int) error {
	return nil
}
