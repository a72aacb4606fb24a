package crudguard

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/scope"
	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAdapterListMapsToActivityRead(t *testing.T) {
	guard := &stubGuard{
		result:    types.ScopeFilter{TenantID: uuid.New()},
		useResult: true,
	}
	adapter := newTestAdapter(t, guard)

	tenantID := uuid.New()
	actorCtx := &auth.ActorContext{
		ActorID:  uuid.NewString(),
		Role:     types.ActorRoleTenantAdmin,
		TenantID: tenantID.String(),
	}
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx))
	result, err := adapter.Enforce(GuardInput{Context: ctx, Operation: crud.OpList})
	require.NoError(t, err)
	require.True(t, guard.called)
	require.Equal(t, types.PolicyActionActivityRead, guard.lastAction)
	require.Equal(t, tenantID, guard.lastRequested.TenantID)
	require.Equal(t, guard.result.TenantID, result.Scope.TenantID)
	require.Equal(t, types.ActorRoleTenantAdmin, result.Actor.Type)
}

func TestAdapterExplicitScopeOverridesActor(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: types.ActorRoleSystemAdmin, TenantID: uuid.NewString()}
	override := uuid.New()

	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx)),
		Operation: crud.OpRead,
		Scope:     types.ScopeFilter{TenantID: override},
	})
	require.NoError(t, err)
	require.Equal(t, override, guard.lastRequested.TenantID)
}

func TestAdapterBypassSkipsGuard(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: "admin"}
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx))

	result, err := adapter.Enforce(GuardInput{
		Context:   ctx,
		Operation: crud.OpRead,
		Bypass:    &BypassConfig{Enabled: true, Reason: "schema export"},
	})
	require.NoError(t, err)
	require.False(t, guard.called)
	require.True(t, result.Bypassed)
	require.Equal(t, "schema export", result.BypassReason)
}

func TestAdapterMissingActor(t *testing.T) {
	adapter := newTestAdapter(t, &stubGuard{})
	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(context.Background()),
		Operation: crud.OpRead,
	})
	requireTextCode(t, err, "ACTOR_CONTEXT_MISSING")
}

func TestAdapterFallsBackToClaims(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)

	actorID := uuid.New()
	claims := &testClaims{
		subject:  actorID.String(),
		uid:      actorID.String(),
		role:     "user",
		metadata: map[string]any{"tenant_id": uuid.New().String()},
	}
	ctx := auth.WithClaimsContext(context.Background(), claims)

	_, err := adapter.Enforce(GuardInput{Context: newStubCrudContext(ctx), Operation: crud.OpRead})
	require.NoError(t, err)
	require.True(t, guard.called)
}

func TestAdapterWriteOperationsHaveNoPolicy(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: types.ActorRoleSystemAdmin}

	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx)),
		Operation: crud.OpDelete,
	})
	requireTextCode(t, err, textCodeMissingPolicy)
	require.False(t, guard.called)
}

func TestAdapterWrapsGuardErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		code string
	}{
		"unauthorized scope": {err: types.ErrUnauthorizedScope, code: textCodeScopeDenied},
		"tenant required":    {err: types.ErrTenantScopeRequired, code: textCodeTenantRequired},
		"unexpected":         {err: context.DeadlineExceeded, code: textCodeScopeEnforcementFail},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			adapter := newTestAdapter(t, &stubGuard{err: tc.err})
			actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: "viewer"}
			_, err := adapter.Enforce(GuardInput{
				Context:   newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx)),
				Operation: crud.OpList,
			})
			requireTextCode(t, err, tc.code)
		})
	}
}

func TestAdapterWithTenantResolver(t *testing.T) {
	guard := scope.NewGuard(scope.TenantResolver{}, scope.RolePolicy{})
	adapter := newTestAdapter(t, guard)
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: "editor"}

	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx)),
		Operation: crud.OpList,
	})
	requireTextCode(t, err, textCodeTenantRequired)
}

func TestNewAdapterRequiresGuardAndPolicy(t *testing.T) {
	_, err := NewAdapter(Config{PolicyMap: ActivityPolicyMap()})
	require.Error(t, err)

	_, err = NewAdapter(Config{Guard: scope.NopGuard()})
	requireTextCode(t, err, textCodeMissingPolicy)
}

// helpers

func requireTextCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr), "expected go-errors.Error, got %T", err)
	require.Equal(t, code, richErr.TextCode)
}

type stubGuard struct {
	result        types.ScopeFilter
	err           error
	called        bool
	lastAction    types.PolicyAction
	lastRequested types.ScopeFilter
	useResult     bool
}

func (s *stubGuard) Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error) {
	s.called = true
	s.lastAction = action
	s.lastRequested = requested
	if s.err != nil {
		return types.ScopeFilter{}, s.err
	}
	if s.useResult {
		return s.result.Clone(), nil
	}
	return requested, nil
}

func newTestAdapter(t *testing.T, guard scope.Guard) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(Config{
		Guard:          guard,
		Logger:         types.NopLogger{},
		PolicyMap:      ActivityPolicyMap(),
		ScopeExtractor: DefaultScopeExtractor,
	})
	require.NoError(t, err)
	return adapter
}

type stubCrudContext struct {
	ctx     context.Context
	status  int
	body    []byte
	queries map[string]string
}

func newStubCrudContext(ctx context.Context) *stubCrudContext {
	return &stubCrudContext{
		ctx:     ctx,
		queries: map[string]string{},
	}
}

func (s *stubCrudContext) UserContext() context.Context {
	return s.ctx
}

func (s *stubCrudContext) Params(key string, defaultValue ...string) string {
	return ""
}

func (s *stubCrudContext) BodyParser(out any) error {
	return nil
}

func (s *stubCrudContext) Query(key string, defaultValue ...string) string {
	if v, ok := s.queries[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (s *stubCrudContext) QueryValues(key string) []string {
	if v, ok := s.queries[key]; ok {
		return []string{v}
	}
	return nil
}

func (s *stubCrudContext) QueryInt(key string, defaultValue ...int) int {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

func (s *stubCrudContext) Queries() map[string]string {
	return s.queries
}

func (s *stubCrudContext) Body() []byte {
	return s.body
}

func (s *stubCrudContext) Status(status int) crud.Response {
	s.status = status
	return s
}

func (s *stubCrudContext) JSON(data any, ctype ...string) error {
	return nil
}

func (s *stubCrudContext) SendStatus(status int) error {
	s.status = status
	return nil
}

type testClaims struct {
	subject  string
	uid      string
	role     string
	metadata map[string]any
	res      map[string]string
}

func (t *testClaims) Subject() string                  { return t.subject }
func (t *testClaims) UserID() string                   { return t.uid }
func (t *testClaims) Role() string                     { return t.role }
func (t *testClaims) CanRead(string) bool              { return true }
func (t *testClaims) CanEdit(string) bool              { return true }
func (t *testClaims) CanCreate(string) bool            { return true }
func (t *testClaims) CanDelete(string) bool            { return true }
func (t *testClaims) HasRole(role string) bool         { return t.role == role }
func (t *testClaims) IsAtLeast(string) bool            { return true }
func (t *testClaims) Expires() time.Time               { return time.Time{} }
func (t *testClaims) IssuedAt() time.Time              { return time.Time{} }
func (t *testClaims) ResourceRoles() map[string]string { return t.res }
func (t *testClaims) ClaimsMetadata() map[string]any   { return t.metadata }
