package activity

import (
	"testing"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterFromActor_UsesActorScope(t *testing.T) {
	actorID := uuid.New()
	tenant := uuid.New()
	actor := &auth.ActorContext{
		ActorID:  actorID.String(),
		Role:     types.ActorRoleTenantAdmin,
		TenantID: tenant.String(),
	}

	filter, err := BuildFilterFromActor(actor, types.ActivityFilter{
		Scope:   types.ScopeFilter{TenantID: uuid.New()},
		LogName: " Resource ",
	}, WithSuperadminScope(true))
	require.NoError(t, err)
	require.Equal(t, actorID, filter.Actor.ID)
	require.Equal(t, tenant, filter.Scope.TenantID)
	require.Equal(t, "Resource", filter.LogName)
}

func TestBuildFilterFromActor_SuperadminKeepsRequestedScope(t *testing.T) {
	requested := uuid.New()
	actor := &auth.ActorContext{
		ActorID: uuid.NewString(),
		Role:    "SuperAdmin",
	}

	filter, err := BuildFilterFromActor(actor, types.ActivityFilter{
		Scope: types.ScopeFilter{TenantID: requested},
	}, WithSuperadminScope(true))
	require.NoError(t, err)
	require.Equal(t, requested, filter.Scope.TenantID)

	filter, err = BuildFilterFromActor(actor, types.ActivityFilter{
		Scope: types.ScopeFilter{TenantID: requested},
	})
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, filter.Scope.TenantID)
}

func TestBuildFilterFromActor_RejectsMissingActor(t *testing.T) {
	_, err := BuildFilterFromActor(nil, types.ActivityFilter{})
	require.Error(t, err)
}

func TestSanitizeProperties_KeepsShape(t *testing.T) {
	props := types.Properties{
		"old":        map[string]any{"title": "draft"},
		"attributes": map[string]any{"title": "final"},
		"ip":         "10.0.0.1",
	}

	sanitized := SanitizeProperties(nil, props)
	require.Equal(t, 3, sanitized.Len())
	require.Equal(t, "10.0.0.1", sanitized["ip"])
	require.Equal(t, "draft", props.Old()["title"])

	require.Nil(t, SanitizeProperties(nil, nil))
	require.Empty(t, SanitizeEntries(nil, nil))
}
