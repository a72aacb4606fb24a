package scope

import (
	"context"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/google/uuid"
)

// TenantResolver applies the scoped_to_tenant flag. The zero value is
// scoped: readers only see their tenant and only system admins may read
// without one. Unscoped drops tenant and organization constraints.
type TenantResolver struct {
	Unscoped bool
}

var _ types.ScopeResolver = TenantResolver{}

// ResolveScope implements types.ScopeResolver.
func (r TenantResolver) ResolveScope(_ context.Context, actor types.ActorRef, requested types.ScopeFilter) (types.ScopeFilter, error) {
	if r.Unscoped {
		resolved := requested.Clone()
		resolved.TenantID = uuid.Nil
		resolved.OrgID = uuid.Nil
		return resolved, nil
	}
	if requested.TenantID == uuid.Nil && !actor.IsSystemAdmin() {
		return types.ScopeFilter{}, types.ErrTenantScopeRequired
	}
	return requested, nil
}

// RolePolicy requires an identified reader and limits exports to system and
// tenant admins.
type RolePolicy struct{}

var _ types.AuthorizationPolicy = RolePolicy{}

// Authorize implements types.AuthorizationPolicy.
func (RolePolicy) Authorize(_ context.Context, check types.PolicyCheck) error {
	if check.Actor.ID == uuid.Nil {
		return types.ErrActorRequired
	}
	switch check.Action {
	case types.PolicyActionActivityExport:
		if check.Actor.IsSystemAdmin() || check.Actor.IsRole(types.ActorRoleTenantAdmin) {
			return nil
		}
		return types.ErrUnauthorizedScope
	default:
		return nil
	}
}
