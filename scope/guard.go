package scope

import (
	"context"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/google/uuid"
)

// Guard resolves and authorizes the scope of every activity query.
type Guard interface {
	Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error)
}

type guard struct {
	resolver types.ScopeResolver
	policy   types.AuthorizationPolicy
}

// NewGuard builds a Guard from the supplied resolver and policy. A nil
// resolver scopes reads to the reader's tenant and a nil policy requires an
// identified reader, so an unconfigured guard never widens access.
func NewGuard(resolver types.ScopeResolver, policy types.AuthorizationPolicy) Guard {
	if resolver == nil {
		resolver = TenantResolver{}
	}
	if policy == nil {
		policy = RolePolicy{}
	}
	return guard{
		resolver: resolver,
		policy:   policy,
	}
}

// Ensure returns g, or the tenant scoped default guard when g is nil.
func Ensure(g Guard) Guard {
	if g == nil {
		return NewGuard(nil, nil)
	}
	return g
}

// NopGuard returns a guard that leaves scopes unchanged and never blocks.
// Hosts that enforce access upstream opt into it explicitly.
func NopGuard() Guard {
	return nopGuard{}
}

type nopGuard struct{}

func (nopGuard) Enforce(_ context.Context, _ types.ActorRef, requested types.ScopeFilter, _ types.PolicyAction, _ uuid.UUID) (types.ScopeFilter, error) {
	return requested, nil
}

// Enforce resolves the requested scope first, then authorizes the action
// against the resolved scope so policies never see a tenant the reader
// could not have asked for.
func (g guard) Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error) {
	resolved, err := g.resolver.ResolveScope(ctx, actor, requested)
	if err != nil {
		return types.ScopeFilter{}, err
	}
	if action == "" {
		action = types.PolicyActionActivityRead
	}
	err = g.policy.Authorize(ctx, types.PolicyCheck{
		Actor:    actor,
		Scope:    resolved,
		Action:   action,
		TargetID: target,
	})
	if err != nil {
		return types.ScopeFilter{}, err
	}
	return resolved, nil
}
