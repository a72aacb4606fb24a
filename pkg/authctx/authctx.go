// Package authctx bridges go-auth actor metadata into the actor and scope
// values used by activity log queries.
package authctx

import (
	"context"

	"github.com/goliatone/go-activitylog/pkg/types"
	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const (
	textCodeActorMissing = "ACTOR_CONTEXT_MISSING"
	textCodeActorInvalid = "ACTOR_CONTEXT_INVALID"
)

// ResolveActorContext returns the actor stored by go-auth middleware, falling
// back to the JWT claims when no actor was attached.
func ResolveActorContext(ctx context.Context) (*auth.ActorContext, error) {
	if ctx == nil {
		return nil, missingActor("go-activitylog: missing request context")
	}
	if actor, ok := auth.ActorFromContext(ctx); ok && actor != nil {
		return actor, nil
	}
	if claims, ok := auth.GetClaims(ctx); ok && claims != nil {
		if actor := auth.ActorContextFromClaims(claims); actor != nil {
			return actor, nil
		}
	}
	return nil, missingActor("go-activitylog: auth actor context not found on request")
}

// ResolveActor returns the reader reference together with its scope.
func ResolveActor(ctx context.Context) (types.ActorRef, types.ScopeFilter, error) {
	actorCtx, err := ResolveActorContext(ctx)
	if err != nil {
		return types.ActorRef{}, types.ScopeFilter{}, err
	}
	ref, err := ActorRefFromActorContext(actorCtx)
	if err != nil {
		return types.ActorRef{}, types.ScopeFilter{}, err
	}
	return ref, ScopeFromActorContext(actorCtx), nil
}

// ActorRefFromActorContext converts the middleware payload into an ActorRef.
// The role doubles as the actor type so role checks work on the reference.
func ActorRefFromActorContext(actor *auth.ActorContext) (types.ActorRef, error) {
	if actor == nil {
		return types.ActorRef{}, invalidActor(nil, "go-activitylog: actor context is nil")
	}
	if actor.ActorID == "" {
		return types.ActorRef{}, invalidActor(nil, "go-activitylog: actor context missing actor_id")
	}
	actorID, err := uuid.Parse(actor.ActorID)
	if err != nil {
		return types.ActorRef{}, invalidActor(err, "go-activitylog: invalid actor_id on auth context")
	}

	ref := types.ActorRef{ID: actorID, Type: actor.Role}
	if ref.Type == "" {
		ref.Type = actor.Subject
	}
	return ref, nil
}

// ScopeFromActorContext reads the tenant and organization identifiers.
// Malformed identifiers are ignored.
func ScopeFromActorContext(actor *auth.ActorContext) types.ScopeFilter {
	if actor == nil {
		return types.ScopeFilter{}
	}
	return types.ScopeFilter{
		TenantID: parseUUID(actor.TenantID),
		OrgID:    parseUUID(actor.OrganizationID),
	}
}

// ContextWithActor stores an actor context built from ref and scope, for
// callers such as CLIs that run without auth middleware.
func ContextWithActor(ctx context.Context, ref types.ActorRef, scope types.ScopeFilter) context.Context {
	actor := &auth.ActorContext{
		ActorID: ref.ID.String(),
		Role:    ref.Type,
		Subject: ref.ID.String(),
	}
	if scope.TenantID != uuid.Nil {
		actor.TenantID = scope.TenantID.String()
	}
	if scope.OrgID != uuid.Nil {
		actor.OrganizationID = scope.OrgID.String()
	}
	return auth.WithActorContext(ctx, actor)
}

func missingActor(msg string) error {
	return errors.New(msg, errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodeActorMissing)
}

func invalidActor(cause error, msg string) error {
	if cause != nil {
		return errors.Wrap(cause, errors.CategoryAuth, msg).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	return errors.New(msg, errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodeActorInvalid)
}

func parseUUID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
