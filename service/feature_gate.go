package service

import (
	"context"

	"github.com/goliatone/go-activitylog/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

// FeatureSubjectDiscovery gates subject type discovery per scope.
const FeatureSubjectDiscovery = "activity.subject_discovery"

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, scope types.ScopeFilter, userID uuid.UUID) (bool, error) {
	if gate == nil {
		return true, nil
	}
	scopeSet := featureScopeSet(scope, userID)
	if scopeSet == nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeSet(*scopeSet))
}

func featureScopeSet(scope types.ScopeFilter, userID uuid.UUID) *featuregate.ScopeSet {
	set := featuregate.ScopeSet{System: true}
	if scope.TenantID != uuid.Nil {
		set.TenantID = scope.TenantID.String()
	}
	if scope.OrgID != uuid.Nil {
		set.OrgID = scope.OrgID.String()
	}
	if userID != uuid.Nil {
		set.UserID = userID.String()
	}
	if set.TenantID == "" && set.OrgID == "" && set.UserID == "" {
		return nil
	}
	return &set
}
