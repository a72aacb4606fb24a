package activity

import (
	"strings"

	"github.com/goliatone/go-activitylog/pkg/authctx"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-auth"
)

// FilterConfig controls how BuildFilterFromActor derives the query scope.
type FilterConfig struct {
	// SuperadminScope lets superadmins keep the scope they requested instead
	// of the one attached to their auth context.
	SuperadminScope       bool
	SuperadminRoleAliases []string
}

// FilterOption mutates the filter configuration.
type FilterOption func(*FilterConfig)

// WithSuperadminScope allows superadmins to widen scope beyond actor context.
func WithSuperadminScope(enabled bool) FilterOption {
	return func(cfg *FilterConfig) {
		cfg.SuperadminScope = enabled
	}
}

// WithSuperadminRoleAliases overrides the roles treated as superadmins.
func WithSuperadminRoleAliases(aliases ...string) FilterOption {
	return func(cfg *FilterConfig) {
		cfg.SuperadminRoleAliases = normalizeIdentifiers(aliases)
	}
}

// DefaultSuperadminRoleAliases returns the default superadmin role aliases.
func DefaultSuperadminRoleAliases() []string {
	return append([]string(nil), defaultSuperadminRoleAliases...)
}

var defaultSuperadminRoleAliases = []string{types.ActorRoleSystemAdmin, "superadmin"}

// BuildFilterFromActor stamps the actor reference and scope from the go-auth
// actor context onto the requested filter. Request supplied scope is ignored
// unless the actor is a superadmin and SuperadminScope is enabled.
func BuildFilterFromActor(actor *auth.ActorContext, req types.ActivityFilter, opts ...FilterOption) (types.ActivityFilter, error) {
	cfg := FilterConfig{SuperadminRoleAliases: normalizeIdentifiers(defaultSuperadminRoleAliases)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ref, err := authctx.ActorRefFromActorContext(actor)
	if err != nil {
		return types.ActivityFilter{}, err
	}

	filter := req
	filter.Actor = ref
	if cfg.SuperadminScope && roleMatches(normalizeIdentifier(ref.Type), cfg.SuperadminRoleAliases) {
		filter.Scope = req.Scope
	} else {
		filter.Scope = authctx.ScopeFromActorContext(actor)
	}
	filter.LogName = strings.TrimSpace(filter.LogName)
	filter.SubjectType = strings.TrimSpace(filter.SubjectType)
	filter.SubjectID = strings.TrimSpace(filter.SubjectID)
	filter.CauserID = strings.TrimSpace(filter.CauserID)
	return filter, nil
}

func roleMatches(role string, aliases []string) bool {
	if role == "" {
		return false
	}
	for _, alias := range aliases {
		if alias == role {
			return true
		}
	}
	return false
}

func normalizeIdentifiers(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if normalized := normalizeIdentifier(value); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
