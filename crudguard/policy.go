package crudguard

import (
	"maps"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-crud"
)

// ActivityPolicyMap maps the read verbs to activity:read. Write verbs are
// left unmapped so they fail unless a fallback action is configured.
func ActivityPolicyMap() map[crud.CrudOperation]types.PolicyAction {
	return map[crud.CrudOperation]types.PolicyAction{
		crud.OpRead: types.PolicyActionActivityRead,
		crud.OpList: types.PolicyActionActivityRead,
	}
}

func clonePolicyMap(in map[crud.CrudOperation]types.PolicyAction) map[crud.CrudOperation]types.PolicyAction {
	if len(in) == 0 {
		return nil
	}
	cp := make(map[crud.CrudOperation]types.PolicyAction, len(in))
	maps.Copy(cp, in)
	return cp
}
