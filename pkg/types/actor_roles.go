package types

import "strings"

const (
	// ActorRoleSystemAdmin represents site-wide administrators that may read
	// activity across tenants.
	ActorRoleSystemAdmin = "system_admin"
	// ActorRoleTenantAdmin represents administrators scoped to a tenant/org.
	ActorRoleTenantAdmin = "tenant_admin"
	// ActorRoleSupport represents support agents with masked payload access.
	ActorRoleSupport = "support"
)

var systemAdminAliases = []string{ActorRoleSystemAdmin, "superadmin"}

// RoleName normalizes the actor role for comparisons.
func (a ActorRef) RoleName() string {
	return normalizeRole(a.Type)
}

// IsRole reports whether the actor matches the provided role.
func (a ActorRef) IsRole(role string) bool {
	role = normalizeRole(role)
	if role == "" {
		return a.RoleName() == ""
	}
	return a.RoleName() == role
}

// IsSupport reports whether the actor should be treated as a support agent.
func (a ActorRef) IsSupport() bool {
	return a.IsRole(ActorRoleSupport)
}

// IsSystemAdmin reports whether the actor can read every tenant.
func (a ActorRef) IsSystemAdmin() bool {
	for _, alias := range systemAdminAliases {
		if a.IsRole(alias) {
			return true
		}
	}
	return false
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
