// Package registry contains default implementations of the entity registry
// used to discover subject type filter options. Hosts with their own admin
// registry implement types.EntityRegistry directly.
package registry
