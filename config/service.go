package config

import (
	"github.com/goliatone/go-activitylog/registry"
	"github.com/goliatone/go-activitylog/service"
)

// ApplyService copies the viewer settings onto base. Dependencies already
// set on base are kept; configured entities are consulted before any
// registry supplied by the host.
func (c ActivityLogConfig) ApplyService(base service.Config) (service.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return service.Config{}, err
	}
	tax, issues := c.Taxonomy()
	base.Taxonomy = tax
	base.TaxonomyIssues = issues
	base.Resource = c.Resource()
	base.Location = loc
	base.Subjects = service.SubjectsConfig{
		Disabled:         !tax.Resources.Enabled,
		Exclude:          c.Exclude(),
		ActivityResource: c.ActivityResource,
	}
	if entities := c.RegisteredEntities(); len(entities) > 0 {
		static := registry.NewStatic(entities...)
		if base.EntityRegistry != nil {
			base.EntityRegistry = registry.Chain{static, base.EntityRegistry}
		} else {
			base.EntityRegistry = static
		}
	}
	return base, nil
}
