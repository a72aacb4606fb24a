// Package activitylog exposes activity log entries written by an audit logger
// to admin interfaces: log taxonomy options and badge colors, subject type
// discovery, per-entry display values, the admin resource descriptor and a
// scoped read-only query surface.
package activitylog

import "github.com/goliatone/go-activitylog/service"

// Re-export the service entry point so consumers can call activitylog.New
// without importing the wiring package.
type (
	Service        = service.Service
	Config         = service.Config
	Queries        = service.Queries
	SubjectsConfig = service.SubjectsConfig
)

// New constructs the viewer runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
