// Package config holds the go-config surface for the activity log viewer and
// its CLI. Every key is optional; defaults match the categories written by
// the companion audit logger.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-activitylog/display"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/resource"
	"github.com/goliatone/go-activitylog/taxonomy"
	goerrors "github.com/goliatone/go-errors"
	persistence "github.com/goliatone/go-persistence-bun"
)

const textCodeInvalidConfig = "ACTIVITYLOG_CONFIG_INVALID"

// BaseConfig is the root loaded by the go-config container.
type BaseConfig struct {
	ActivityLog ActivityLogConfig `json:"activity_log"`
	Persistence PersistenceConfig `json:"persistence"`
	Log         LogConfig         `json:"log"`
}

// ActivityLogConfig configures the viewer. The category sections stay
// loosely typed so a malformed section disables its category through
// taxonomy.ParseConfig instead of failing the whole load.
type ActivityLogConfig struct {
	Resources        any            `json:"resources"`
	Models           any            `json:"models"`
	Access           any            `json:"access"`
	Notifications    any            `json:"notifications"`
	Custom           any            `json:"custom"`
	ActivityResource string         `json:"activity_resource" default:"activity-logs"`
	DateTimeFormat   string         `json:"datetime_format" env:"ACTIVITYLOG_DATETIME_FORMAT" default:"d/m/Y H:i:s"`
	DateFormat       string         `json:"date_format" env:"ACTIVITYLOG_DATE_FORMAT" default:"d/m/Y"`
	Timezone         string         `json:"timezone" env:"ACTIVITYLOG_TIMEZONE" default:"UTC"`
	ScopedToTenant   bool           `json:"scoped_to_tenant" env:"ACTIVITYLOG_SCOPED_TO_TENANT" default:"true"`
	NavigationSort   *int           `json:"navigation_sort"`
	Entities         []EntityConfig `json:"entities"`
	Cache            bool           `json:"cache" env:"ACTIVITYLOG_CACHE"`
}

// Keys read from the resources section besides the category fields.
const (
	keyExclude         = "exclude"
	keyCluster         = "cluster"
	keyNavigationGroup = "navigation_group"
)

// EntityConfig registers an admin resource for subject type discovery.
type EntityConfig struct {
	Resource string `json:"resource"`
	Model    string `json:"model"`
}

// PersistenceConfig implements persistence.Config.
type PersistenceConfig struct {
	Debug          bool          `json:"debug" env:"ACTIVITYLOG_DB_DEBUG"`
	Driver         string        `json:"driver" env:"ACTIVITYLOG_DB_DRIVER" default:"sqlite"`
	Server         string        `json:"server" env:"ACTIVITYLOG_DB_SERVER" default:"file:activitylog.db?cache=shared&_fk=1"`
	PingTimeout    time.Duration `json:"ping_timeout" default:"5s"`
	OtelIdentifier string        `json:"otel_identifier" default:"go-activitylog"`
}

func (c PersistenceConfig) GetDebug() bool                { return c.Debug }
func (c PersistenceConfig) GetDriver() string             { return c.Driver }
func (c PersistenceConfig) GetServer() string             { return c.Server }
func (c PersistenceConfig) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c PersistenceConfig) GetOtelIdentifier() string     { return c.OtelIdentifier }

// LogConfig controls the CLI logger.
type LogConfig struct {
	Debug bool `json:"debug" env:"ACTIVITYLOG_LOG_DEBUG"`
}

// Defaults returns the configuration used when nothing is loaded.
func Defaults() *BaseConfig {
	tax := taxonomy.DefaultConfig()
	return &BaseConfig{
		ActivityLog: ActivityLogConfig{
			Resources: map[string]any{
				"enabled":          tax.Resources.Enabled,
				"log_name":         tax.Resources.LogName,
				"color":            tax.Resources.Color,
				keyNavigationGroup: resource.DefaultNavigationGroup,
			},
			Models:           section(tax.Models),
			Access:           section(tax.Access),
			Notifications:    section(tax.Notifications),
			ActivityResource: taxonomy.DefaultActivityResource,
			DateTimeFormat:   display.DefaultDateTimeFormat,
			DateFormat:       display.DefaultDateFormat,
			Timezone:         "UTC",
			ScopedToTenant:   true,
		},
		Persistence: PersistenceConfig{
			Driver:         "sqlite",
			Server:         "file:activitylog.db?cache=shared&_fk=1",
			PingTimeout:    5 * time.Second,
			OtelIdentifier: "go-activitylog",
		},
	}
}

// GetPersistence returns the persistence config.
func (c *BaseConfig) GetPersistence() persistence.Config {
	return c.Persistence
}

// Validate implements config.Validable. Taxonomy problems are not errors;
// the service logs and skips them.
func (c *BaseConfig) Validate() error {
	if _, err := c.ActivityLog.Location(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Persistence.Driver)) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
	default:
		return invalid(fmt.Sprintf("unsupported persistence driver %q", c.Persistence.Driver), nil)
	}
	for i, entity := range c.ActivityLog.Entities {
		if strings.TrimSpace(entity.Model) == "" {
			return invalid(fmt.Sprintf("entities[%d] is missing a model", i), nil)
		}
	}
	return nil
}

// Taxonomy decodes the category sections. Malformed sections come back
// disabled, each with an issue describing what was wrong.
func (c ActivityLogConfig) Taxonomy() (taxonomy.Config, []taxonomy.Issue) {
	return taxonomy.ParseConfig(map[string]any{
		string(taxonomy.KeyResources):     c.Resources,
		string(taxonomy.KeyModels):        c.Models,
		string(taxonomy.KeyAccess):        c.Access,
		string(taxonomy.KeyNotifications): c.Notifications,
		string(taxonomy.KeyCustom):        c.Custom,
	})
}

// Exclude lists the resources hidden from subject type discovery.
func (c ActivityLogConfig) Exclude() []string {
	raw, ok := asSection(c.Resources)
	if !ok {
		return nil
	}
	switch list := raw[keyExclude].(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if value, isString := item.(string); isString && strings.TrimSpace(value) != "" {
				out = append(out, strings.TrimSpace(value))
			}
		}
		return out
	default:
		return nil
	}
}

// Resource converts the resource settings.
func (c ActivityLogConfig) Resource() resource.Config {
	return resource.Config{
		Slug:            c.ActivityResource,
		NavigationGroup: c.resourceString(keyNavigationGroup),
		NavigationSort:  c.NavigationSort,
		Cluster:         c.resourceString(keyCluster),
		Unscoped:        !c.ScopedToTenant,
		DateTimeFormat:  c.DateTimeFormat,
		DateFormat:      c.DateFormat,
		Timezone:        c.Timezone,
	}
}

// RegisteredEntities returns the configured entity registry entries.
func (c ActivityLogConfig) RegisteredEntities() []types.RegisteredEntity {
	if len(c.Entities) == 0 {
		return nil
	}
	out := make([]types.RegisteredEntity, 0, len(c.Entities))
	for _, entity := range c.Entities {
		out = append(out, types.RegisteredEntity{Resource: entity.Resource, Model: entity.Model})
	}
	return out
}

// Location loads the configured timezone. Empty means UTC.
func (c ActivityLogConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, invalid(fmt.Sprintf("unknown timezone %q", name), err)
	}
	return loc, nil
}

func (c ActivityLogConfig) resourceString(key string) string {
	raw, ok := asSection(c.Resources)
	if !ok {
		return ""
	}
	value, _ := raw[key].(string)
	return strings.TrimSpace(value)
}

func asSection(value any) (map[string]any, bool) {
	raw, ok := value.(map[string]any)
	return raw, ok
}

func section(c taxonomy.CategoryConfig) map[string]any {
	out := map[string]any{"enabled": c.Enabled, "log_name": c.LogName}
	if c.Color != "" {
		out["color"] = c.Color
	}
	return out
}

func invalid(msg string, cause error) error {
	msg = "go-activitylog: " + msg
	if cause != nil {
		return goerrors.Wrap(cause, goerrors.CategoryValidation, msg).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode(textCodeInvalidConfig)
	}
	return goerrors.New(msg, goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(textCodeInvalidConfig)
}
