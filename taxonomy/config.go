package taxonomy

import "strings"

// CategoryKey names the origin of a category descriptor.
type CategoryKey string

const (
	KeyResources     CategoryKey = "resources"
	KeyModels        CategoryKey = "models"
	KeyAccess        CategoryKey = "access"
	KeyNotifications CategoryKey = "notifications"
	KeyCustom        CategoryKey = "custom"
)

// BuiltinKeys lists the built-in categories in resolution order.
func BuiltinKeys() []CategoryKey {
	return []CategoryKey{KeyResources, KeyModels, KeyAccess, KeyNotifications}
}

// CategoryConfig configures one built-in category.
type CategoryConfig struct {
	Enabled bool   `json:"enabled"`
	LogName string `json:"log_name"`
	Color   string `json:"color"`
}

// CustomCategory configures an additional category. Custom categories are
// always enabled.
type CustomCategory struct {
	LogName string `json:"log_name"`
	Color   string `json:"color"`
}

// Config describes every log category known to the viewer.
type Config struct {
	Resources     CategoryConfig   `json:"resources"`
	Models        CategoryConfig   `json:"models"`
	Access        CategoryConfig   `json:"access"`
	Notifications CategoryConfig   `json:"notifications"`
	Custom        []CustomCategory `json:"custom"`
}

// Builtin returns the configuration stored under key. Unknown keys yield a
// disabled category.
func (c Config) Builtin(key CategoryKey) CategoryConfig {
	switch key {
	case KeyResources:
		return c.Resources
	case KeyModels:
		return c.Models
	case KeyAccess:
		return c.Access
	case KeyNotifications:
		return c.Notifications
	default:
		return CategoryConfig{}
	}
}

// IsZero reports whether no category is enabled.
func (c Config) IsZero() bool {
	for _, key := range BuiltinKeys() {
		if c.Builtin(key).Enabled {
			return false
		}
	}
	return len(c.Custom) == 0
}

// DefaultConfig mirrors the categories written by the companion audit logger.
func DefaultConfig() Config {
	return Config{
		Resources:     CategoryConfig{Enabled: true, LogName: "Resource", Color: "success"},
		Models:        CategoryConfig{Enabled: true, LogName: "Model", Color: "warning"},
		Access:        CategoryConfig{Enabled: true, LogName: "Access", Color: "danger"},
		Notifications: CategoryConfig{Enabled: true, LogName: "Notification"},
	}
}

func clean(value string) string {
	return strings.TrimSpace(value)
}
