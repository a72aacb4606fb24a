package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig_TolerantDecoding(t *testing.T) {
	raw := map[string]any{
		"resources": map[string]any{"enabled": true, "log_name": "resource", "color": "success"},
		"models":    "broken",
		"access":    map[string]any{"enabled": "yes-please", "log_name": "access"},
		"notifications": map[string]any{
			"enabled":  "true",
			"log_name": " notification ",
		},
		"custom": []any{
			map[string]any{"log_name": "security", "color": "danger"},
			42,
		},
	}

	cfg, issues := ParseConfig(raw)
	require.Equal(t, CategoryConfig{Enabled: true, LogName: "resource", Color: "success"}, cfg.Resources)
	require.False(t, cfg.Models.Enabled)
	require.False(t, cfg.Access.Enabled)
	require.Equal(t, CategoryConfig{Enabled: true, LogName: "notification"}, cfg.Notifications)
	require.Equal(t, []CustomCategory{{LogName: "security", Color: "danger"}}, cfg.Custom)

	require.Len(t, issues, 3)
	require.Equal(t, "models", issues[0].Category)
	require.Equal(t, "access", issues[1].Category)
	require.Equal(t, "custom[1]", issues[2].Category)

	require.Equal(t, []string{"resource", "notification", "security"}, LogNameOptions(cfg).Keys())
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, issues := ParseConfig(nil)
	require.Empty(t, issues)
	require.True(t, cfg.IsZero())

	_, issues = ParseConfig(map[string]any{"custom": "nope"})
	require.Len(t, issues, 1)
	require.Equal(t, "custom", issues[0].Category)
}
