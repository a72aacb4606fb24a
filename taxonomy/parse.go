package taxonomy

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseConfig decodes a loosely typed configuration tree, as produced by a
// config loader, into a Config. Sections that are missing or malformed are
// treated as disabled and reported as issues; parsing never fails.
func ParseConfig(raw map[string]any) (Config, []Issue) {
	var (
		cfg    Config
		issues []Issue
	)
	for _, key := range BuiltinKeys() {
		category, issue := parseCategory(key, raw[string(key)])
		if issue != nil {
			issues = append(issues, *issue)
		}
		switch key {
		case KeyResources:
			cfg.Resources = category
		case KeyModels:
			cfg.Models = category
		case KeyAccess:
			cfg.Access = category
		case KeyNotifications:
			cfg.Notifications = category
		}
	}

	customs, customIssues := parseCustom(raw[string(KeyCustom)])
	cfg.Custom = customs
	issues = append(issues, customIssues...)
	return cfg, issues
}

func parseCategory(key CategoryKey, value any) (CategoryConfig, *Issue) {
	if value == nil {
		return CategoryConfig{}, nil
	}
	section, ok := asMap(value)
	if !ok {
		return CategoryConfig{}, &Issue{
			Category: string(key),
			Message:  fmt.Sprintf("expected a mapping, got %T; category disabled", value),
		}
	}
	enabled, ok := asBool(section["enabled"])
	if !ok {
		return CategoryConfig{}, &Issue{
			Category: string(key),
			Message:  "enabled flag is not a boolean; category disabled",
		}
	}
	return CategoryConfig{
		Enabled: enabled,
		LogName: asString(section["log_name"]),
		Color:   asString(section["color"]),
	}, nil
}

func parseCustom(value any) ([]CustomCategory, []Issue) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		if typed, isTyped := value.([]map[string]any); isTyped {
			list = make([]any, len(typed))
			for i := range typed {
				list[i] = typed[i]
			}
		} else {
			return nil, []Issue{{
				Category: string(KeyCustom),
				Message:  fmt.Sprintf("expected a list, got %T; ignored", value),
			}}
		}
	}

	var (
		out    []CustomCategory
		issues []Issue
	)
	for i, item := range list {
		entry, ok := asMap(item)
		if !ok {
			issues = append(issues, Issue{
				Category: fmt.Sprintf("%s[%d]", KeyCustom, i),
				Message:  fmt.Sprintf("expected a mapping, got %T; skipped", item),
			})
			continue
		}
		out = append(out, CustomCategory{
			LogName: asString(entry["log_name"]),
			Color:   asString(entry["color"]),
		})
	}
	return out, issues
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// asBool accepts booleans and their string forms. A missing flag counts as
// disabled.
func asBool(value any) (bool, bool) {
	switch typed := value.(type) {
	case nil:
		return false, true
	case bool:
		return typed, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return ""
	}
}
