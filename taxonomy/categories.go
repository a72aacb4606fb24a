package taxonomy

import "fmt"

// Category is the flattened descriptor every resolver works on.
type Category struct {
	Key     CategoryKey
	Index   int
	Enabled bool
	LogName string
	Color   string
}

// Label identifies the category in diagnostics, e.g. "models" or "custom[2]".
func (c Category) Label() string {
	if c.Key == KeyCustom {
		return fmt.Sprintf("%s[%d]", c.Key, c.Index)
	}
	return string(c.Key)
}

// Usable reports whether the category contributes to resolved options.
func (c Category) Usable() bool {
	return c.Enabled && c.LogName != ""
}

// Categories flattens the configuration into one ordered list: built-ins in
// fixed order followed by customs in configuration order.
func Categories(cfg Config) []Category {
	out := make([]Category, 0, len(BuiltinKeys())+len(cfg.Custom))
	for i, key := range BuiltinKeys() {
		builtin := cfg.Builtin(key)
		out = append(out, Category{
			Key:     key,
			Index:   i,
			Enabled: builtin.Enabled,
			LogName: clean(builtin.LogName),
			Color:   clean(builtin.Color),
		})
	}
	for i, custom := range cfg.Custom {
		out = append(out, Category{
			Key:     KeyCustom,
			Index:   i,
			Enabled: true,
			LogName: clean(custom.LogName),
			Color:   clean(custom.Color),
		})
	}
	return out
}

// Issue reports a configuration problem found while resolving categories.
type Issue struct {
	Category string
	Message  string
}

func (i Issue) String() string {
	return i.Category + ": " + i.Message
}

// Validate returns the configuration errors that make a category unusable.
// Resolvers skip such categories; callers are expected to log the issues once
// at startup.
func Validate(cfg Config) []Issue {
	var issues []Issue
	for _, category := range Categories(cfg) {
		if category.Enabled && category.LogName == "" {
			issues = append(issues, Issue{
				Category: category.Label(),
				Message:  "enabled category has an empty log_name",
			})
		}
	}
	return issues
}
