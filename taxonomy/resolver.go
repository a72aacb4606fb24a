package taxonomy

// LogNameOptions returns the selectable log names, keyed and valued by the
// log name. Built-in categories come first in fixed order, then customs.
// Disabled categories and categories without a log name are skipped.
func LogNameOptions(cfg Config) *Options {
	options := NewOptions()
	for _, category := range Categories(cfg) {
		if !category.Usable() {
			continue
		}
		options.Set(category.LogName, category.LogName)
	}
	return options
}

// LogNameColors maps badge colors to log names. Only enabled categories with
// both a log name and a color contribute. A later category reusing a color
// replaces the earlier one, and a log name assigned twice keeps only its last
// color.
func LogNameColors(cfg Config) *Options {
	colors := NewOptions()
	for _, category := range Categories(cfg) {
		if !category.Usable() || category.Color == "" {
			continue
		}
		if previous, ok := colors.KeyFor(category.LogName); ok && previous != category.Color {
			colors.Delete(previous)
		}
		colors.Set(category.Color, category.LogName)
	}
	return colors
}

// ColorFor returns the badge color configured for logName.
func ColorFor(colors *Options, logName string) string {
	color, _ := colors.KeyFor(logName)
	return color
}
