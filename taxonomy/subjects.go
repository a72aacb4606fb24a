package taxonomy

import (
	"strings"

	"github.com/goliatone/go-activitylog/pkg/types"
)

// DefaultActivityResource is the identifier the activity viewer registers
// itself under. It is always excluded from subject type options.
const DefaultActivityResource = "activity-logs"

// SubjectQuery describes a subject type discovery request.
type SubjectQuery struct {
	// Enabled mirrors resources.enabled; discovery is skipped when false.
	Enabled bool
	// Exclude lists resource or model identifiers to leave out.
	Exclude []string
	// ActivityResource identifies the viewer's own resource.
	ActivityResource string
}

// SubjectTypeOptions maps every registered model identifier, except the
// excluded ones, to a human readable label.
func SubjectTypeOptions(entities []types.RegisteredEntity, query SubjectQuery) *Options {
	options := NewOptions()
	if !query.Enabled {
		return options
	}
	excluded := excludeSet(query)
	for _, entity := range entities {
		model := strings.TrimSpace(entity.Model)
		if model == "" {
			continue
		}
		if excluded[strings.TrimSpace(entity.Resource)] || excluded[model] {
			continue
		}
		options.Set(model, TypeLabel(model))
	}
	return options
}

func excludeSet(query SubjectQuery) map[string]bool {
	set := make(map[string]bool, len(query.Exclude)+1)
	for _, value := range query.Exclude {
		if value = strings.TrimSpace(value); value != "" {
			set[value] = true
		}
	}
	self := strings.TrimSpace(query.ActivityResource)
	if self == "" {
		self = DefaultActivityResource
	}
	set[self] = true
	return set
}
