package resource

import (
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-activitylog/display"
	"github.com/goliatone/go-activitylog/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidFilter = "ACTIVITY_FILTER_INVALID"

// FilterState holds the values submitted through the table filters.
type FilterState struct {
	LogName     string
	SubjectType string
	Old         string
	New         string
	LoggedAt    *time.Time
}

// Indicator is an active filter chip.
type Indicator struct {
	Filter string `json:"filter"`
	Label  string `json:"label"`
}

// ParseFilterState reads filter values keyed by filter name. Dates are
// accepted as ISO dates (2006-01-02) or in dateFormat, and are anchored in loc.
func ParseFilterState(values url.Values, dateFormat string, loc *time.Location) (FilterState, error) {
	state := FilterState{
		LogName:     strings.TrimSpace(values.Get(FilterLogName)),
		SubjectType: strings.TrimSpace(values.Get(FilterSubjectType)),
		Old:         strings.TrimSpace(values.Get(FilterOld)),
		New:         strings.TrimSpace(values.Get(FilterNew)),
	}
	raw := strings.TrimSpace(values.Get(FilterLoggedAt))
	if raw == "" {
		return state, nil
	}
	day, err := ParseDate(raw, dateFormat, loc)
	if err != nil {
		return FilterState{}, err
	}
	state.LoggedAt = &day
	return state, nil
}

// ParseDate parses a filter date as ISO or in the configured date pattern.
func ParseDate(raw, dateFormat string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	layouts := []string{time.DateOnly}
	if layout := display.Layout(firstNonEmpty(dateFormat, display.DefaultDateFormat)); layout != time.DateOnly {
		layouts = append(layouts, layout)
	}
	var lastErr error
	for _, layout := range layouts {
		day, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return day, nil
		}
		lastErr = err
	}
	return time.Time{}, goerrors.Wrap(lastErr, goerrors.CategoryValidation, "invalid logged_at date").
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(textCodeInvalidFilter)
}

// IsZero reports whether no filter is active.
func (s FilterState) IsZero() bool {
	return s.LogName == "" && s.SubjectType == "" && s.Old == "" && s.New == "" && s.LoggedAt == nil
}

// Apply copies the filter values onto the query filter.
func (s FilterState) Apply(filter types.ActivityFilter) types.ActivityFilter {
	if s.LogName != "" {
		filter.LogName = s.LogName
	}
	if s.SubjectType != "" {
		filter.SubjectType = s.SubjectType
	}
	if s.Old != "" {
		filter.OldContains = s.Old
	}
	if s.New != "" {
		filter.NewContains = s.New
	}
	if s.LoggedAt != nil {
		day := *s.LoggedAt
		filter.LoggedOn = &day
	}
	return filter
}

// Indicators lists the chips for the active text filters, using labels for
// the prefixes.
func (s FilterState) Indicators(labels Labels) []Indicator {
	labels = labels.withDefaults()
	var out []Indicator
	if s.Old != "" {
		out = append(out, Indicator{Filter: FilterOld, Label: labels.OldAttributes + s.Old})
	}
	if s.New != "" {
		out = append(out, Indicator{Filter: FilterNew, Label: labels.NewAttributes + s.New})
	}
	return out
}
