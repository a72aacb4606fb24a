// Package display turns activity entries into the strings and panels an admin
// UI renders. Missing values render as "-" and empty property panels are
// omitted.
package display

import (
	"time"

	"github.com/goliatone/go-activitylog/activity"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/taxonomy"
	"github.com/goliatone/go-masker"
	"github.com/google/uuid"
)

// Panel keys.
const (
	PanelProperties = "properties"
	PanelOld        = types.PropertyOld
	PanelAttributes = types.PropertyAttributes
)

// Panel groups one section of the entry's properties.
type Panel struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

// EntryView holds the display values for a single entry.
type EntryView struct {
	ID             string  `json:"id"`
	LogName        string  `json:"log_name"`
	LogNameColor   string  `json:"log_name_color,omitempty"`
	Event          string  `json:"event"`
	Description    string  `json:"description"`
	Subject        string  `json:"subject"`
	Causer         string  `json:"causer"`
	LoggedAt       string  `json:"logged_at"`
	ShowProperties bool    `json:"show_properties"`
	Panels         []Panel `json:"panels,omitempty"`
}

// Panel returns the panel stored under key.
func (v EntryView) Panel(key string) (Panel, bool) {
	for _, panel := range v.Panels {
		if panel.Key == key {
			return panel, true
		}
	}
	return Panel{}, false
}

// Config configures a Presenter.
type Config struct {
	// DateTimeFormat accepts a Go layout or a PHP date pattern.
	DateTimeFormat string
	Location       *time.Location
	Colors         *taxonomy.Options
	// Masker overrides the masker applied to properties.
	Masker *masker.Masker
	// SkipMasking renders properties as stored.
	SkipMasking bool
}

// Presenter renders entries. It is safe for concurrent use.
type Presenter struct {
	pattern     string
	location    *time.Location
	colors      *taxonomy.Options
	masker      *masker.Masker
	skipMasking bool
}

// NewPresenter builds a presenter, applying defaults for unset fields.
func NewPresenter(cfg Config) *Presenter {
	pattern := cfg.DateTimeFormat
	if pattern == "" {
		pattern = DefaultDateTimeFormat
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	colors := cfg.Colors
	if colors == nil {
		colors = taxonomy.NewOptions()
	}
	return &Presenter{
		pattern:     pattern,
		location:    location,
		colors:      colors,
		masker:      cfg.Masker,
		skipMasking: cfg.SkipMasking,
	}
}

// Present renders one entry.
func (p *Presenter) Present(entry types.ActivityEntry) EntryView {
	view := EntryView{
		LogName:      orPlaceholder(UCWords(entry.LogName)),
		LogNameColor: taxonomy.ColorFor(p.colors, entry.LogName),
		Event:        orPlaceholder(UCWords(entry.Event)),
		Description:  orPlaceholder(entry.Description),
		Subject:      SubjectLabel(entry),
		Causer:       CauserLabel(entry),
		LoggedAt:     p.FormatTime(entry.CreatedAt),
	}
	if entry.ID != uuid.Nil {
		view.ID = entry.ID.String()
	}

	props := entry.Properties
	if !p.skipMasking {
		props = activity.SanitizeProperties(p.masker, props)
	}
	view.ShowProperties = props.Len() > 0
	if !view.ShowProperties {
		return view
	}
	if rows := rowsFrom(props.Extra()); len(rows) > 0 {
		view.Panels = append(view.Panels, Panel{Key: PanelProperties, Label: "Properties", Rows: rows})
	}
	if rows := rowsFrom(props.Old()); len(rows) > 0 {
		view.Panels = append(view.Panels, Panel{Key: PanelOld, Label: "Old", Rows: rows})
	}
	if rows := rowsFrom(props.Attributes()); len(rows) > 0 {
		view.Panels = append(view.Panels, Panel{Key: PanelAttributes, Label: "New", Rows: rows})
	}
	return view
}

// PresentAll renders every entry in order.
func (p *Presenter) PresentAll(entries []types.ActivityEntry) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, p.Present(entry))
	}
	return out
}

// FormatTime renders t in the presenter's location and date pattern.
func (p *Presenter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return Format(t.In(p.location), p.pattern)
}

// SubjectLabel renders "<Type> # <id>", or "-" when the entry has no subject.
func SubjectLabel(entry types.ActivityEntry) string {
	if !entry.HasSubject() {
		return Placeholder
	}
	label := taxonomy.TypeLabel(entry.SubjectType)
	if entry.SubjectID == "" {
		return label
	}
	return label + " # " + entry.SubjectID
}

// CauserLabel renders the causer's name, or "-" when it is unknown.
func CauserLabel(entry types.ActivityEntry) string {
	if entry.Causer == nil {
		return Placeholder
	}
	return orPlaceholder(entry.Causer.Name)
}
