// Package resource describes the activity log admin resource: navigation,
// pages, table columns, filters and the detail form. Descriptors are plain
// data so any UI layer can render them.
package resource

import (
	"strings"

	"github.com/goliatone/go-activitylog/display"
	"github.com/goliatone/go-activitylog/taxonomy"
)

// Defaults for the resource descriptor.
const (
	DefaultSlug            = taxonomy.DefaultActivityResource
	DefaultNavigationIcon  = "heroicon-o-clipboard-list"
	DefaultNavigationGroup = "Settings"
)

// Filter kinds.
const (
	FilterSelect = "select"
	FilterText   = "text"
	FilterDate   = "date"
)

// Filter names, which double as the query parameter names.
const (
	FilterLogName     = "log_name"
	FilterSubjectType = "subject_type"
	FilterOld         = "old"
	FilterNew         = "new"
	FilterLoggedAt    = "logged_at"
)

// Config carries the resource related configuration keys.
type Config struct {
	Slug            string
	NavigationIcon  string
	NavigationGroup string
	NavigationSort  *int
	Cluster         string
	// Unscoped lets readers see every tenant. The zero value scopes reads to
	// the reader's tenant.
	Unscoped       bool
	DateTimeFormat string
	DateFormat     string
	Timezone       string
	Labels         Labels
}

// Taxonomy bundles the resolved option lists used by columns and filters.
type Taxonomy struct {
	LogNames     *taxonomy.Options
	Colors       *taxonomy.Options
	SubjectTypes *taxonomy.Options
}

// Navigation describes the menu entry.
type Navigation struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Group string `json:"group"`
	Sort  *int   `json:"sort,omitempty"`
}

// Page is a routable page of the resource.
type Page struct {
	Name  string `json:"name"`
	Route string `json:"route"`
}

// Column describes a table column.
type Column struct {
	Name            string            `json:"name"`
	Label           string            `json:"label"`
	Badge           bool              `json:"badge,omitempty"`
	Colors          *taxonomy.Options `json:"colors,omitempty"`
	Sortable        bool              `json:"sortable,omitempty"`
	Toggleable      bool              `json:"toggleable,omitempty"`
	HiddenByDefault bool              `json:"hidden_by_default,omitempty"`
	Wrap            bool              `json:"wrap,omitempty"`
	Format          string            `json:"format,omitempty"`
	Timezone        string            `json:"timezone,omitempty"`
}

// Filter describes a table filter.
type Filter struct {
	Name          string            `json:"name"`
	Kind          string            `json:"kind"`
	Label         string            `json:"label"`
	Field         string            `json:"field"`
	Options       *taxonomy.Options `json:"options,omitempty"`
	Hint          string            `json:"hint,omitempty"`
	DisplayFormat string            `json:"display_format,omitempty"`
}

// Field is one entry of the detail form.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// Section groups detail form fields.
type Section struct {
	Name    string  `json:"name"`
	Columns int     `json:"columns,omitempty"`
	Fields  []Field `json:"fields"`
	// VisibleWhen names the predicate gating the section, if any.
	VisibleWhen string `json:"visible_when,omitempty"`
}

// Sort is the default table ordering.
type Sort struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// Resource is the complete admin resource descriptor.
type Resource struct {
	Slug           string     `json:"slug"`
	Label          string     `json:"label"`
	PluralLabel    string     `json:"plural_label"`
	Navigation     Navigation `json:"navigation"`
	Cluster        string     `json:"cluster,omitempty"`
	ScopedToTenant bool       `json:"scoped_to_tenant"`
	Pages          []Page     `json:"pages"`
	Columns        []Column   `json:"columns"`
	DefaultSort    Sort       `json:"default_sort"`
	BulkActions    []string   `json:"bulk_actions"`
	Filters        []Filter   `json:"filters"`
	Form           []Section  `json:"form"`
}

// Build assembles the resource descriptor.
func Build(cfg Config, tax Taxonomy) Resource {
	labels := cfg.Labels.withDefaults()
	datetimeFormat := display.Layout(firstNonEmpty(cfg.DateTimeFormat, display.DefaultDateTimeFormat))
	dateFormat := display.Layout(firstNonEmpty(cfg.DateFormat, display.DefaultDateFormat))
	tax = tax.withDefaults()

	return Resource{
		Slug:        firstNonEmpty(cfg.Slug, DefaultSlug),
		Label:       labels.Log,
		PluralLabel: labels.Logs,
		Navigation: Navigation{
			Label: labels.Navigation,
			Icon:  firstNonEmpty(cfg.NavigationIcon, DefaultNavigationIcon),
			Group: firstNonEmpty(cfg.NavigationGroup, DefaultNavigationGroup),
			Sort:  cfg.NavigationSort,
		},
		Cluster:        strings.TrimSpace(cfg.Cluster),
		ScopedToTenant: !cfg.Unscoped,
		Pages: []Page{
			{Name: "index", Route: "/"},
			{Name: "view", Route: "/{record}"},
		},
		Columns: []Column{
			{Name: "log_name", Label: labels.Type, Badge: true, Colors: tax.Colors, Sortable: true},
			{Name: "event", Label: labels.Event, Sortable: true},
			{Name: "description", Label: labels.Description, Toggleable: true, HiddenByDefault: true, Wrap: true},
			{Name: "subject_type", Label: labels.Subject},
			{Name: "causer.name", Label: labels.User},
			{Name: "created_at", Label: labels.LoggedAt, Sortable: true, Format: datetimeFormat, Timezone: cfg.Timezone},
		},
		DefaultSort: Sort{Column: "created_at", Direction: "desc"},
		BulkActions: []string{},
		Filters: []Filter{
			{Name: FilterLogName, Kind: FilterSelect, Label: labels.Type, Field: "log_name", Options: tax.LogNames},
			{Name: FilterSubjectType, Kind: FilterSelect, Label: labels.SubjectType, Field: "subject_type", Options: tax.SubjectTypes},
			{Name: FilterOld, Kind: FilterText, Label: labels.Old, Field: "properties->old", Hint: labels.PropertiesHint},
			{Name: FilterNew, Kind: FilterText, Label: labels.New, Field: "properties->attributes", Hint: labels.PropertiesHint},
			{Name: FilterLoggedAt, Kind: FilterDate, Label: labels.LoggedAt, Field: "created_at", DisplayFormat: dateFormat},
		},
		Form: []Section{
			{Name: "details", Columns: 2, Fields: []Field{
				{Name: "causer_id", Label: labels.User, Kind: "text"},
				{Name: "subject_type", Label: labels.Subject, Kind: "text"},
				{Name: "description", Label: labels.Description, Kind: "textarea"},
			}},
			{Name: "summary", Fields: []Field{
				{Name: "log_name", Label: labels.Type, Kind: "entry"},
				{Name: "event", Label: labels.Event, Kind: "entry"},
				{Name: "created_at", Label: labels.LoggedAt, Kind: "entry"},
			}},
			{Name: "properties", Columns: 2, VisibleWhen: "has_properties", Fields: []Field{
				{Name: display.PanelProperties, Label: labels.Properties, Kind: "key_value"},
				{Name: display.PanelOld, Label: labels.Old, Kind: "key_value"},
				{Name: display.PanelAttributes, Label: labels.New, Kind: "key_value"},
			}},
		},
	}
}

// Filter returns the filter named name.
func (r Resource) Filter(name string) (Filter, bool) {
	for _, filter := range r.Filters {
		if filter.Name == name {
			return filter, true
		}
	}
	return Filter{}, false
}

func (t Taxonomy) withDefaults() Taxonomy {
	if t.LogNames == nil {
		t.LogNames = taxonomy.NewOptions()
	}
	if t.Colors == nil {
		t.Colors = taxonomy.NewOptions()
	}
	if t.SubjectTypes == nil {
		t.SubjectTypes = taxonomy.NewOptions()
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
