package resource

// Labels holds every user facing string of the resource. Hosts translate by
// overriding fields; empty fields fall back to DefaultLabels.
type Labels struct {
	Log            string `json:"log"`
	Logs           string `json:"logs"`
	Navigation     string `json:"navigation"`
	Type           string `json:"type"`
	Event          string `json:"event"`
	Description    string `json:"description"`
	Subject        string `json:"subject"`
	SubjectType    string `json:"subject_type"`
	User           string `json:"user"`
	LoggedAt       string `json:"logged_at"`
	Properties     string `json:"properties"`
	Old            string `json:"old"`
	New            string `json:"new"`
	OldAttributes  string `json:"old_attributes"`
	NewAttributes  string `json:"new_attributes"`
	PropertiesHint string `json:"properties_hint"`
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Log:            "Activity Log",
		Logs:           "Activity Logs",
		Navigation:     "Activity Logs",
		Type:           "Type",
		Event:          "Event",
		Description:    "Description",
		Subject:        "Subject",
		SubjectType:    "Subject Type",
		User:           "User",
		LoggedAt:       "Logged At",
		Properties:     "Properties",
		Old:            "Old",
		New:            "New",
		OldAttributes:  "Old Attributes: ",
		NewAttributes:  "New Attributes: ",
		PropertiesHint: "Search the serialized values",
	}
}

func (l Labels) withDefaults() Labels {
	def := DefaultLabels()
	fill := func(value *string, fallback string) {
		if *value == "" {
			*value = fallback
		}
	}
	fill(&l.Log, def.Log)
	fill(&l.Logs, def.Logs)
	fill(&l.Navigation, def.Navigation)
	fill(&l.Type, def.Type)
	fill(&l.Event, def.Event)
	fill(&l.Description, def.Description)
	fill(&l.Subject, def.Subject)
	fill(&l.SubjectType, def.SubjectType)
	fill(&l.User, def.User)
	fill(&l.LoggedAt, def.LoggedAt)
	fill(&l.Properties, def.Properties)
	fill(&l.Old, def.Old)
	fill(&l.New, def.New)
	fill(&l.OldAttributes, def.OldAttributes)
	fill(&l.NewAttributes, def.NewAttributes)
	fill(&l.PropertiesHint, def.PropertiesHint)
	return l
}
