package display

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder is rendered for any missing value.
const Placeholder = "-"

// UCWords upper-cases the first character of every whitespace separated word
// and leaves the rest untouched.
func UCWords(value string) string {
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	atWordStart := true
	for _, r := range value {
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

// Row is one key/value line of a details panel.
type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func rowsFrom(values map[string]any) []Row {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, Row{Key: key, Value: stringify(values[key])})
	}
	return rows
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case bool, int, int32, int64, float32, float64, json.Number:
		return fmt.Sprint(typed)
	default:
		raw, err := json.Marshal(typed)
		if err != nil || !utf8.Valid(raw) {
			return fmt.Sprint(typed)
		}
		return string(raw)
	}
}
