package types

const (
	// PropertyOld holds the attribute values before a change.
	PropertyOld = "old"
	// PropertyAttributes holds the attribute values after a change.
	PropertyAttributes = "attributes"
)

// Properties is the loosely typed payload stored alongside an activity entry.
// The old and attributes keys are reserved; every other key is passed through.
type Properties map[string]any

// Len returns the number of top level keys.
func (p Properties) Len() int {
	return len(p)
}

// Old returns the nested "old" mapping, or nil when missing or not a mapping.
func (p Properties) Old() map[string]any {
	return p.nested(PropertyOld)
}

// Attributes returns the nested "attributes" mapping, or nil when missing or
// not a mapping.
func (p Properties) Attributes() map[string]any {
	return p.nested(PropertyAttributes)
}

// Extra returns every key except the reserved ones. The result is nil when
// nothing remains.
func (p Properties) Extra() map[string]any {
	var out map[string]any
	for key, value := range p {
		if key == PropertyOld || key == PropertyAttributes {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(p))
		}
		out[key] = value
	}
	return out
}

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

func (p Properties) nested(key string) map[string]any {
	raw, ok := p[key]
	if !ok || raw == nil {
		return nil
	}
	switch value := raw.(type) {
	case map[string]any:
		if len(value) == 0 {
			return nil
		}
		return value
	case Properties:
		if len(value) == 0 {
			return nil
		}
		return map[string]any(value)
	case map[string]string:
		if len(value) == 0 {
			return nil
		}
		out := make(map[string]any, len(value))
		for k, v := range value {
			out[k] = v
		}
		return out
	default:
		return nil
	}
}
