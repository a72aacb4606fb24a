package activity

import (
	"sync"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-masker"
)

var defaultMaskerOnce sync.Once

// DefaultMasker returns the shared masker with the default denylist used for
// activity properties.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerDefaultMaskFields(masker.Default)
	})
	return masker.Default
}

// SanitizeProperties masks sensitive values nested anywhere in props. When
// masking fails the payload is dropped rather than shown unmasked.
func SanitizeProperties(mask *masker.Masker, props types.Properties) types.Properties {
	if props.Len() == 0 {
		return props
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		return types.Properties{}
	}

	masked, err := mask.Mask(map[string]any(props.Clone()))
	if err != nil {
		return types.Properties{}
	}
	switch masked := masked.(type) {
	case map[string]any:
		return types.Properties(masked)
	case types.Properties:
		return masked
	default:
		return types.Properties{}
	}
}

// SanitizeEntry masks the properties of a single entry.
func SanitizeEntry(mask *masker.Masker, entry types.ActivityEntry) types.ActivityEntry {
	entry.Properties = SanitizeProperties(mask, entry.Properties)
	return entry
}

// SanitizeEntries masks the properties of every entry in the slice.
func SanitizeEntries(mask *masker.Masker, entries []types.ActivityEntry) []types.ActivityEntry {
	if len(entries) == 0 {
		return entries
	}
	out := make([]types.ActivityEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, SanitizeEntry(mask, entry))
	}
	return out
}

func registerDefaultMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	for _, field := range []string{"password", "Password", "password_confirmation", "secret", "Secret", "token", "Token", "api_key"} {
		mask.RegisterMaskField(field, "filled4")
	}
}
