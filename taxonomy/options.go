package taxonomy

import (
	"bytes"
	"encoding/json"
)

// Options is an insertion ordered string mapping backing select inputs.
// Setting an existing key replaces its value and keeps its position.
type Options struct {
	keys   []string
	values map[string]string
}

// NewOptions returns an empty mapping.
func NewOptions() *Options {
	return &Options{values: map[string]string{}}
}

// Set stores value under key.
func (o *Options) Set(key, value string) {
	if o.values == nil {
		o.values = map[string]string{}
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key if present.
func (o *Options) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, existing := range o.keys {
		if existing == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under key.
func (o *Options) Get(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	value, ok := o.values[key]
	return value, ok
}

// Has reports whether key is present.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// KeyFor returns the first key, in order, whose value equals value.
func (o *Options) KeyFor(value string) (string, bool) {
	if o == nil {
		return "", false
	}
	for _, key := range o.keys {
		if o.values[key] == value {
			return key, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each visits every entry in order until fn returns false.
func (o *Options) Each(fn func(key, value string) bool) {
	if o == nil {
		return
	}
	for _, key := range o.keys {
		if !fn(key, o.values[key]) {
			return
		}
	}
}

// Map returns an unordered copy.
func (o *Options) Map() map[string]string {
	out := make(map[string]string, o.Len())
	o.Each(func(key, value string) bool {
		out[key] = value
		return true
	})
	return out
}

// Clone returns an independent copy.
func (o *Options) Clone() *Options {
	out := NewOptions()
	o.Each(func(key, value string) bool {
		out.Set(key, value)
		return true
	})
	return out
}

// MarshalJSON encodes the mapping as a JSON object preserving order.
func (o *Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	first := true
	o.Each(func(key, value string) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var raw []byte
		if raw, err = json.Marshal(key); err != nil {
			return false
		}
		buf.Write(raw)
		buf.WriteByte(':')
		if raw, err = json.Marshal(value); err != nil {
			return false
		}
		buf.Write(raw)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
