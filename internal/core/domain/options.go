package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Options is an immutable record of option values.
// An option that is absent does not apply; it is distinct from an option set to false.
type Options struct {
	values map[string]string
}

// NewOptions creates a record from the given values. The map is copied.
func NewOptions(values map[string]string) Options {
	return Options{values: maps.Clone(values)}
}

// Get returns the value of the named option and whether it is present.
func (o Options) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Value returns the value of the named option, or "" when it is absent.
func (o Options) Value(name string) string {
	return o.values[name]
}

// Has reports whether the named option is present.
func (o Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Enabled reports whether the named option is present and true.
func (o Options) Enabled(name string) bool {
	v, ok := o.values[name]
	if !ok {
		return false
	}
	b, _ := ParseBool(v)
	return b
}

// With returns a copy of the record with the named option set to value.
func (o Options) With(name, value string) Options {
	next := make(map[string]string, len(o.values)+1)
	maps.Copy(next, o.values)
	next[name] = value
	return Options{values: next}
}

// Without returns a copy of the record with the named options removed.
func (o Options) Without(names ...string) Options {
	next := maps.Clone(o.values)
	if next == nil {
		next = map[string]string{}
	}
	for _, name := range names {
		delete(next, name)
	}
	return Options{values: next}
}

// Names returns the present option names in sorted order.
func (o Options) Names() []string {
	return slices.Sorted(maps.Keys(o.values))
}

// Len returns the number of present options.
func (o Options) Len() int {
	return len(o.values)
}

// Map returns a copy of the record as a plain map.
func (o Options) Map() map[string]string {
	out := maps.Clone(o.values)
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// Equal reports whether both records hold the same options with the same values.
func (o Options) Equal(other Options) bool {
	return maps.Equal(o.values, other.values)
}

// MarshalJSON encodes the record as a JSON object.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

// MarshalYAML encodes the record as a YAML mapping.
func (o Options) MarshalYAML() (any, error) {
	return o.Map(), nil
}
