package domain

import (
	"encoding/json"
	"strings"
)

// On and Off are the tokens boolean build definitions are rendered with.
const (
	On  = "ON"
	Off = "OFF"
)

// OnOff renders a boolean as a build definition token.
func OnOff(b bool) string {
	if b {
		return On
	}
	return Off
}

// Definition is a single build-system definition.
type Definition struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// BuildFlags is an ordered set of build definitions.
// Setting an existing name keeps its original position.
type BuildFlags struct {
	defs []Definition
}

// Set assigns value to name.
func (f *BuildFlags) Set(name, value string) {
	for i := range f.defs {
		if f.defs[i].Name == name {
			f.defs[i].Value = value
			return
		}
	}
	f.defs = append(f.defs, Definition{Name: name, Value: value})
}

// SetBool assigns an ON/OFF token to name.
func (f *BuildFlags) SetBool(name string, b bool) {
	f.Set(name, OnOff(b))
}

// Append concatenates suffix onto the current value of name, creating it when missing.
func (f *BuildFlags) Append(name, suffix string) {
	current, _ := f.Get(name)
	f.Set(name, current+suffix)
}

// Get returns the value of name and whether it is defined.
func (f BuildFlags) Get(name string) (string, bool) {
	for _, d := range f.defs {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}

// Definitions returns the definitions in order.
func (f BuildFlags) Definitions() []Definition {
	out := make([]Definition, len(f.defs))
	copy(out, f.defs)
	return out
}

// Len returns the number of definitions.
func (f BuildFlags) Len() int {
	return len(f.defs)
}

// Clone returns an independent copy.
func (f BuildFlags) Clone() BuildFlags {
	return BuildFlags{defs: f.Definitions()}
}

// CMakeArgs renders the definitions as -DNAME=VALUE arguments.
func (f BuildFlags) CMakeArgs() []string {
	args := make([]string, len(f.defs))
	for i, d := range f.defs {
		args[i] = "-D" + d.Name + "=" + strings.TrimSpace(d.Value)
	}
	return args
}

// MarshalJSON encodes the definitions as an ordered JSON array.
func (f BuildFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Definitions())
}

// MarshalYAML encodes the definitions as an ordered YAML sequence.
func (f BuildFlags) MarshalYAML() (any, error) {
	return f.Definitions(), nil
}
