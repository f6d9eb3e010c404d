package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Wildcard replaces values that do not affect binary compatibility.
const Wildcard = "ANY"

// IdentityOptions lists the options that never change the produced binary.
var IdentityOptions = []string{OptWithTests, OptWithTools, OptVerbose, OptFixMarch}

// IdentityKey is the reduced view of a build used to decide whether two
// builds can share a prebuilt binary.
type IdentityKey struct {
	Options  map[string]string `json:"options" yaml:"options"`
	Settings map[string]string `json:"settings" yaml:"settings"`
}

// Normalize replaces every non-ABI value with the wildcard.
// It never mutates the receiver and is idempotent.
func (k IdentityKey) Normalize() IdentityKey {
	out := IdentityKey{
		Options:  maps.Clone(k.Options),
		Settings: maps.Clone(k.Settings),
	}
	if out.Options == nil {
		out.Options = map[string]string{}
	}
	if out.Settings == nil {
		out.Settings = map[string]string{}
	}

	for _, name := range IdentityOptions {
		if _, ok := out.Options[name]; ok {
			out.Options[name] = Wildcard
		}
	}

	compiler := out.Settings["compiler"]
	if compiler == CompilerGCC || compiler == CompilerClang {
		switch out.Settings["compiler.libcxx"] {
		case LibStdCxx, LibStdCxx11:
			out.Settings["compiler.libcxx"] = Wildcard
		}
	}
	return out
}

// Equal reports whether both keys hold the same entries.
func (k IdentityKey) Equal(other IdentityKey) bool {
	return maps.Equal(k.Options, other.Options) && maps.Equal(k.Settings, other.Settings)
}

// ID returns a stable hash of the key.
func (k IdentityKey) ID() string {
	hasher := xxhash.New()

	writeSection := func(entries map[string]string) {
		for _, name := range slices.Sorted(maps.Keys(entries)) {
			_, _ = hasher.WriteString(name)
			_, _ = hasher.Write([]byte{'='})
			_, _ = hasher.WriteString(entries[name])
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	writeSection(k.Options)
	writeSection(k.Settings)

	return fmt.Sprintf("%016x", hasher.Sum64())
}
