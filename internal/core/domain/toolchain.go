package domain

import (
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Compiler families recognized by the resolver and the flag projector.
const (
	CompilerGCC           = "gcc"
	CompilerClang         = "clang"
	CompilerAppleClang    = "apple-clang"
	CompilerVisualStudio  = "Visual Studio"
	compilerMSVCShorthand = "msvc"
)

// ArchX86_64 is the only architecture with microarchitecture tuning.
const ArchX86_64 = "x86_64"

// Standard library variants of GCC and Clang.
const (
	LibStdCxx   = "libstdc++"
	LibStdCxx11 = "libstdc++11"
	LibCxx      = "libc++"
)

// BuildTypeRelease is the build type published by the CI matrix.
const BuildTypeRelease = "Release"

// Toolchain describes the host build environment. It is never mutated by the resolver.
type Toolchain struct {
	Arch              string `yaml:"arch" json:"arch"`
	OS                string `yaml:"os" json:"os"`
	Compiler          string `yaml:"compiler" json:"compiler"`
	CompilerVersion   string `yaml:"compiler.version" json:"compiler.version,omitempty"`
	Libcxx            string `yaml:"compiler.libcxx" json:"compiler.libcxx,omitempty"`
	Runtime           string `yaml:"compiler.runtime" json:"compiler.runtime,omitempty"`
	BuildType         string `yaml:"build_type" json:"build_type,omitempty"`
	Microarchitecture string `yaml:"microarchitecture" json:"microarchitecture,omitempty"`
}

// Validate checks the fields every resolution relies on.
func (t Toolchain) Validate() error {
	if t.Arch == "" {
		return zerr.With(zerr.Wrap(ErrInvalidToolchain, "missing setting"), "setting", "arch")
	}
	if t.Compiler == "" {
		return zerr.With(zerr.Wrap(ErrInvalidToolchain, "missing setting"), "setting", "compiler")
	}
	return nil
}

// IsVisualStudio reports whether the compiler belongs to the Visual Studio family.
func (t Toolchain) IsVisualStudio() bool {
	return t.Compiler == CompilerVisualStudio || strings.EqualFold(t.Compiler, compilerMSVCShorthand)
}

// IsGNULike reports whether the compiler is GCC or Clang.
func (t Toolchain) IsGNULike() bool {
	return t.Compiler == CompilerGCC || t.Compiler == CompilerClang
}

// HasStaticRuntime reports whether the Visual Studio runtime is linked statically.
func (t Toolchain) HasStaticRuntime() bool {
	return t.Runtime == "MT" || t.Runtime == "MTd"
}

// ParsedVersion parses the compiler version. Short forms such as "7" or
// "4.9" are accepted and padded to a full version.
func (t Toolchain) ParsedVersion() (*semver.Version, bool) {
	if t.CompilerVersion == "" {
		return nil, false
	}
	v, err := semver.NewVersion(t.CompilerVersion)
	if err != nil {
		return nil, false
	}
	return v, true
}

// IsX86_64 reports whether the target architecture supports microarchitecture tuning.
func (t Toolchain) IsX86_64() bool {
	return t.Arch == ArchX86_64
}

// Settings returns the toolchain as the settings half of a package identity.
// Empty fields are omitted.
func (t Toolchain) Settings() map[string]string {
	settings := make(map[string]string, 7)
	put := func(key, value string) {
		if value != "" {
			settings[key] = value
		}
	}
	put("arch", t.Arch)
	put("os", t.OS)
	put("compiler", t.Compiler)
	put("compiler.version", t.CompilerVersion)
	put("compiler.libcxx", t.Libcxx)
	put("compiler.runtime", t.Runtime)
	put("build_type", t.BuildType)
	return settings
}

// WithSetting returns a copy of the toolchain with one setting replaced.
// It reports false when key is not a known setting.
func (t Toolchain) WithSetting(key, value string) (Toolchain, bool) {
	switch key {
	case "arch":
		t.Arch = value
	case "os":
		t.OS = value
	case "compiler":
		t.Compiler = value
	case "compiler.version":
		t.CompilerVersion = value
	case "compiler.libcxx":
		t.Libcxx = value
	case "compiler.runtime":
		t.Runtime = value
	case "build_type":
		t.BuildType = value
	case "microarchitecture":
		t.Microarchitecture = value
	default:
		return t, false
	}
	return t, true
}

// WithSettings applies key=value settings in sorted key order.
// An unknown key fails with ErrInvalidToolchain.
func (t Toolchain) WithSettings(settings map[string]string) (Toolchain, error) {
	for _, key := range slices.Sorted(maps.Keys(settings)) {
		next, ok := t.WithSetting(key, settings[key])
		if !ok {
			return Toolchain{}, zerr.With(zerr.Wrap(ErrInvalidToolchain, "unknown setting"), "setting", key)
		}
		t = next
	}
	return t, nil
}
