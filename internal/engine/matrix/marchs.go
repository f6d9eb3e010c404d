package matrix

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/recipe/internal/core/domain"
)

const baselineMarch = "x86-64"

var tunedMarchs = []string{baselineMarch, "haswell", "skylake"}

// minimumVersions lists the first compiler release that accepts a tuned
// microarchitecture, per compiler family.
var minimumVersions = map[string]map[string]*semver.Constraints{
	domain.CompilerGCC: {
		"haswell": mustConstraint(">= 4.9"),
		"skylake": mustConstraint(">= 6"),
	},
	domain.CompilerClang: {
		"haswell": mustConstraint(">= 3.6"),
		"skylake": mustConstraint(">= 3.9"),
	},
	domain.CompilerAppleClang: {
		"haswell": mustConstraint(">= 6"),
		"skylake": mustConstraint(">= 8"),
	},
	domain.CompilerVisualStudio: {
		"haswell": mustConstraint(">= 12"),
		"skylake": mustConstraint(">= 15"),
	},
}

// Supports reports whether the toolchain's compiler can target march.
// The baseline is always supported; tuned targets need a known compiler
// family and a parseable version.
func Supports(tc domain.Toolchain, march string) bool {
	if march == baselineMarch {
		return true
	}
	compiler := tc.Compiler
	if tc.IsVisualStudio() {
		compiler = domain.CompilerVisualStudio
	}
	constraint, ok := minimumVersions[compiler][march]
	if !ok {
		return false
	}
	v, ok := tc.ParsedVersion()
	if !ok {
		return false
	}
	return constraint.Check(v)
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}
