// Package identity reduces a resolved build to the key that decides binary
// interchangeability.
package identity

import (
	"go.trai.ch/recipe/internal/core/domain"
)

// Reduce projects the resolved options and toolchain settings onto a
// normalized identity key. Two builds that differ only in options listed in
// domain.IdentityOptions, or only in the libstdc++ spelling under GCC or
// Clang, reduce to equal keys.
func Reduce(opts domain.Options, tc domain.Toolchain) domain.IdentityKey {
	key := domain.IdentityKey{
		Options:  opts.Map(),
		Settings: tc.Settings(),
	}
	return key.Normalize()
}

// Equivalent reports whether two resolved builds can share a binary.
func Equivalent(a domain.Options, atc domain.Toolchain, b domain.Options, btc domain.Toolchain) bool {
	return Reduce(a, atc).Equal(Reduce(b, btc))
}
