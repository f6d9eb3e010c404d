// Package flags projects resolved options and toolchain facts onto the
// definitions consumed by the native CMake build.
package flags

import (
	"go.trai.ch/recipe/internal/core/domain"
)

// Build definitions understood by the native build.
const (
	DefUseConan          = "USE_CONAN"
	DefNoConanAtAll      = "NO_CONAN_AT_ALL"
	DefVerboseMakefile   = "CMAKE_VERBOSE_MAKEFILE"
	DefEnableShared      = "ENABLE_SHARED"
	DefEnablePIC         = "ENABLE_POSITION_INDEPENDENT_CODE"
	DefWithConsensus     = "WITH_CONSENSUS"
	DefWithTests         = "WITH_TESTS"
	DefWithTestsNew      = "WITH_TESTS_NEW"
	DefWithTools         = "WITH_TOOLS"
	DefWithKeoken        = "WITH_KEOKEN"
	DefCurrency          = "CURRENCY"
	DefCXXFlags          = "CONAN_CXX_FLAGS"
	DefCFlags            = "CONAN_C_FLAGS"
	DefMicroarchitecture = "MICROARCHITECTURE"
	DefProjectVersion    = "BITPRIM_PROJECT_VERSION"
	DefNotUseCPP11ABI    = "NOT_USE_CPP11_ABI"
)

const (
	gnuDeprecationFlag  = " -Wno-deprecated-declarations"
	msvcBoostConfigFlag = " /DBOOST_CONFIG_SUPPRESS_OUTDATED_MESSAGE"

	// dualABIMajor is the first GCC major version shipping the C++11 ABI of libstdc++.
	dualABIMajor = 5
)

// Project maps the resolved options and the toolchain onto build definitions.
// base carries definitions supplied by the caller (e.g. CONAN_CXX_FLAGS from
// the environment); compiler flags are appended to it, never replaced.
func Project(
	recipe *domain.Recipe,
	opts domain.Options,
	tc domain.Toolchain,
	base domain.BuildFlags,
) domain.BuildFlags {
	out := base.Clone()

	out.SetBool(DefUseConan, true)
	out.SetBool(DefNoConanAtAll, false)
	out.SetBool(DefVerboseMakefile, opts.Enabled(domain.OptVerbose))

	out.SetBool(DefEnableShared, opts.Enabled(domain.OptShared))
	out.SetBool(DefEnablePIC, opts.Enabled(domain.OptFPIC))
	out.SetBool(DefWithConsensus, opts.Enabled(domain.OptWithConsensus))
	out.SetBool(DefWithTests, opts.Enabled(domain.OptWithTests))
	out.SetBool(DefWithTestsNew, opts.Enabled(domain.OptWithTests))
	out.SetBool(DefWithTools, opts.Enabled(domain.OptWithTools))
	out.SetBool(DefWithKeoken, keokenEnabled(opts))

	if currency, ok := opts.Get(domain.OptCurrency); ok {
		out.Set(DefCurrency, currency)
	}

	projectWarnings(&out, tc)

	if march, ok := opts.Get(domain.OptMicroarchitecture); ok {
		out.Set(DefMicroarchitecture, march)
		projectMarch(&out, tc, march)
	}

	if recipe != nil && recipe.Version != "" {
		out.Set(DefProjectVersion, recipe.Version)
	}

	if abi, ok := NotUseCPP11ABI(tc); ok {
		out.SetBool(DefNotUseCPP11ABI, abi)
	}

	return out
}

func keokenEnabled(opts domain.Options) bool {
	return opts.Value(domain.OptCurrency) == domain.CurrencyBCH && opts.Enabled(domain.OptKeoken)
}

// projectWarnings suppresses deprecation warnings for GNU-style compilers and
// the outdated Boost config message for Visual Studio.
func projectWarnings(out *domain.BuildFlags, tc domain.Toolchain) {
	if tc.IsVisualStudio() {
		out.Append(DefCXXFlags, msvcBoostConfigFlag)
		return
	}
	out.Append(DefCXXFlags, gnuDeprecationFlag)
}

// projectMarch passes the microarchitecture to GNU-style compilers.
// Visual Studio selects instruction sets through the CMake definition only.
func projectMarch(out *domain.BuildFlags, tc domain.Toolchain, march string) {
	if tc.IsVisualStudio() {
		return
	}
	out.Append(DefCXXFlags, " -march="+march)
	out.Append(DefCFlags, " -march="+march)
}

// NotUseCPP11ABI decides whether the build must stay on the pre-C++11 ABI of libstdc++.
// GCC uses the old ABI before major version 5. Clang follows the libstdc++
// variant: both spellings link against the dual-ABI library, libc++ does not.
// Other compilers are not affected and report false for ok.
func NotUseCPP11ABI(tc domain.Toolchain) (notUse, ok bool) {
	switch tc.Compiler {
	case domain.CompilerGCC:
		v, parsed := tc.ParsedVersion()
		if !parsed {
			return false, true
		}
		return v.Major() < dualABIMajor, true
	case domain.CompilerClang:
		switch tc.Libcxx {
		case domain.LibStdCxx, domain.LibStdCxx11:
			return false, true
		default:
			return true, true
		}
	default:
		return false, false
	}
}
