package flags_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/config"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/flags"
	"go.trai.ch/recipe/internal/engine/resolver"
)

func project(t *testing.T, overrides map[string]string, tc domain.Toolchain, base domain.BuildFlags) domain.BuildFlags {
	t.Helper()
	recipe, err := config.Builtin()
	require.NoError(t, err)
	res, err := resolver.New().Resolve(recipe.Schema, overrides, tc)
	require.NoError(t, err)
	return flags.Project(recipe, res.Options, tc, base)
}

func value(f domain.BuildFlags, name string) string {
	v, _ := f.Get(name)
	return v
}

func gcc(version string) domain.Toolchain {
	return domain.Toolchain{Arch: "x86_64", OS: "Linux", Compiler: "gcc", CompilerVersion: version, Libcxx: "libstdc++11"}
}

func TestProject_CMakeArgs_Golden(t *testing.T) {
	tests := []struct {
		goldenName string
		overrides  map[string]string
		tc         domain.Toolchain
	}{
		{
			goldenName: "gcc7_linux_defaults",
			tc:         gcc("7"),
		},
		{
			goldenName: "vs15_keoken",
			overrides:  map[string]string{"keoken": "true"},
			tc:         domain.Toolchain{Arch: "x86_64", OS: "Windows", Compiler: "Visual Studio", CompilerVersion: "15", Runtime: "MD"},
		},
		{
			goldenName: "clang_armv8_btc_tests",
			overrides:  map[string]string{"currency": "BTC", "keoken": "true", "with_tests": "true"},
			tc:         domain.Toolchain{Arch: "armv8", OS: "Linux", Compiler: "clang", CompilerVersion: "6.0", Libcxx: "libc++"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.goldenName, func(t *testing.T) {
			f := project(t, tt.overrides, tt.tc, domain.BuildFlags{})
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(strings.Join(f.CMakeArgs(), "\n")+"\n"))
		})
	}
}

func TestProject_NotUseCPP11ABI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tc       domain.Toolchain
		expected string
		emitted  bool
	}{
		{"gcc 7 uses the new ABI", gcc("7"), "OFF", true},
		{"gcc 5.4 uses the new ABI", gcc("5.4"), "OFF", true},
		{"gcc 4 keeps the old ABI", gcc("4"), "ON", true},
		{"gcc 4.9 keeps the old ABI", gcc("4.9"), "ON", true},
		{"gcc without version", gcc(""), "OFF", true},
		{
			"clang with libstdc++",
			domain.Toolchain{Arch: "x86_64", Compiler: "clang", CompilerVersion: "6.0", Libcxx: "libstdc++"},
			"OFF", true,
		},
		{
			"clang with libc++",
			domain.Toolchain{Arch: "x86_64", Compiler: "clang", CompilerVersion: "6.0", Libcxx: "libc++"},
			"ON", true,
		},
		{
			"apple-clang",
			domain.Toolchain{Arch: "x86_64", Compiler: "apple-clang", CompilerVersion: "10.0", Libcxx: "libc++"},
			"", false,
		},
		{
			"Visual Studio",
			domain.Toolchain{Arch: "x86_64", Compiler: "Visual Studio", CompilerVersion: "15"},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := project(t, map[string]string{"currency": "BCH"}, tt.tc, domain.BuildFlags{})
			v, ok := f.Get(flags.DefNotUseCPP11ABI)
			assert.Equal(t, tt.emitted, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestProject_AppendsToBaseFlags(t *testing.T) {
	t.Parallel()

	var base domain.BuildFlags
	base.Set(flags.DefCXXFlags, "-O2")
	base.Set(flags.DefCFlags, "-O1")

	f := project(t, map[string]string{"microarchitecture": "haswell"}, gcc("7"), base)

	assert.Equal(t, "-O2 -Wno-deprecated-declarations -march=haswell", value(f, flags.DefCXXFlags))
	assert.Equal(t, "-O1 -march=haswell", value(f, flags.DefCFlags))
	assert.Equal(t, "haswell", value(f, flags.DefMicroarchitecture))

	// Base is left untouched.
	assert.Equal(t, "-O2", value(base, flags.DefCXXFlags))
	assert.Equal(t, 2, base.Len())
}

func TestProject_NoMicroarchitectureWhenAbsent(t *testing.T) {
	t.Parallel()

	tc := gcc("7")
	tc.Arch = "armv8"
	f := project(t, map[string]string{"microarchitecture": "haswell"}, tc, domain.BuildFlags{})

	_, ok := f.Get(flags.DefMicroarchitecture)
	assert.False(t, ok)
	_, ok = f.Get(flags.DefCFlags)
	assert.False(t, ok)
	assert.NotContains(t, value(f, flags.DefCXXFlags), "-march")
}

func TestProject_KeokenOnlyForBCH(t *testing.T) {
	t.Parallel()

	bch := project(t, map[string]string{"keoken": "true"}, gcc("7"), domain.BuildFlags{})
	assert.Equal(t, "ON", value(bch, flags.DefWithKeoken))

	// Even an unresolved record with keoken on projects OFF for another currency.
	opts := domain.NewOptions(map[string]string{"currency": "BTC", "keoken": "true"})
	btc := flags.Project(nil, opts, gcc("7"), domain.BuildFlags{})
	assert.Equal(t, "OFF", value(btc, flags.DefWithKeoken))
	_, ok := btc.Get(flags.DefProjectVersion)
	assert.False(t, ok)
}

func TestProject_VerboseAndTests(t *testing.T) {
	t.Parallel()

	f := project(t, map[string]string{"verbose": "yes", "with_tests": "1", "with_tools": "on"}, gcc("7"), domain.BuildFlags{})
	assert.Equal(t, "ON", value(f, flags.DefVerboseMakefile))
	assert.Equal(t, "ON", value(f, flags.DefWithTests))
	assert.Equal(t, "ON", value(f, flags.DefWithTestsNew))
	assert.Equal(t, "ON", value(f, flags.DefWithTools))
}

func TestProject_Deterministic(t *testing.T) {
	t.Parallel()

	first := project(t, map[string]string{"currency": "LTC"}, gcc("7"), domain.BuildFlags{})
	for range 5 {
		again := project(t, map[string]string{"currency": "LTC"}, gcc("7"), domain.BuildFlags{})
		assert.Equal(t, first.CMakeArgs(), again.CMakeArgs())
	}
}
