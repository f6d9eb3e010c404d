package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/config"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/resolver"
)

func builtinSchema(t *testing.T) *domain.Schema {
	t.Helper()
	recipe, err := config.Builtin()
	require.NoError(t, err)
	return recipe.Schema
}

func linuxGCC(version string) domain.Toolchain {
	return domain.Toolchain{
		Arch:            "x86_64",
		OS:              "Linux",
		Compiler:        "gcc",
		CompilerVersion: version,
		Libcxx:          "libstdc++11",
		BuildType:       "Release",
	}
}

func resolve(t *testing.T, overrides map[string]string, tc domain.Toolchain) domain.Resolution {
	t.Helper()
	res, err := resolver.New().Resolve(builtinSchema(t), overrides, tc)
	require.NoError(t, err)
	return res
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	// fix_march is dropped: no microarchitecture was requested.
	res := resolve(t, nil, linuxGCC("7"))

	assert.Equal(t, map[string]string{
		"shared":            "false",
		"fPIC":              "true",
		"with_consensus":    "true",
		"with_tests":        "false",
		"with_tools":        "false",
		"currency":          "BCH",
		"microarchitecture": "x86-64",
		"verbose":           "false",
		"keoken":            "false",
	}, res.Options.Map())
	assert.Equal(t, map[string]string{
		"currency":          "BCH",
		"keoken":            "false",
		"microarchitecture": "x86-64",
	}, res.Propagated.Map())
	assert.Equal(t, []domain.Notice{
		domain.InfoNotice("microarchitecture not specified, using x86-64"),
		domain.InfoNotice("Compiling for currency: BCH"),
	}, res.Notices)
}

func TestResolve_KeokenRemovedForOtherCurrencies(t *testing.T) {
	t.Parallel()

	for _, currency := range []string{"BTC", "LTC"} {
		for _, keoken := range []string{"true", "false"} {
			t.Run(currency+"/"+keoken, func(t *testing.T) {
				t.Parallel()
				res := resolve(t, map[string]string{"currency": currency, "keoken": keoken}, linuxGCC("7"))

				assert.False(t, res.Options.Has("keoken"))
				assert.False(t, res.Propagated.Has("keoken"))
				assert.Equal(t, currency, res.Options.Value("currency"))

				warned := false
				for _, n := range res.Notices {
					if n.Level == domain.NoticeWarn {
						warned = true
					}
				}
				assert.Equal(t, keoken == "true", warned)
			})
		}
	}
}

func TestResolve_KeokenKeptForBCH(t *testing.T) {
	t.Parallel()

	res := resolve(t, map[string]string{"keoken": "True"}, linuxGCC("7"))
	assert.Equal(t, "true", res.Options.Value("keoken"))
	assert.Equal(t, "true", res.Propagated.Value("keoken"))
}

func TestResolve_LTCScenario(t *testing.T) {
	t.Parallel()

	res := resolve(t, map[string]string{"currency": "LTC", "keoken": "true"}, linuxGCC("7"))
	assert.False(t, res.Options.Has("keoken"))
	assert.Equal(t, "LTC", res.Options.Value("currency"))
	assert.Contains(t, res.Notices, domain.WarnNotice("Keoken is only enabled for BCH, for the moment. Removing Keoken support"))
}

func TestResolve_NonX86RemovesMicroarchitecture(t *testing.T) {
	t.Parallel()

	for _, arch := range []string{"arm64", "armv8", "x86", "ppc64le"} {
		t.Run(arch, func(t *testing.T) {
			t.Parallel()
			tc := linuxGCC("7")
			tc.Arch = arch

			res := resolve(t, map[string]string{"microarchitecture": "haswell", "fix_march": "true"}, tc)

			assert.False(t, res.Options.Has("microarchitecture"))
			assert.False(t, res.Options.Has("fix_march"))
			assert.False(t, res.Propagated.Has("microarchitecture"))
			assert.Contains(t, res.Notices, domain.InfoNotice(
				"microarchitecture is disabled for architectures other than x86_64, your architecture: "+arch,
			))
		})
	}
}

func TestResolve_VisualStudio(t *testing.T) {
	t.Parallel()

	vs := domain.Toolchain{Arch: "x86_64", OS: "Windows", Compiler: "Visual Studio", CompilerVersion: "15", Runtime: "MD"}

	t.Run("fPIC absent", func(t *testing.T) {
		t.Parallel()
		res := resolve(t, map[string]string{"fPIC": "true"}, vs)
		assert.False(t, res.Options.Has("fPIC"))
		assert.True(t, res.Options.Has("shared"))
	})

	t.Run("msvc shorthand", func(t *testing.T) {
		t.Parallel()
		tc := vs
		tc.Compiler = "msvc"
		res := resolve(t, nil, tc)
		assert.False(t, res.Options.Has("fPIC"))
	})

	t.Run("shared dropped with static runtime", func(t *testing.T) {
		t.Parallel()
		tc := vs
		tc.Runtime = "MTd"
		res := resolve(t, map[string]string{"shared": "true"}, tc)
		assert.False(t, res.Options.Has("shared"))
	})

	t.Run("shared kept with dynamic runtime", func(t *testing.T) {
		t.Parallel()
		res := resolve(t, map[string]string{"shared": "true"}, vs)
		assert.Equal(t, "true", res.Options.Value("shared"))
	})
}

func TestResolve_FixMarch(t *testing.T) {
	t.Parallel()

	t.Run("removed when no microarchitecture was chosen", func(t *testing.T) {
		t.Parallel()
		res := resolve(t, map[string]string{"fix_march": "true"}, linuxGCC("7"))
		assert.False(t, res.Options.Has("fix_march"))
		assert.Equal(t, "x86-64", res.Options.Value("microarchitecture"))
	})

	t.Run("kept with an explicit microarchitecture", func(t *testing.T) {
		t.Parallel()
		res := resolve(t, map[string]string{"fix_march": "true", "microarchitecture": "skylake"}, linuxGCC("7"))
		assert.Equal(t, "true", res.Options.Value("fix_march"))
		assert.Equal(t, "skylake", res.Options.Value("microarchitecture"))
	})
}

func TestResolve_DetectedMicroarchitecture(t *testing.T) {
	t.Parallel()

	tc := linuxGCC("7")
	tc.Microarchitecture = "haswell"
	res := resolve(t, nil, tc)
	assert.Equal(t, "haswell", res.Options.Value("microarchitecture"))
	assert.Equal(t, "haswell", res.Propagated.Value("microarchitecture"))
}

func TestResolve_InvalidOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]string
		specific  error
	}{
		{"unknown option", map[string]string{"with_gui": "true"}, domain.ErrUnknownOption},
		{"enum out of domain", map[string]string{"currency": "DOGE"}, domain.ErrOptionOutOfDomain},
		{"bool out of domain", map[string]string{"shared": "maybe"}, domain.ErrOptionOutOfDomain},
		{"empty free value", map[string]string{"microarchitecture": ""}, domain.ErrOptionOutOfDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := resolver.New().Resolve(builtinSchema(t), tt.overrides, linuxGCC("7"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidOption))
			assert.True(t, errors.Is(err, tt.specific))
		})
	}
}

func TestResolve_InputNotMutated(t *testing.T) {
	t.Parallel()

	overrides := map[string]string{"currency": "BTC", "keoken": "true"}
	tc := linuxGCC("7")
	resolve(t, overrides, tc)

	assert.Equal(t, map[string]string{"currency": "BTC", "keoken": "true"}, overrides)
	assert.Equal(t, linuxGCC("7"), tc)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	overrides := map[string]string{"currency": "BTC", "with_tests": "1", "verbose": "on"}
	first := resolve(t, overrides, linuxGCC("7"))
	for range 10 {
		again := resolve(t, overrides, linuxGCC("7"))
		assert.True(t, first.Options.Equal(again.Options))
		assert.Equal(t, first.Notices, again.Notices)
	}
}

func TestNewWithStages_RunsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	stage := func(name string) resolver.Stage {
		return resolver.Stage{Name: name, Apply: func(opts domain.Options, _ domain.Toolchain) (domain.Options, []domain.Notice) {
			order = append(order, name)
			return opts, nil
		}}
	}

	r := resolver.NewWithStages(stage("first"), stage("second"))
	_, err := r.Resolve(builtinSchema(t), nil, linuxGCC("7"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}
