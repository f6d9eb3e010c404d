package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/cas"
	"go.trai.ch/recipe/internal/adapters/config"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports/mocks"
	"go.trai.ch/recipe/internal/engine/matrix"
	"go.trai.ch/recipe/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	recipes  *mocks.MockRecipeLoader
	profiles *mocks.MockProfileLoader
	detector *mocks.MockToolchainDetector
	store    *mocks.MockPackageStore
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		recipes:  mocks.NewMockRecipeLoader(ctrl),
		profiles: mocks.NewMockProfileLoader(ctrl),
		detector: mocks.NewMockToolchainDetector(ctrl),
		store:    mocks.NewMockPackageStore(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	r := resolver.New()
	f.app = app.New(f.recipes, f.profiles, f.detector, f.store, f.executor, f.logger, r, matrix.NewPlanner(r))

	recipe, err := config.Builtin()
	require.NoError(t, err)
	f.recipes.EXPECT().Load(gomock.Any()).Return(recipe, nil).AnyTimes()
	return f
}

func gcc7() domain.Toolchain {
	return domain.Toolchain{
		Arch:              "x86_64",
		OS:                "Linux",
		Compiler:          "gcc",
		CompilerVersion:   "7",
		Libcxx:            "libstdc++11",
		BuildType:         "Release",
		Microarchitecture: "haswell",
	}
}

func TestApp_Evaluate_DetectedToolchain(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn("Keoken is only enabled for BCH, for the moment. Removing Keoken support").Times(1)

	ev, err := f.app.Evaluate(app.Request{
		Options: map[string]string{"currency": "LTC", "keoken": "true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "bitprim-blockchain/0.11.0@bitprim/testing", ev.Reference)
	assert.False(t, ev.Resolution.Options.Has("keoken"))
	assert.Equal(t, "haswell", ev.Resolution.Options.Value("microarchitecture"))
	assert.Equal(t, []string{"boost", "bitprim-database", "bitprim-consensus"}, ev.Dependencies.Names())
	assert.Equal(t, "LTC", ev.Dependencies.Propagated.Value("currency"))

	currency, _ := ev.Flags.Get("CURRENCY")
	assert.Equal(t, "LTC", currency)
	abi, _ := ev.Flags.Get("NOT_USE_CPP11_ABI")
	assert.Equal(t, "OFF", abi)
	keoken, _ := ev.Flags.Get("WITH_KEOKEN")
	assert.Equal(t, "OFF", keoken)

	assert.Equal(t, ev.Identity.ID(), ev.IdentityID)
	assert.Equal(t, "ANY", ev.Identity.Settings["compiler.libcxx"])
}

func TestApp_Evaluate_ProfileAndSettings(t *testing.T) {
	f := newFixture(t)

	f.profiles.EXPECT().Load("msvc.yaml").Return(domain.Toolchain{
		Arch:      "x86_64",
		OS:        "Windows",
		Compiler:  "Visual Studio",
		Runtime:   "MT",
		BuildType: "Release",
	}, nil)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	ev, err := f.app.Evaluate(app.Request{
		ProfilePath: "msvc.yaml",
		Options:     map[string]string{"shared": "true"},
		Settings:    map[string]string{"compiler.version": "15"},
	})
	require.NoError(t, err)

	assert.Equal(t, "15", ev.Toolchain.CompilerVersion)
	assert.False(t, ev.Resolution.Options.Has("fPIC"))
	assert.False(t, ev.Resolution.Options.Has("shared"))

	cxx, _ := ev.Flags.Get("CONAN_CXX_FLAGS")
	assert.Equal(t, " /DBOOST_CONFIG_SUPPRESS_OUTDATED_MESSAGE", cxx)
	_, ok := ev.Flags.Get("NOT_USE_CPP11_ABI")
	assert.False(t, ok)
}

func TestApp_Evaluate_BaseFlagsAreExtended(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	var base domain.BuildFlags
	base.Set("CONAN_CXX_FLAGS", "-O2")

	ev, err := f.app.Evaluate(app.Request{BaseFlags: base})
	require.NoError(t, err)

	cxx, _ := ev.Flags.Get("CONAN_CXX_FLAGS")
	assert.Equal(t, "-O2 -Wno-deprecated-declarations -march=haswell", cxx)
}

func TestApp_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      app.Request
		tc       domain.Toolchain
		expected error
	}{
		{
			name:     "Unknown Option",
			req:      app.Request{Options: map[string]string{"with_gui": "true"}},
			tc:       gcc7(),
			expected: domain.ErrInvalidOption,
		},
		{
			name:     "Out Of Domain",
			req:      app.Request{Options: map[string]string{"currency": "DOGE"}},
			tc:       gcc7(),
			expected: domain.ErrInvalidOption,
		},
		{
			name:     "Unknown Setting",
			req:      app.Request{Settings: map[string]string{"compiler.cppstd": "17"}},
			tc:       gcc7(),
			expected: domain.ErrInvalidToolchain,
		},
		{
			name:     "Missing Compiler",
			tc:       domain.Toolchain{Arch: "x86_64"},
			expected: domain.ErrInvalidToolchain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.detector.EXPECT().Detect().Return(tt.tc)

			_, err := f.app.Evaluate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)
		})
	}
}

func TestApp_Evaluate_RecipeLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mocks.NewMockRecipeLoader(ctrl)
	recipes.EXPECT().Load("broken.yaml").Return(nil, domain.ErrRecipeParseFailed)

	r := resolver.New()
	a := app.New(recipes, nil, nil, nil, nil, mocks.NewMockLogger(ctrl), r, matrix.NewPlanner(r))

	_, err := a.Evaluate(app.Request{RecipePath: "broken.yaml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeParseFailed))
}

func TestApp_Layout(t *testing.T) {
	f := newFixture(t)

	rules, err := f.app.Layout(app.Request{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPackageRules, rules)
}

func TestApp_Matrix(t *testing.T) {
	f := newFixture(t)

	clang := gcc7()
	clang.Compiler = "clang"
	clang.CompilerVersion = "6.0"
	f.profiles.EXPECT().Load("gcc7.yaml").Return(gcc7(), nil)
	f.profiles.EXPECT().Load("clang6.yaml").Return(clang, nil)

	entries, err := f.app.Matrix(context.Background(), app.MatrixRequest{
		Profiles: []string{"gcc7.yaml", "clang6.yaml"},
		Matrix:   matrix.Options{Currency: "BTC"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "gcc", entries[0].Toolchain.Compiler)
	assert.Equal(t, "clang", entries[1].Toolchain.Compiler)
	for _, e := range entries {
		assert.Equal(t, "BTC", e.Resolution.Options.Value("currency"))
		assert.Equal(t, "x86-64", e.Resolution.Options.Value("microarchitecture"))
	}
}

func TestApp_Build_SkipsKnownIdentity(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.store.EXPECT().Get("/work", "bitprim-blockchain/0.11.0@bitprim/testing", gomock.Any()).
		Return(&domain.PackageRecord{}, nil)

	result, err := f.app.Build(context.Background(), app.Request{}, app.BuildOptions{Root: "/work"})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestApp_Build_RunsCMake(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.app.WithClock(func() time.Time { return now })

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.store.EXPECT().Get("/work", gomock.Any(), gomock.Any()).Return(nil, nil)

	var invocations []domain.Invocation
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation) error {
			invocations = append(invocations, inv)
			return nil
		}).Times(3)

	var stored domain.PackageRecord
	f.store.EXPECT().Put("/work", gomock.Any()).
		DoAndReturn(func(_ string, record domain.PackageRecord) error {
			stored = record
			return nil
		})

	result, err := f.app.Build(context.Background(), app.Request{
		Options: map[string]string{"with_tests": "true"},
	}, app.BuildOptions{Root: "/work", SourceDir: "/src"})
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	require.Len(t, invocations, 3)
	configure := invocations[0]
	assert.Equal(t, "cmake", configure.Name)
	assert.Equal(t, []string{"-S", "/src", "-B", "/work/.recipe/build"}, configure.Args[:4])
	assert.Contains(t, configure.Args, "-DWITH_TESTS=ON")
	assert.Equal(t, "-DCMAKE_BUILD_TYPE=Release", configure.Args[len(configure.Args)-1])
	assert.Equal(t, []string{"--build", "/work/.recipe/build", "--config", "Release"}, invocations[1].Args)
	assert.Equal(t, "ctest", invocations[2].Name)
	assert.Equal(t, "/work/.recipe/build", invocations[2].Dir)

	assert.Equal(t, result.Evaluation.IdentityID, stored.IdentityID)
	assert.Equal(t, result.Evaluation.Reference, stored.Reference)
	assert.Equal(t, now, stored.Timestamp)
	assert.Equal(t, result.Evaluation.Flags.CMakeArgs(), stored.Flags)
}

func TestApp_Build_ForceIgnoresStore(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.app.Build(context.Background(), app.Request{}, app.BuildOptions{Force: true})
	require.NoError(t, err)
}

func TestApp_Build_ExecutionFailure(t *testing.T) {
	f := newFixture(t)

	f.detector.EXPECT().Detect().Return(gcc7())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errors.New("exit status 1"))

	_, err := f.app.Build(context.Background(), app.Request{}, app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBuildExecutionFailed.Error())
}

func TestApp_Build_IdentityIsScopedToReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	recipes := mocks.NewMockRecipeLoader(ctrl)
	detector := mocks.NewMockToolchainDetector(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	log := mocks.NewMockLogger(ctrl)
	r := resolver.New()
	a := app.New(recipes, mocks.NewMockProfileLoader(ctrl), detector, cas.NewStore(), executor, log, r, matrix.NewPlanner(r))

	first, err := config.Builtin()
	require.NoError(t, err)
	other, err := config.Builtin()
	require.NoError(t, err)
	other.Name = "some-other-lib"
	other.Version = "0.12.0"

	gomock.InOrder(
		recipes.EXPECT().Load("").Return(first, nil),
		recipes.EXPECT().Load("").Return(other, nil),
		recipes.EXPECT().Load("").Return(other, nil),
	)
	detector.EXPECT().Detect().Return(gcc7()).Times(3)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).Times(4)

	root := t.TempDir()
	opts := app.BuildOptions{Root: root}

	built, err := a.Build(context.Background(), app.Request{}, opts)
	require.NoError(t, err)
	assert.False(t, built.Skipped)

	again, err := a.Build(context.Background(), app.Request{}, opts)
	require.NoError(t, err)
	assert.Equal(t, built.Evaluation.IdentityID, again.Evaluation.IdentityID)
	assert.Equal(t, "some-other-lib/0.12.0@bitprim/testing", again.Evaluation.Reference)
	assert.False(t, again.Skipped)

	cached, err := a.Build(context.Background(), app.Request{}, opts)
	require.NoError(t, err)
	assert.True(t, cached.Skipped)
}
