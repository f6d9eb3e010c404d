// Package app implements the application layer for recipe.
package app

import (
	"context"
	"time"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/engine/deps"
	"go.trai.ch/recipe/internal/engine/flags"
	"go.trai.ch/recipe/internal/engine/identity"
	"go.trai.ch/recipe/internal/engine/matrix"
	"go.trai.ch/recipe/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	recipes  ports.RecipeLoader
	profiles ports.ProfileLoader
	detector ports.ToolchainDetector
	store    ports.PackageStore
	executor ports.Executor
	logger   ports.Logger
	resolver *resolver.Resolver
	planner  *matrix.Planner
	now      func() time.Time
}

// New creates a new App instance.
func New(
	recipes ports.RecipeLoader,
	profiles ports.ProfileLoader,
	detector ports.ToolchainDetector,
	store ports.PackageStore,
	executor ports.Executor,
	log ports.Logger,
	r *resolver.Resolver,
	planner *matrix.Planner,
) *App {
	return &App{
		recipes:  recipes,
		profiles: profiles,
		detector: detector,
		store:    store,
		executor: executor,
		logger:   log,
		resolver: r,
		planner:  planner,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to timestamp package records.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Request selects the recipe, the toolchain and the user overrides of a command.
type Request struct {
	// RecipePath is the recipe file. Empty means recipe.yaml or the built-in recipe.
	RecipePath string
	// ProfilePath is the toolchain profile. Empty means host detection.
	ProfilePath string
	// Options are the user option overrides.
	Options map[string]string
	// Settings override individual toolchain settings after the profile is applied.
	Settings map[string]string
	// BaseFlags are caller supplied build definitions, e.g. CONAN_CXX_FLAGS.
	BaseFlags domain.BuildFlags
}

// Evaluation is everything derived from a single resolved build.
type Evaluation struct {
	Recipe       *domain.Recipe        `json:"-" yaml:"-"`
	Reference    string                `json:"reference" yaml:"reference"`
	Toolchain    domain.Toolchain      `json:"toolchain" yaml:"toolchain"`
	Resolution   domain.Resolution     `json:"resolution" yaml:"resolution"`
	Dependencies domain.DependencySpec `json:"dependencies" yaml:"dependencies"`
	Flags        domain.BuildFlags     `json:"flags" yaml:"flags"`
	Identity     domain.IdentityKey    `json:"identity" yaml:"identity"`
	IdentityID   string                `json:"identity_id" yaml:"identity_id"`
}

// Evaluate loads the recipe and the toolchain, resolves the options and
// derives the dependencies, build flags and package identity.
// Resolution notices are reported through the logger.
func (a *App) Evaluate(req Request) (*Evaluation, error) {
	recipe, err := a.recipes.Load(req.RecipePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}

	tc, err := a.toolchain(req.ProfilePath, req.Settings)
	if err != nil {
		return nil, err
	}

	res, err := a.resolver.Resolve(recipe.Schema, req.Options, tc)
	if err != nil {
		return nil, err
	}
	a.report(res.Notices)

	dependencies, err := deps.Select(recipe, res)
	if err != nil {
		return nil, err
	}

	key := identity.Reduce(res.Options, tc)
	return &Evaluation{
		Recipe:       recipe,
		Reference:    recipe.Reference(),
		Toolchain:    tc,
		Resolution:   res,
		Dependencies: dependencies,
		Flags:        flags.Project(recipe, res.Options, tc, req.BaseFlags),
		Identity:     key,
		IdentityID:   key.ID(),
	}, nil
}

// Layout returns the packaging table of the selected recipe.
func (a *App) Layout(req Request) ([]domain.PackageRule, error) {
	recipe, err := a.recipes.Load(req.RecipePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}
	return recipe.PackageRules, nil
}

// MatrixRequest selects the toolchains and the variants of a build matrix.
type MatrixRequest struct {
	Request
	// Profiles lists one toolchain profile per matrix column. Empty means the
	// single toolchain selected by Request.
	Profiles []string
	Matrix   matrix.Options
}

// Matrix plans the de-duplicated build matrix.
func (a *App) Matrix(ctx context.Context, req MatrixRequest) ([]matrix.Entry, error) {
	recipe, err := a.recipes.Load(req.RecipePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}

	paths := req.Profiles
	if len(paths) == 0 {
		paths = []string{req.ProfilePath}
	}
	toolchains := make([]domain.Toolchain, 0, len(paths))
	for _, path := range paths {
		tc, err := a.toolchain(path, req.Settings)
		if err != nil {
			return nil, err
		}
		toolchains = append(toolchains, tc)
	}

	opts := req.Matrix
	opts.Overrides = req.Options
	return a.planner.Plan(ctx, recipe, toolchains, opts)
}

func (a *App) toolchain(profilePath string, settings map[string]string) (domain.Toolchain, error) {
	var tc domain.Toolchain
	if profilePath == "" {
		tc = a.detector.Detect()
	} else {
		loaded, err := a.profiles.Load(profilePath)
		if err != nil {
			return domain.Toolchain{}, zerr.Wrap(err, "failed to load toolchain profile")
		}
		tc = loaded
	}

	tc, err := tc.WithSettings(settings)
	if err != nil {
		return domain.Toolchain{}, err
	}
	if err := tc.Validate(); err != nil {
		return domain.Toolchain{}, err
	}
	return tc, nil
}

func (a *App) report(notices []domain.Notice) {
	for _, n := range notices {
		if n.Level == domain.NoticeWarn {
			a.logger.Warn(n.Message)
			continue
		}
		a.logger.Info(n.Message)
	}
}
