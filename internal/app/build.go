package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// BuildOptions configures the native build.
type BuildOptions struct {
	// Root is the workspace holding the .recipe directory.
	Root string
	// SourceDir is the CMake source tree. Empty means Root.
	SourceDir string
	// BuildDir is the out-of-source build tree. Empty means .recipe/build under Root.
	BuildDir string
	// Force rebuilds even when the package is recorded with the same identity.
	Force bool
}

// BuildResult reports what Build did.
type BuildResult struct {
	Evaluation *Evaluation `json:"evaluation" yaml:"evaluation"`
	// Skipped is true when the reference was already built with this identity.
	Skipped bool `json:"skipped" yaml:"skipped"`
}

// Build resolves the request and runs the native build unless the same
// reference has already been recorded with the same identity. CMake configures and
// builds the tree; ctest runs when with_tests is enabled.
func (a *App) Build(ctx context.Context, req Request, opts BuildOptions) (*BuildResult, error) {
	ev, err := a.Evaluate(req)
	if err != nil {
		return nil, err
	}

	root := opts.Root
	if root == "" {
		root = "."
	}

	if !opts.Force {
		record, err := a.store.Get(root, ev.Reference, ev.IdentityID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			a.logger.Info("Package " + ev.Reference + " is up to date (identity " + ev.IdentityID + ")")
			return &BuildResult{Evaluation: ev, Skipped: true}, nil
		}
	}

	for _, inv := range buildInvocations(ev, root, opts) {
		if err := a.executor.Execute(ctx, inv); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrBuildExecutionFailed.Error()), "tool", inv.Name)
		}
	}

	record := domain.PackageRecord{
		Reference:  ev.Reference,
		IdentityID: ev.IdentityID,
		Identity:   ev.Identity,
		Flags:      ev.Flags.CMakeArgs(),
		Timestamp:  a.now(),
	}
	if err := a.store.Put(root, record); err != nil {
		return nil, err
	}
	a.logger.Info("Built " + ev.Reference + " (identity " + ev.IdentityID + ")")
	return &BuildResult{Evaluation: ev}, nil
}

func buildInvocations(ev *Evaluation, root string, opts BuildOptions) []domain.Invocation {
	sourceDir := opts.SourceDir
	if sourceDir == "" {
		sourceDir = root
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = filepath.Join(root, domain.DefaultBuildPath())
	}
	buildType := ev.Toolchain.BuildType
	if buildType == "" {
		buildType = domain.BuildTypeRelease
	}

	configure := append([]string{"-S", sourceDir, "-B", buildDir}, ev.Flags.CMakeArgs()...)
	configure = append(configure, "-DCMAKE_BUILD_TYPE="+buildType)

	invs := []domain.Invocation{
		{Name: "cmake", Args: configure},
		{Name: "cmake", Args: []string{"--build", buildDir, "--config", buildType}},
	}
	if ev.Resolution.Options.Enabled(domain.OptWithTests) {
		invs = append(invs, domain.Invocation{
			Name: "ctest",
			Args: []string{"--output-on-failure", "-C", buildType},
			Dir:  buildDir,
		})
	}
	return invs
}
