package domain

import "path/filepath"

const (
	// RecipeDirName is the name of the internal workspace directory.
	RecipeDirName = ".recipe"

	// StoreDirName is the name of the package record store directory.
	StoreDirName = "store"

	// BuildDirName is the name of the out-of-source build directory.
	BuildDirName = "build"

	// RecipeFileName is the name of the recipe file looked up in the working directory.
	RecipeFileName = "recipe.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default path for the package record store.
// It joins .recipe and store.
func DefaultStorePath() string {
	return filepath.Join(RecipeDirName, StoreDirName)
}

// DefaultBuildPath returns the default out-of-source build directory.
// It joins .recipe and build.
func DefaultBuildPath() string {
	return filepath.Join(RecipeDirName, BuildDirName)
}
