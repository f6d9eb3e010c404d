package ports

import "go.trai.ch/recipe/internal/core/domain"

// RecipeLoader defines the interface for loading a recipe.
//
//go:generate mockgen -source=recipe_loader.go -destination=mocks/mock_recipe_loader.go -package=mocks
type RecipeLoader interface {
	// Load reads the recipe at path. An empty path selects recipe.yaml in the
	// working directory, falling back to the built-in recipe when it does not exist.
	Load(path string) (*domain.Recipe, error)
}
