// Package config loads recipes and toolchain profiles.
package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinRecipe []byte

// Loader implements ports.RecipeLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	// Dir is the directory searched for recipe.yaml when no path is given.
	Dir string
}

var _ ports.RecipeLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Dir: "."}
}

// Load reads the recipe at path. Without a path, recipe.yaml in Dir is used
// when present and the built-in recipe otherwise.
func (l *Loader) Load(path string) (*domain.Recipe, error) {
	if path == "" {
		candidate := filepath.Join(l.Dir, domain.RecipeFileName)
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return Builtin()
		}
		path = candidate
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRecipeReadFailed.Error()), "path", path)
	}

	recipe, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.Logger.Info("Loaded recipe " + recipe.Reference() + " from " + path)
	return recipe, nil
}

// Builtin returns the recipe of the blockchain library shipped with the binary.
func Builtin() (*domain.Recipe, error) {
	return Parse(builtinRecipe)
}

// Parse decodes and validates a recipe document.
func Parse(data []byte) (*domain.Recipe, error) {
	var file RecipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRecipeParseFailed.Error())
	}
	return file.toDomain()
}

func (f *RecipeFile) toDomain() (*domain.Recipe, error) {
	if f.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecipeParseFailed, "missing field"), "field", "name")
	}

	defs := make([]domain.OptionDef, 0, len(f.Options))
	for _, dto := range f.Options {
		kind, err := parseKind(dto.Type)
		if err != nil {
			return nil, zerr.With(err, "option", dto.Name)
		}
		defs = append(defs, domain.OptionDef{
			Name:    dto.Name,
			Kind:    kind,
			Values:  dto.Values,
			Default: dto.Default,
		})
	}
	schema, err := domain.NewSchema(defs...)
	if err != nil {
		return nil, err
	}

	rules := make([]domain.RequirementRule, 0, len(f.Requires))
	for _, dto := range f.Requires {
		rules = append(rules, domain.RequirementRule{
			Requirement: domain.Requirement{Name: dto.Name, Version: dto.Version, Channel: dto.Channel},
			When:        dto.When,
		})
	}
	if err := domain.ValidateRules(rules); err != nil {
		return nil, err
	}

	packageRules := domain.DefaultPackageRules
	if len(f.Package) > 0 {
		packageRules = make([]domain.PackageRule, len(f.Package))
		for i, dto := range f.Package {
			packageRules[i] = domain.PackageRule(dto)
		}
	}

	return &domain.Recipe{
		Name:         f.Name,
		Version:      f.Version,
		User:         f.User,
		Channel:      f.Channel,
		Description:  f.Description,
		Schema:       schema,
		Requirements: rules,
		PackageRules: packageRules,
	}, nil
}

func parseKind(s string) (domain.OptionKind, error) {
	switch kind := domain.OptionKind(s); kind {
	case domain.KindBool, domain.KindEnum, domain.KindAny:
		return kind, nil
	case "":
		return domain.KindAny, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidSchema, "unknown option type"), "type", s)
	}
}
