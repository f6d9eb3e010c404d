// Package deps selects the upstream packages a resolved build requires.
package deps

import (
	"go.trai.ch/recipe/internal/core/domain"
)

// Select returns the requirements whose rules match the resolved options,
// in rule order, together with the options propagated to every dependency.
// Requirements without a channel inherit the recipe's user/channel.
//
// Recipes produced by the loader pass domain.ValidateRules, so Select only
// fails for a recipe assembled by hand that names a package twice.
func Select(recipe *domain.Recipe, res domain.Resolution) (domain.DependencySpec, error) {
	spec := domain.DependencySpec{
		Requirements: make([]domain.Requirement, 0, len(recipe.Requirements)),
		Propagated:   res.Propagated,
	}
	for _, rule := range recipe.Requirements {
		if !rule.Matches(res.Options) {
			continue
		}
		req := rule.Requirement
		if req.Channel == "" {
			req.Channel = recipe.DefaultChannel()
		}
		if err := spec.Add(req); err != nil {
			return domain.DependencySpec{}, err
		}
	}
	return spec, nil
}
