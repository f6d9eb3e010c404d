package config

// RecipeFile represents the structure of recipe.yaml.
type RecipeFile struct {
	Name        string           `yaml:"name"`
	Version     string           `yaml:"version"`
	User        string           `yaml:"user"`
	Channel     string           `yaml:"channel"`
	Description string           `yaml:"description"`
	Options     []OptionDTO      `yaml:"options"`
	Requires    []RequirementDTO `yaml:"requires"`
	Package     []PackageRuleDTO `yaml:"package"`
}

// OptionDTO represents an option declaration in the recipe.
type OptionDTO struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Values  []string `yaml:"values"`
	Default string   `yaml:"default"`
}

// RequirementDTO represents a requirement rule in the recipe.
type RequirementDTO struct {
	Name    string            `yaml:"name"`
	Version string            `yaml:"version"`
	Channel string            `yaml:"channel"`
	When    map[string]string `yaml:"when"`
}

// PackageRuleDTO represents a packaging rule in the recipe.
type PackageRuleDTO struct {
	Pattern  string `yaml:"pattern"`
	Src      string `yaml:"src"`
	Dst      string `yaml:"dst"`
	KeepPath bool   `yaml:"keep_path"`
}

// ProfileFile represents a toolchain profile, either YAML or JSONC.
type ProfileFile struct {
	Settings map[string]string `yaml:"settings" json:"settings"`
}
