package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ProfileLoader implements ports.ProfileLoader.
// Files ending in .json or .jsonc are read as JSON with comments, anything else as YAML.
type ProfileLoader struct{}

var _ ports.ProfileLoader = (*ProfileLoader)(nil)

// NewProfileLoader creates a new ProfileLoader.
func NewProfileLoader() *ProfileLoader {
	return &ProfileLoader{}
}

// Load reads the profile at path.
func (p *ProfileLoader) Load(path string) (domain.Toolchain, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Toolchain{}, zerr.With(zerr.Wrap(err, domain.ErrProfileReadFailed.Error()), "path", path)
	}

	tc, err := ParseProfile(data, isJSON(path))
	if err != nil {
		return domain.Toolchain{}, zerr.With(err, "path", path)
	}
	return tc, nil
}

// ParseProfile decodes a profile document into toolchain facts.
func ParseProfile(data []byte, asJSON bool) (domain.Toolchain, error) {
	var file ProfileFile
	if asJSON {
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return domain.Toolchain{}, zerr.Wrap(err, domain.ErrProfileParseFailed.Error())
		}
	} else if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Toolchain{}, zerr.Wrap(err, domain.ErrProfileParseFailed.Error())
	}

	tc, err := domain.Toolchain{}.WithSettings(file.Settings)
	if err != nil {
		return domain.Toolchain{}, zerr.Wrap(err, domain.ErrProfileParseFailed.Error())
	}
	return tc, nil
}

func isJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	default:
		return false
	}
}
