package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ParseAssignments parses "key=value" pairs as given on the command line.
// The value may be empty and may itself contain '='. A later pair for the same key wins.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidAssignment, "cannot parse assignment"), "assignment", pair)
		}
		out[key] = value
	}
	return out, nil
}
