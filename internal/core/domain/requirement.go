package domain

import (
	"go.trai.ch/zerr"
)

// Requirement is a single upstream package reference.
type Requirement struct {
	// Name is the package name (e.g., "bitprim-database").
	Name string `json:"name" yaml:"name"`

	// Version is the version range (e.g., "0.X").
	Version string `json:"version" yaml:"version"`

	// Channel is the "user/channel" pair the package is published under.
	Channel string `json:"channel" yaml:"channel"`
}

// Reference renders the requirement as "name/version@user/channel".
func (r Requirement) Reference() string {
	if r.Channel == "" {
		return r.Name + "/" + r.Version
	}
	return r.Name + "/" + r.Version + "@" + r.Channel
}

// RequirementRule declares a requirement and the option predicate that enables it.
type RequirementRule struct {
	Requirement

	// When maps option names to the value they must hold. An empty map always matches.
	When map[string]string
}

// Matches reports whether every predicate of the rule holds for the given options.
// Boolean predicates compare by truth value, so "True" matches "true".
func (r RequirementRule) Matches(opts Options) bool {
	for name, want := range r.When {
		got, ok := opts.Get(name)
		if !ok {
			return false
		}
		if wb, wok := ParseBool(want); wok {
			if gb, gok := ParseBool(got); gok && gb == wb {
				continue
			}
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}

// ValidateRules checks that rules are complete, name each package once and
// list every unconditional requirement before the first conditional one.
// The base requirements therefore always lead the selected dependencies.
func ValidateRules(rules []RequirementRule) error {
	var seen DependencySpec
	conditional := ""
	for _, rule := range rules {
		if rule.Name == "" || rule.Version == "" {
			return zerr.With(zerr.Wrap(ErrInvalidRequirement, "requirement rule is incomplete"), "name", rule.Name)
		}
		switch {
		case len(rule.When) > 0 && conditional == "":
			conditional = rule.Name
		case len(rule.When) == 0 && conditional != "":
			err := zerr.With(zerr.Wrap(ErrInvalidRequirement, "unconditional requirement after a conditional one"), "name", rule.Name)
			return zerr.With(err, "conditional", conditional)
		}
		if err := seen.Add(rule.Requirement); err != nil {
			return err
		}
	}
	return nil
}

// DependencySpec is the ordered list of requirements of a build, together
// with the option values forced on every dependency.
type DependencySpec struct {
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
	Propagated   Options       `json:"propagated" yaml:"propagated"`
}

// Add appends a requirement. A second requirement with the same name is rejected.
func (d *DependencySpec) Add(req Requirement) error {
	for _, existing := range d.Requirements {
		if existing.Name == req.Name {
			return zerr.With(zerr.Wrap(ErrDuplicateRequirement, "cannot add requirement"), "name", req.Name)
		}
	}
	d.Requirements = append(d.Requirements, req)
	return nil
}

// Names returns the requirement names in order.
func (d DependencySpec) Names() []string {
	names := make([]string, len(d.Requirements))
	for i, r := range d.Requirements {
		names[i] = r.Name
	}
	return names
}

// IndexOf returns the position of the named requirement, or -1.
func (d DependencySpec) IndexOf(name string) int {
	for i, r := range d.Requirements {
		if r.Name == name {
			return i
		}
	}
	return -1
}
