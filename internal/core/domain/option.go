package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Well-known option names of the blockchain recipe.
const (
	OptShared            = "shared"
	OptFPIC              = "fPIC"
	OptWithConsensus     = "with_consensus"
	OptWithTests         = "with_tests"
	OptWithTools         = "with_tools"
	OptCurrency          = "currency"
	OptMicroarchitecture = "microarchitecture"
	OptFixMarch          = "fix_march"
	OptVerbose           = "verbose"
	OptKeoken            = "keoken"
)

const (
	// True is the normalized value of an enabled boolean option.
	True = "true"
	// False is the normalized value of a disabled boolean option.
	False = "false"

	// MarchUnset is the sentinel default of the microarchitecture option.
	MarchUnset = "_DUMMY_"

	// CurrencyBCH is the only currency that supports the keoken extension.
	CurrencyBCH = "BCH"
)

// OptionKind classifies the domain of an option.
type OptionKind string

const (
	// KindBool accepts true or false.
	KindBool OptionKind = "bool"
	// KindEnum accepts one of a fixed set of strings.
	KindEnum OptionKind = "enum"
	// KindAny accepts any non-empty string.
	KindAny OptionKind = "any"
)

// OptionDef declares a single option: its name, domain and default.
type OptionDef struct {
	Name    string
	Kind    OptionKind
	Values  []string
	Default string
}

// Normalize checks value against the option domain and returns its canonical spelling.
func (d OptionDef) Normalize(value string) (string, error) {
	switch d.Kind {
	case KindBool:
		if b, ok := ParseBool(value); ok {
			if b {
				return True, nil
			}
			return False, nil
		}
	case KindEnum:
		if slices.Contains(d.Values, value) {
			return value, nil
		}
	case KindAny:
		if value != "" {
			return value, nil
		}
	}

	err := zerr.With(zerr.Wrap(ErrOptionOutOfDomain, "cannot apply override"), "option", d.Name)
	err = zerr.With(err, "value", value)
	if d.Kind == KindEnum {
		err = zerr.With(err, "allowed", strings.Join(d.Values, ","))
	}
	return "", err
}

// ParseBool parses the boolean spellings accepted for options.
func ParseBool(value string) (b, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true, true
	case "false", "0", "off", "no":
		return false, true
	default:
		return false, false
	}
}
