package domain

import "go.trai.ch/zerr"

// Schema is the ordered set of options a recipe declares.
type Schema struct {
	defs  []OptionDef
	index map[string]int
}

// NewSchema builds a schema and verifies that every option is unique and
// that every default lies in its own domain.
func NewSchema(defs ...OptionDef) (*Schema, error) {
	s := &Schema{
		defs:  make([]OptionDef, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, zerr.Wrap(ErrInvalidSchema, "option without a name")
		}
		if _, exists := s.index[def.Name]; exists {
			return nil, zerr.With(zerr.Wrap(ErrInvalidSchema, "option declared twice"), "option", def.Name)
		}
		normalized, err := def.Normalize(def.Default)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(ErrInvalidSchema, "default outside domain"), "option", def.Name)
		}
		def.Default = normalized
		s.index[def.Name] = len(s.defs)
		s.defs = append(s.defs, def)
	}
	return s, nil
}

// Lookup returns the definition of the named option.
func (s *Schema) Lookup(name string) (OptionDef, bool) {
	i, ok := s.index[name]
	if !ok {
		return OptionDef{}, false
	}
	return s.defs[i], true
}

// Defs returns the option definitions in declaration order.
func (s *Schema) Defs() []OptionDef {
	out := make([]OptionDef, len(s.defs))
	copy(out, s.defs)
	return out
}

// Defaults returns a record holding every option at its default value.
func (s *Schema) Defaults() Options {
	values := make(map[string]string, len(s.defs))
	for _, def := range s.defs {
		values[def.Name] = def.Default
	}
	return Options{values: values}
}
