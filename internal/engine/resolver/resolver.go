// Package resolver turns schema defaults and user overrides into a final,
// constraint-satisfying option record.
//
// Resolution is an ordered pipeline of pure stages. Each stage receives the
// record produced by the previous one and returns a new record plus the
// notices it wants to report. Stages are not commutative: the keoken gate
// must see the final currency and march pinning must run after the
// architecture gate.
package resolver

import (
	"maps"
	"slices"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stage is a single step of the resolution pipeline.
type Stage struct {
	Name  string
	Apply func(opts domain.Options, tc domain.Toolchain) (domain.Options, []domain.Notice)
}

// PropagatedOptions are the options forced on every dependency.
var PropagatedOptions = []string{domain.OptCurrency, domain.OptKeoken, domain.OptMicroarchitecture}

// Resolver runs the resolution pipeline.
type Resolver struct {
	stages []Stage
}

// New creates a Resolver with the default pipeline.
func New() *Resolver {
	return &Resolver{stages: DefaultStages()}
}

// NewWithStages creates a Resolver running the given stages in order.
func NewWithStages(stages ...Stage) *Resolver {
	return &Resolver{stages: stages}
}

// DefaultStages returns the gates applied after seeding, in order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "architecture", Apply: ArchitectureGate},
		{Name: "toolchain", Apply: ToolchainGate},
		{Name: "keoken", Apply: KeokenGate},
		{Name: "march-pinning", Apply: MarchPinning},
		{Name: "march-default", Apply: MarchDefault},
	}
}

// Resolve seeds the schema defaults, applies the overrides and runs every stage.
// It fails with domain.ErrInvalidOption before any stage runs when an override
// is unknown or outside its domain.
func (r *Resolver) Resolve(
	schema *domain.Schema,
	overrides map[string]string,
	tc domain.Toolchain,
) (domain.Resolution, error) {
	opts, err := Seed(schema, overrides)
	if err != nil {
		return domain.Resolution{}, err
	}

	var notices []domain.Notice
	for _, stage := range r.stages {
		var emitted []domain.Notice
		opts, emitted = stage.Apply(opts, tc)
		notices = append(notices, emitted...)
	}

	propagated, emitted := Propagate(opts)
	notices = append(notices, emitted...)

	return domain.Resolution{
		Options:    opts,
		Propagated: propagated,
		Notices:    notices,
	}, nil
}

// Seed starts from the schema defaults and applies the overrides.
// Overrides are validated in sorted order so the reported error is deterministic.
func Seed(schema *domain.Schema, overrides map[string]string) (domain.Options, error) {
	opts := schema.Defaults()
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		def, ok := schema.Lookup(name)
		if !ok {
			return domain.Options{}, zerr.With(zerr.Wrap(domain.ErrUnknownOption, "cannot apply override"), "option", name)
		}
		value, err := def.Normalize(overrides[name])
		if err != nil {
			return domain.Options{}, err
		}
		opts = opts.With(name, value)
	}
	return opts, nil
}

// Propagate collects the final currency, keoken and microarchitecture values
// that every dependency must be built with. Absent options are not propagated.
func Propagate(opts domain.Options) (domain.Options, []domain.Notice) {
	values := make(map[string]string, len(PropagatedOptions))
	for _, name := range PropagatedOptions {
		if v, ok := opts.Get(name); ok {
			values[name] = v
		}
	}

	var notices []domain.Notice
	if currency, ok := opts.Get(domain.OptCurrency); ok {
		notices = append(notices, domain.InfoNotice("Compiling for currency: "+currency))
	}
	return domain.NewOptions(values), notices
}
