// Package matrix plans the CI build matrix of a recipe: every published
// combination of currency, keoken support and microarchitecture, resolved
// and collapsed by package identity.
package matrix

import (
	"context"
	"maps"
	"runtime"
	"slices"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/identity"
	"go.trai.ch/recipe/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls which entries the planner generates.
type Options struct {
	// FullBuild adds the tuned microarchitectures the compiler supports.
	FullBuild bool
	// Currency restricts the matrix to one currency. Empty means the default set.
	Currency string
	// RunTests enables with_tests on the first microarchitecture of every group.
	RunTests bool
	// Overrides are applied to every entry before the matrix values.
	Overrides map[string]string
}

// Entry is a single build of the matrix.
type Entry struct {
	Toolchain  domain.Toolchain   `json:"toolchain" yaml:"toolchain"`
	Overrides  map[string]string  `json:"overrides" yaml:"overrides"`
	Resolution domain.Resolution  `json:"resolution" yaml:"resolution"`
	Identity   domain.IdentityKey `json:"identity" yaml:"identity"`
	IdentityID string             `json:"identity_id" yaml:"identity_id"`
}

// Planner generates and resolves build matrices.
type Planner struct {
	resolver *resolver.Resolver
	limit    int
}

// NewPlanner creates a Planner that resolves entries with the given resolver.
func NewPlanner(r *resolver.Resolver) *Planner {
	return &Planner{resolver: r, limit: runtime.NumCPU()}
}

// Plan expands the matrix for every toolchain, resolves all entries
// concurrently and drops entries whose identity was already produced by an
// earlier entry. The result order follows the generation order.
func (p *Planner) Plan(
	ctx context.Context,
	recipe *domain.Recipe,
	toolchains []domain.Toolchain,
	opts Options,
) ([]Entry, error) {
	candidates := Expand(toolchains, opts)
	entries := make([]Entry, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, c := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.resolver.Resolve(recipe.Schema, c.Overrides, c.Toolchain)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrMatrixPlanFailed.Error()), "entry", i)
			}
			key := identity.Reduce(res.Options, c.Toolchain)
			entries[i] = Entry{
				Toolchain:  c.Toolchain,
				Overrides:  c.Overrides,
				Resolution: res,
				Identity:   key,
				IdentityID: key.ID(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Dedupe(entries), nil
}

// Dedupe keeps the first entry of every identity.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.IdentityID]; dup {
			continue
		}
		seen[e.IdentityID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Candidate is an unresolved matrix entry.
type Candidate struct {
	Toolchain domain.Toolchain
	Overrides map[string]string
}

// Expand generates the unresolved matrix. Only Release toolchains are
// published, and only static builds: a shared override removes the toolchain
// from the matrix.
func Expand(toolchains []domain.Toolchain, opts Options) []Candidate {
	if opts.Enabled(domain.OptShared) {
		return nil
	}

	var out []Candidate
	for _, tc := range toolchains {
		if tc.BuildType != domain.BuildTypeRelease {
			continue
		}
		marchs := []string{""}
		if tc.IsX86_64() {
			marchs = Microarchitectures(tc, opts.FullBuild)
		}
		for _, variant := range currencyVariants(opts.Currency) {
			for i, march := range marchs {
				overrides := maps.Clone(opts.Overrides)
				if overrides == nil {
					overrides = map[string]string{}
				}
				maps.Copy(overrides, variant)
				if march != "" {
					overrides[domain.OptMicroarchitecture] = march
				}
				if opts.RunTests {
					overrides[domain.OptWithTests] = domain.False
					if i == 0 {
						overrides[domain.OptWithTests] = domain.True
					}
				}
				out = append(out, Candidate{Toolchain: tc, Overrides: overrides})
			}
		}
	}
	return out
}

// Enabled reports whether an override turns the named boolean option on.
func (o Options) Enabled(name string) bool {
	b, _ := domain.ParseBool(o.Overrides[name])
	return b
}

// currencyVariants lists the currency/keoken combinations to build.
// Without an explicit currency the published set is BCH with and without
// keoken, and BTC.
func currencyVariants(currency string) []map[string]string {
	if currency == "" {
		return []map[string]string{
			{domain.OptCurrency: domain.CurrencyBCH, domain.OptKeoken: domain.True},
			{domain.OptCurrency: domain.CurrencyBCH, domain.OptKeoken: domain.False},
			{domain.OptCurrency: "BTC"},
		}
	}
	variants := make([]map[string]string, 0, 2)
	if currency == domain.CurrencyBCH {
		variants = append(variants, map[string]string{domain.OptCurrency: currency, domain.OptKeoken: domain.True})
	}
	return append(variants, map[string]string{domain.OptCurrency: currency})
}

// Microarchitectures returns the microarchitectures published for a toolchain.
// The generic x86-64 baseline always comes first.
func Microarchitectures(tc domain.Toolchain, full bool) []string {
	if !full {
		return []string{baselineMarch}
	}
	return slices.DeleteFunc(slices.Clone(tunedMarchs), func(march string) bool {
		return !Supports(tc, march)
	})
}
