package resolver

import (
	"go.trai.ch/recipe/internal/core/domain"
)

// defaultMarch is used when x86_64 has no explicit or detected microarchitecture.
const defaultMarch = "x86-64"

// ArchitectureGate removes microarchitecture and fix_march on every
// architecture other than x86_64.
func ArchitectureGate(opts domain.Options, tc domain.Toolchain) (domain.Options, []domain.Notice) {
	if tc.IsX86_64() {
		return opts, nil
	}
	if !opts.Has(domain.OptMicroarchitecture) && !opts.Has(domain.OptFixMarch) {
		return opts, nil
	}
	notice := domain.InfoNotice(
		"microarchitecture is disabled for architectures other than x86_64, your architecture: " + tc.Arch,
	)
	return opts.Without(domain.OptMicroarchitecture, domain.OptFixMarch), []domain.Notice{notice}
}

// ToolchainGate removes fPIC under Visual Studio, and shared when it is
// requested together with a statically linked runtime.
func ToolchainGate(opts domain.Options, tc domain.Toolchain) (domain.Options, []domain.Notice) {
	if !tc.IsVisualStudio() {
		return opts, nil
	}
	out := opts.Without(domain.OptFPIC)
	var notices []domain.Notice
	if out.Enabled(domain.OptShared) && tc.HasStaticRuntime() {
		out = out.Without(domain.OptShared)
		notices = append(notices, domain.InfoNotice(
			"shared linkage is not available with the "+tc.Runtime+" runtime, building static",
		))
	}
	return out, notices
}

// KeokenGate removes keoken unless the currency is BCH.
// Requesting keoken for another currency downgrades with a warning instead of failing.
func KeokenGate(opts domain.Options, _ domain.Toolchain) (domain.Options, []domain.Notice) {
	if !opts.Has(domain.OptKeoken) || opts.Value(domain.OptCurrency) == domain.CurrencyBCH {
		return opts, nil
	}
	var notices []domain.Notice
	if opts.Enabled(domain.OptKeoken) {
		notices = append(notices, domain.WarnNotice(
			"Keoken is only enabled for BCH, for the moment. Removing Keoken support",
		))
	}
	return opts.Without(domain.OptKeoken), notices
}

// MarchPinning removes fix_march on x86_64 when no microarchitecture was chosen.
func MarchPinning(opts domain.Options, tc domain.Toolchain) (domain.Options, []domain.Notice) {
	if !tc.IsX86_64() || opts.Value(domain.OptMicroarchitecture) != domain.MarchUnset {
		return opts, nil
	}
	return opts.Without(domain.OptFixMarch), nil
}

// MarchDefault replaces the unset microarchitecture sentinel with the
// detected host microarchitecture, or the generic x86-64 baseline.
func MarchDefault(opts domain.Options, tc domain.Toolchain) (domain.Options, []domain.Notice) {
	if !tc.IsX86_64() || opts.Value(domain.OptMicroarchitecture) != domain.MarchUnset {
		return opts, nil
	}
	march := tc.Microarchitecture
	if march == "" {
		march = defaultMarch
	}
	return opts.With(domain.OptMicroarchitecture, march), []domain.Notice{
		domain.InfoNotice("microarchitecture not specified, using " + march),
	}
}
