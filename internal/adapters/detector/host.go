// Package detector derives toolchain facts from the host the binary runs on.
package detector

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

// archNames maps Go architecture names to the names used by package settings.
var archNames = map[string]string{
	"amd64":   domain.ArchX86_64,
	"386":     "x86",
	"arm64":   "armv8",
	"arm":     "armv7",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

// osNames maps Go operating system names to the names used by package settings.
var osNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Macos",
	"windows": "Windows",
	"freebsd": "FreeBSD",
}

// Host implements ports.ToolchainDetector for the running machine.
type Host struct {
	GOOS   string
	GOARCH string
	// Getenv reads the environment. CC selects the compiler.
	Getenv func(string) string
	// Supports reports CPU features of the host.
	Supports func(ids ...cpuid.FeatureID) bool
}

var _ ports.ToolchainDetector = (*Host)(nil)

// NewHost creates a detector for the running machine.
func NewHost() *Host {
	return &Host{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		Getenv:   os.Getenv,
		Supports: cpuid.CPU.Supports,
	}
}

// Detect returns the toolchain of the host. The compiler version is left
// empty; profiles and -s settings provide it.
func (h *Host) Detect() domain.Toolchain {
	tc := domain.Toolchain{
		Arch:      lookup(archNames, h.GOARCH),
		OS:        lookup(osNames, h.GOOS),
		Compiler:  h.compiler(),
		BuildType: domain.BuildTypeRelease,
	}

	switch tc.Compiler {
	case domain.CompilerGCC:
		tc.Libcxx = domain.LibStdCxx11
	case domain.CompilerClang:
		tc.Libcxx = domain.LibStdCxx11
		if h.GOOS == "darwin" {
			tc.Libcxx = domain.LibCxx
		}
	case domain.CompilerAppleClang:
		tc.Libcxx = domain.LibCxx
	case domain.CompilerVisualStudio:
		tc.Runtime = "MD"
	}

	if tc.IsX86_64() {
		tc.Microarchitecture = h.microarchitecture()
	}
	return tc
}

func (h *Host) compiler() string {
	if cc := h.Getenv("CC"); cc != "" {
		name := strings.ToLower(strings.TrimSuffix(filepath.Base(cc), ".exe"))
		switch {
		case name == "cl":
			return domain.CompilerVisualStudio
		case strings.Contains(name, "clang"):
			if h.GOOS == "darwin" {
				return domain.CompilerAppleClang
			}
			return domain.CompilerClang
		case strings.Contains(name, "gcc"), name == "cc", strings.HasSuffix(name, "g++"):
			return domain.CompilerGCC
		}
	}

	switch h.GOOS {
	case "darwin":
		return domain.CompilerAppleClang
	case "windows":
		return domain.CompilerVisualStudio
	default:
		return domain.CompilerGCC
	}
}

// microarchitecture picks the most specific -march target whose instruction
// sets the host CPU implements.
func (h *Host) microarchitecture() string {
	switch {
	case h.Supports(cpuid.AVX512F, cpuid.AVX512BW, cpuid.AVX512DQ, cpuid.AVX512VL):
		return "skylake-avx512"
	case h.Supports(cpuid.AVX2, cpuid.BMI2, cpuid.FMA3, cpuid.ADX):
		return "skylake"
	case h.Supports(cpuid.AVX2, cpuid.BMI1, cpuid.BMI2, cpuid.FMA3):
		return "haswell"
	default:
		return "x86-64"
	}
}

func lookup(names map[string]string, goName string) string {
	if name, ok := names[goName]; ok {
		return name
	}
	return goName
}
