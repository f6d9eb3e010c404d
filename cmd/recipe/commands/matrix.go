package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/matrix"
)

// Environment variables read by CI jobs.
const (
	envFullBuild  = "BITPRIM_FULL_BUILD"
	envCICurrency = "BITPRIM_CI_CURRENCY"
	envRunTests   = "BITPRIM_RUN_TESTS"
)

func envBool(name string) bool {
	b, _ := domain.ParseBool(os.Getenv(name))
	return b
}

func (c *CLI) newMatrixCmd() *cobra.Command {
	var (
		full     bool
		currency string
		tests    bool
		profiles []string
	)
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the de-duplicated CI build matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			entries, err := c.app.Matrix(cmd.Context(), app.MatrixRequest{
				Request:  req,
				Profiles: profiles,
				Matrix: matrix.Options{
					FullBuild: full,
					Currency:  currency,
					RunTests:  tests,
				},
			})
			if err != nil {
				return err
			}
			return c.emit(cmd, entries, func(w io.Writer) {
				rows := make([]string, len(entries))
				for i, e := range entries {
					rows[i] = matrixRow(e)
				}
				printSection(w, fmt.Sprintf("Matrix (%d builds)", len(entries)), rows)
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", envBool(envFullBuild), "Add every microarchitecture the compiler supports")
	cmd.Flags().StringVar(&currency, "currency", os.Getenv(envCICurrency), "Restrict the matrix to one currency")
	cmd.Flags().BoolVar(&tests, "tests", envBool(envRunTests), "Enable tests on the first build of every group")
	cmd.Flags().StringArrayVar(&profiles, "profiles", nil, "Toolchain profile per matrix column (repeatable)")
	return cmd
}

func matrixRow(e matrix.Entry) string {
	tc := e.Toolchain
	opts := e.Resolution.Options
	parts := []string{
		e.IdentityID,
		strings.TrimSpace(tc.Compiler + " " + tc.CompilerVersion),
		tc.Arch,
		domain.OptCurrency + "=" + opts.Value(domain.OptCurrency),
	}
	for _, name := range []string{domain.OptKeoken, domain.OptMicroarchitecture, domain.OptWithTests} {
		if v, ok := opts.Get(name); ok {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, "  ")
}
