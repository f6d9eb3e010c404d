package commands

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/ui/style"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.BuildOptions
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure and build the native library unless an equivalent package exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := c.request()
			if err != nil {
				return err
			}
			result, err := c.app.Build(cmd.Context(), req, opts)
			if err != nil {
				return err
			}
			return c.emit(cmd, result, func(w io.Writer) {
				glyph := lipgloss.NewStyle().Foreground(style.Green).Render(style.Check)
				status := "built"
				if result.Skipped {
					status = "up to date"
				}
				_, _ = io.WriteString(w, glyph+" "+result.Evaluation.Reference+" "+status+
					" ("+result.Evaluation.IdentityID+")\n")
			})
		},
	}
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace holding the .recipe directory")
	cmd.Flags().StringVar(&opts.SourceDir, "source", "", "CMake source directory (default: the workspace)")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build directory (default: .recipe/build)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Build even when the package identity is already recorded")
	return cmd
}
