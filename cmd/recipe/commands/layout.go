package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
)

func (c *CLI) newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the packaging table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := c.app.Layout(app.Request{RecipePath: c.recipePath})
			if err != nil {
				return err
			}
			return c.emit(cmd, rules, func(w io.Writer) {
				rows := make([]string, len(rules))
				for i, r := range rules {
					src := r.Src
					if src == "" {
						src = "."
					}
					rows[i] = r.Pattern + "  " + src + " -> " + r.Dst
					if r.KeepPath {
						rows[i] += "  (keep path)"
					}
				}
				printSection(w, "Package", rows)
			})
		},
	}
}
