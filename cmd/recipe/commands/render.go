package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/ui/style"
)

// emit prints v as indented JSON when --json is set and through text otherwise.
func (c *CLI) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if c.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printSection(w io.Writer, title string, rows []string) {
	_, _ = fmt.Fprintln(w, style.Heading(title))
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, "  "+row)
	}
}

func optionRows(opts domain.Options) []string {
	rows := make([]string, 0, opts.Len())
	for _, name := range opts.Names() {
		rows = append(rows, name+"="+opts.Value(name))
	}
	return rows
}

func mapRows(m map[string]string) []string {
	return optionRows(domain.NewOptions(m))
}

func noticeRows(notices []domain.Notice) []string {
	rows := make([]string, len(notices))
	for i, n := range notices {
		glyph := style.Info
		if n.Level == domain.NoticeWarn {
			glyph = style.Warning
		}
		rows[i] = glyph + " " + n.Message
	}
	return rows
}

func definitionRows(f domain.BuildFlags) []string {
	defs := f.Definitions()
	rows := make([]string, len(defs))
	for i, d := range defs {
		rows[i] = d.Name + "=" + strings.TrimSpace(d.Value)
	}
	return rows
}
