// Package style holds the colors and glyphs shared by every printer of the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Info    = "·"
)

// Heading renders a section title of the human readable output.
func Heading(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Accent).Render(title)
}
