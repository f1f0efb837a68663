package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the CLI.
type Styles struct {
	Notice lipgloss.Style
	Muted  lipgloss.Style
}

// Color palette
var (
	colorGreen = lipgloss.Color("#04B575")
	colorGray  = lipgloss.Color("#6C6C6C")
)

// NewStyles creates the styles bound to r.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Notice: r.NewStyle().Bold(true).Foreground(colorGreen),
		Muted:  r.NewStyle().Foreground(colorGray),
	}
}
