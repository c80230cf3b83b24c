package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles for listings.
var (
	DirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	FileStyle = lipgloss.NewStyle()

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Painter renders listing entries, styled or plain.
type Painter struct {
	styled bool
}

// NewPainter returns a Painter that applies styles only when styled is true.
func NewPainter(styled bool) Painter {
	return Painter{styled: styled}
}

// Dir renders a directory name.
func (p Painter) Dir(name string) string {
	if !p.styled {
		return name
	}
	return DirStyle.Render(name)
}

// File renders a file name.
func (p Painter) File(name string) string {
	if !p.styled {
		return name
	}
	return FileStyle.Render(name)
}

// Muted renders secondary text such as digests next to a path.
func (p Painter) Muted(text string) string {
	if !p.styled {
		return text
	}
	return MutedStyle.Render(text)
}
