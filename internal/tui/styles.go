package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/kurtsley/nanoterm/internal/frame"
)

// Color palette
var (
	borderColor  = lipgloss.Color("12")  // Blue
	titleColor   = lipgloss.Color("14")  // Cyan
	neutralColor = lipgloss.Color("15")  // White
	infoColor    = lipgloss.Color("11")  // Yellow
	mutedColor   = lipgloss.Color("14")  // Light cyan
	successColor = lipgloss.Color("10")  // Green
	errorColor   = lipgloss.Color("9")   // Red
)

// pen is the styling of one cell. It is comparable so runs of equally
// styled cells can be rendered together.
type pen struct {
	fg   lipgloss.TerminalColor
	bg   lipgloss.TerminalColor
	bold bool
}

var (
	borderPen = pen{fg: borderColor}
	titlePen  = pen{fg: titleColor, bold: true}
)

func (p pen) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if p.fg != nil {
		s = s.Foreground(p.fg)
	}
	if p.bg != nil {
		s = s.Background(p.bg)
	}
	if p.bold {
		s = s.Bold(true)
	}
	return s
}

func (p pen) render(text string) string {
	if p == (pen{}) {
		return text
	}
	return p.style().Render(text)
}

// classPen maps a colour class to its pen.
func classPen(c frame.ColorClass) pen {
	switch c {
	case frame.Positive:
		return pen{fg: successColor}
	case frame.Negative:
		return pen{fg: errorColor}
	case frame.Informational:
		return pen{fg: infoColor}
	case frame.Muted:
		return pen{fg: mutedColor}
	default:
		return pen{fg: neutralColor}
	}
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
