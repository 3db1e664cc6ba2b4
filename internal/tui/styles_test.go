package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/kurtsley/nanoterm/internal/frame"
)

func TestClassPen(t *testing.T) {
	tests := map[frame.ColorClass]lipgloss.Color{
		frame.Positive:      "10",
		frame.Negative:      "9",
		frame.Informational: "11",
		frame.Muted:         "14",
		frame.Neutral:       "15",
	}
	for class, want := range tests {
		if got := classPen(class).fg; got != want {
			t.Errorf("class %v: expected colour %v, got %v", class, want, got)
		}
	}
}
