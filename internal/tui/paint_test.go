package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/kurtsley/nanoterm/internal/frame"
)

func TestPaintPanelWithTitle(t *testing.T) {
	n := &frame.Node{Kind: frame.KindPanel, Rect: frame.Rect{W: 10, H: 3}, Title: "Info"}
	got := paint(n, 10, 3, nil)
	want := "╭ Info ──╮\n│        │\n╰────────╯"
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestPaintPanelTruncatesTitle(t *testing.T) {
	n := &frame.Node{Kind: frame.KindPanel, Rect: frame.Rect{W: 8, H: 2}, Title: "Information"}
	got := strings.Split(paint(n, 8, 2, nil), "\n")[0]
	if got != "╭ Inf… ╮" {
		t.Errorf("expected truncated title, got %q", got)
	}
}

func TestPaintTinyPanelSkipsBorder(t *testing.T) {
	n := &frame.Node{Kind: frame.KindPanel, Rect: frame.Rect{W: 1, H: 1}, Title: "Info"}
	if got := paint(n, 1, 1, nil); got != " " {
		t.Errorf("expected blank cell, got %q", got)
	}
}

func TestPaintTextCentred(t *testing.T) {
	n := &frame.Node{
		Kind:   frame.KindText,
		Rect:   frame.Rect{W: 9, H: 3},
		VAlign: frame.AlignMiddle,
		Lines:  []frame.StyledLine{{Text: "abc"}},
	}
	got := paint(n, 9, 3, nil)
	want := "         \n   abc   \n         "
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPaintTextClipsLines(t *testing.T) {
	n := &frame.Node{
		Kind:  frame.KindText,
		Rect:  frame.Rect{W: 4, H: 1},
		Lines: []frame.StyledLine{{Text: "first line"}, {Text: "second"}},
	}
	got := paint(n, 4, 1, nil)
	if got != "fir…" {
		t.Errorf("expected one truncated line, got %q", got)
	}
}

func TestPaintNestedRects(t *testing.T) {
	child := &frame.Node{
		Kind:  frame.KindText,
		Rect:  frame.Rect{X: 1, Y: 1, W: 3, H: 1},
		Lines: []frame.StyledLine{{Text: "ok"}},
	}
	root := &frame.Node{Kind: frame.KindPanel, Rect: frame.Rect{W: 5, H: 3}, Children: []*frame.Node{child}}
	got := paint(root, 5, 3, nil)
	want := "╭───╮\n│ok │\n╰───╯"
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func solid(w, h int, top, bottom color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bottom
			if y < h/2 {
				c = top
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPaintImageHalfBlocks(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	none := color.RGBA{}
	rect := frame.Rect{W: 2, H: 1}
	n := &frame.Node{Kind: frame.KindImage, Rect: rect}

	tests := []struct {
		name        string
		top, bottom color.RGBA
		want        string
	}{
		{"both halves", red, red, "▀▀"},
		{"top only", red, none, "▀▀"},
		{"bottom only", none, red, "▄▄"},
		{"nothing", none, none, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paint(n, 2, 1, newLogoCache(solid(2, 2, tt.top, tt.bottom)))
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLogoCacheReusesGrid(t *testing.T) {
	lc := newLogoCache(solid(2, 2, color.RGBA{A: 255}, color.RGBA{A: 255}))
	a := lc.get(1, 2)
	b := lc.get(1, 2)
	if &a.Cells[0] != &b.Cells[0] {
		t.Error("expected the same grid for the same size")
	}
	c := lc.get(2, 2)
	if c.Rows != 2 {
		t.Errorf("expected a new grid after resize, got %d rows", c.Rows)
	}
}

func TestPaintEmptyGeometry(t *testing.T) {
	if got := paint(nil, 0, 0, nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
