package tui

import (
	"image"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kurtsley/nanoterm/internal/frame"
	"github.com/kurtsley/nanoterm/internal/logo"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
	ellipsis  = "…"
)

type cell struct {
	// s is empty for the right half of a wide rune.
	s   string
	pen pen
}

// canvas is a fixed-size grid of styled cells.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].s = " "
	}
	return c
}

func (c *canvas) set(x, y int, s string, p pen) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{s: s, pen: p}
}

// write puts s at (x, y), clipped to width cells.
func (c *canvas) write(x, y, width int, s string, p pen) {
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > width {
			return
		}
		c.set(x+col, y, string(r), p)
		if rw == 2 {
			c.set(x+col+1, y, "", p)
		}
		col += rw
	}
}

// String renders the canvas row by row, merging runs of equal pens.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		var run strings.Builder
		cur := pen{}
		for i, cl := range row {
			if i > 0 && cl.pen != cur {
				b.WriteString(cur.render(run.String()))
				run.Reset()
			}
			cur = cl.pen
			run.WriteString(cl.s)
		}
		b.WriteString(cur.render(run.String()))
	}
	return b.String()
}

// logoCache keeps the last blitted grid, since the logo pane only changes
// size on resize.
type logoCache struct {
	img image.Image

	mu   sync.Mutex
	grid logo.Grid
}

func newLogoCache(img image.Image) *logoCache {
	return &logoCache{img: img}
}

func (l *logoCache) get(rows, cols int) logo.Grid {
	if l == nil {
		return logo.Grid{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.grid.Rows != rows || l.grid.Cols != cols || l.grid.Cells == nil {
		l.grid = logo.Blit(l.img, rows, cols)
	}
	return l.grid
}

// paint renders a frame tree into a string of exactly w x h cells.
func paint(root *frame.Node, w, h int, logos *logoCache) string {
	c := newCanvas(w, h)
	draw(c, root, logos)
	return c.String()
}

// draw paints parents before children, so nested nodes land on top.
func draw(c *canvas, root *frame.Node, logos *logoCache) {
	root.Walk(func(n *frame.Node) {
		switch n.Kind {
		case frame.KindPanel:
			drawPanel(c, n)
		case frame.KindText:
			drawText(c, n)
		case frame.KindImage:
			drawImage(c, n.Rect, logos)
		}
	})
}

func drawPanel(c *canvas, n *frame.Node) {
	r := n.Rect
	if r.W < 2 || r.H < 2 {
		return
	}
	b := lipgloss.RoundedBorder()
	right, bottom := r.X+r.W-1, r.Y+r.H-1

	c.set(r.X, r.Y, b.TopLeft, borderPen)
	c.set(right, r.Y, b.TopRight, borderPen)
	c.set(r.X, bottom, b.BottomLeft, borderPen)
	c.set(right, bottom, b.BottomRight, borderPen)
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, b.Top, borderPen)
		c.set(x, bottom, b.Bottom, borderPen)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, b.Left, borderPen)
		c.set(right, y, b.Right, borderPen)
	}

	// Title sits on the top border: "╭ Title ───╮".
	if n.Title == "" || r.W < 5 {
		return
	}
	room := r.W - 4
	title := runewidth.Truncate(n.Title, room, ellipsis)
	c.set(r.X+1, r.Y, " ", borderPen)
	c.write(r.X+2, r.Y, room, title, titlePen)
	c.set(r.X+2+runewidth.StringWidth(title), r.Y, " ", borderPen)
}

func drawText(c *canvas, n *frame.Node) {
	r := n.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	lines := n.Lines
	if len(lines) > r.H {
		lines = lines[:r.H]
	}
	top := r.Y
	if n.VAlign == frame.AlignMiddle {
		top += (r.H - len(lines)) / 2
	}
	for i, l := range lines {
		s := runewidth.Truncate(l.Text, r.W, ellipsis)
		x := r.X + (r.W-runewidth.StringWidth(s))/2
		c.write(x, top+i, r.W, s, classPen(l.Class))
	}
}

func drawImage(c *canvas, r frame.Rect, logos *logoCache) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	g := logos.get(r.H, r.W)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cl := g.At(row, col)
			switch {
			case cl.Empty():
			case cl.Bottom.A == 0:
				c.set(r.X+col, r.Y+row, upperHalf, pen{fg: hexColor(cl.Top)})
			case cl.Top.A == 0:
				c.set(r.X+col, r.Y+row, lowerHalf, pen{fg: hexColor(cl.Bottom)})
			default:
				c.set(r.X+col, r.Y+row, upperHalf, pen{fg: hexColor(cl.Top), bg: hexColor(cl.Bottom)})
			}
		}
	}
}
