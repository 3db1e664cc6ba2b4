package logo

import (
	"image"
	"image/color"
	"math"
)

// Cell is one terminal character cell covering two stacked pixels.
// A pixel with zero alpha is empty and shows the terminal background.
type Cell struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Empty reports whether neither half of c is drawn.
func (c Cell) Empty() bool {
	return c.Top.A == 0 && c.Bottom.A == 0
}

// Grid is a rows x cols block of cells in row-major order.
type Grid struct {
	Rows  int
	Cols  int
	Cells []Cell
}

// At returns the cell at row r, column c.
func (g Grid) At(r, c int) Cell {
	return g.Cells[r*g.Cols+c]
}

// Blit scales img to fit rows x cols cells without distortion. Each cell holds
// two vertical pixels, so the target canvas is cols wide and 2*rows tall.
// Unused space is left empty on both sides of the scaled image.
func Blit(img image.Image, rows, cols int) Grid {
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}
	g := Grid{Rows: rows, Cols: cols, Cells: make([]Cell, rows*cols)}
	if img == nil {
		return g
	}

	src := img.Bounds()
	srcW, srcH := src.Dx(), src.Dy()
	if srcW <= 0 || srcH <= 0 {
		return g
	}

	dstW, dstH := cols, rows*2
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	scaledW := int(float64(srcW) * scale)
	scaledH := int(float64(srcH) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	// Centre on whole cell rows so the image starts on a top half. With an
	// odd number of spare rows the extra one goes below.
	offX := (dstW - scaledW) / 2
	offY := 2 * ((rows - (scaledH+1)/2) / 2)

	// Source spans for every target column and row inside the scaled image.
	xSpans := spans(scaledW, srcW, src.Min.X)
	ySpans := spans(scaledH, srcH, src.Min.Y)

	pixel := func(x, y int) color.RGBA {
		sx, sy := x-offX, y-offY
		if sx < 0 || sx >= scaledW || sy < 0 || sy >= scaledH {
			return color.RGBA{}
		}
		return average(img, xSpans[sx], ySpans[sy])
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Cells[r*cols+c] = Cell{
				Top:    pixel(c, 2*r),
				Bottom: pixel(c, 2*r+1),
			}
		}
	}
	return g
}

type span struct{ lo, hi int }

// spans maps each of n target pixels onto the half-open source range it
// covers. Ranges are never empty.
func spans(n, srcLen, origin int) []span {
	out := make([]span, n)
	for i := 0; i < n; i++ {
		lo := i * srcLen / n
		hi := (i + 1) * srcLen / n
		if hi <= lo {
			hi = lo + 1
		}
		if hi > srcLen {
			hi = srcLen
			lo = hi - 1
		}
		out[i] = span{origin + lo, origin + hi}
	}
	return out
}

// average box-filters the source block. Colour is alpha weighted; a block
// that is mostly transparent comes out empty.
func average(img image.Image, xs, ys span) color.RGBA {
	var r, g, b, a, n uint64
	for y := ys.lo; y < ys.hi; y++ {
		for x := xs.lo; x < xs.hi; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
			n++
		}
	}
	if n == 0 || a/n < 0x8000 {
		return color.RGBA{}
	}
	// RGBA() is alpha premultiplied; divide by total alpha to recover colour.
	return color.RGBA{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(b * 0xff / a),
		A: 0xff,
	}
}
