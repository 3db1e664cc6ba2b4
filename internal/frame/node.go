package frame

// Kind is the type of a draw command.
type Kind int

const (
	KindBlank Kind = iota
	KindPanel
	KindColumn
	KindRow
	KindText
	KindImage
)

// VAlign is the vertical placement of text inside its rect.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
)

// Rect is a cell-aligned area of the terminal.
type Rect struct {
	X, Y, W, H int
}

// Inset shrinks r by n cells on every side, never below zero size.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// SplitV cuts r into a top part of pct percent of the height and the rest.
func (r Rect) SplitV(pct int) (top, bottom Rect) {
	h := r.H * pct / 100
	return Rect{X: r.X, Y: r.Y, W: r.W, H: h},
		Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
}

// SplitH cuts r into a left part of pct percent of the width and the rest.
func (r Rect) SplitH(pct int) (left, right Rect) {
	w := r.W * pct / 100
	return Rect{X: r.X, Y: r.Y, W: w, H: r.H},
		Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
}

// Rows cuts r into stacked rects of the given heights. The last rect takes
// whatever height is left. Heights are clipped to what remains.
func (r Rect) Rows(heights ...int) []Rect {
	out := make([]Rect, 0, len(heights)+1)
	y, left := r.Y, r.H
	for _, h := range heights {
		if h > left {
			h = left
		}
		if h < 0 {
			h = 0
		}
		out = append(out, Rect{X: r.X, Y: y, W: r.W, H: h})
		y += h
		left -= h
	}
	return append(out, Rect{X: r.X, Y: y, W: r.W, H: left})
}

// Node is one draw command. A frame is a tree of nodes whose rects nest:
// a Panel draws a border around Rect and holds one child inside it, a
// Column stacks its children, a Row places them side by side.
type Node struct {
	Kind     Kind
	Rect     Rect
	Title    string
	Lines    []StyledLine
	VAlign   VAlign
	Children []*Node
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func blank(r Rect) *Node {
	return &Node{Kind: KindBlank, Rect: r}
}

func panel(r Rect, title string, child *Node) *Node {
	return &Node{Kind: KindPanel, Rect: r, Title: title, Children: []*Node{child}}
}

func text(r Rect, v VAlign, lines ...StyledLine) *Node {
	return &Node{Kind: KindText, Rect: r, VAlign: v, Lines: lines}
}
