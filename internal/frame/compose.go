// Package frame turns a quote and a layout profile into a tree of draw
// commands. Nothing here touches the terminal.
package frame

import (
	"github.com/kurtsley/nanoterm/internal/layout"
	"github.com/kurtsley/nanoterm/internal/quote"
)

const (
	DefaultTitle = "Nanoterm by Kurtsley"

	TooSmallNotice = "Terminal too small!"
	QuitHint       = "press 'q' to exit"
	Credit         = "made with bubbletea - https://github.com/charmbracelet/bubbletea"

	LabelChange24h = "Change 24h"
	LabelChange1h  = "Change 1h"

	contentPercent = 88
)

// Geometry is the size of the terminal in cells.
type Geometry struct {
	Width  int
	Height int
}

// Composer builds frames.
type Composer struct {
	Title  string
	Format Format
}

// NewComposer returns a Composer with the default title.
func NewComposer(f Format) Composer {
	return Composer{Title: DefaultTitle, Format: f}
}

func (c Composer) root(g Geometry) Rect {
	return Rect{W: max(g.Width, 0), H: max(g.Height, 0)}
}

// Notice builds a frame holding only a centred message.
func (c Composer) Notice(g Geometry, msg string) *Node {
	r := c.root(g)
	return panel(r, c.Title, text(r.Inset(1), AlignMiddle, StyledLine{Text: msg, Class: Neutral}))
}

// Compose builds the dashboard frame for q.
func (c Composer) Compose(q quote.Quote, p layout.Profile, g Geometry) *Node {
	if p.TooSmall {
		return c.Notice(g, TooSmallNotice)
	}

	r := c.root(g)
	inner := r.Inset(2)
	content, footer := inner.SplitV(contentPercent)
	imgPane, infoPane := content.SplitH(50)

	logoPane := panel(imgPane, "", &Node{Kind: KindImage, Rect: imgPane.Inset(1)})

	title := "Info"
	if q.Stale {
		title += " · stale since " + q.FetchedAt.Format("15:04:05")
	}
	area := infoPane.Inset(1)
	lines := c.infoLines(q, p)
	body := min(len(lines), area.H)
	above, _ := padding(area.H-body, int(p.LeadingBlankLines), int(p.TrailingBlankLines))
	parts := area.Rows(above, body)
	info := panel(infoPane, title, &Node{
		Kind: KindColumn,
		Rect: area,
		Children: []*Node{
			blank(parts[0]),
			text(parts[1], AlignTop, lines...),
			blank(parts[2]),
		},
	})

	return panel(r, c.Title, &Node{
		Kind: KindColumn,
		Rect: inner,
		Children: []*Node{
			{Kind: KindRow, Rect: content, Children: []*Node{logoPane, info}},
			text(footer, AlignTop,
				StyledLine{Text: QuitHint, Class: Neutral},
				StyledLine{Text: Credit, Class: Muted},
			),
		},
	})
}

// padding splits free rows around the info body. The profile's lead and
// trail come first; rows left over are shared so the body stays centred.
// When there is less room than the profile asks for, both sides shrink
// evenly.
func padding(free, lead, trail int) (above, below int) {
	if free <= 0 {
		return 0, 0
	}
	if slack := free - lead - trail; slack >= 0 {
		above = lead + slack/2
		return above, free - above
	}
	above = min(lead, free/2)
	return above, free - above
}

func (c Composer) infoLines(q quote.Quote, p layout.Profile) []StyledLine {
	sep := func(lines []StyledLine) []StyledLine {
		if p.Separators {
			return append(lines, StyledLine{})
		}
		return lines
	}

	lines := []StyledLine{Price(q.Price, c.Format)}
	lines = sep(lines)
	lines = append(lines, Style(q.Change24h, LabelChange24h, c.Format))
	if p.ShowChange1h && q.HasChange1h() {
		lines = sep(lines)
		lines = append(lines, Style(*q.Change1h, LabelChange1h, c.Format))
	}
	return lines
}
