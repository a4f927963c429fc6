package layout

import (
	"math"
	"strings"

	"flexlayout/pkg/text"
)

// layoutTextRun breaks the text of the context box into lines. The width
// used for breaking is the run's own definite width, else the available
// width. Under a min-content constraint every word gets its own line; with
// no limit the text stays on one line.
func (c *BlockFormattingContext) layoutTextRun(space AvailableSpace) {
	box := c.box
	m := c.state.env.measurer
	fontSize := box.Style.GetFontSize()
	lineHeight := box.Style.GetLineHeight()

	u := c.state.GetMutable(box)
	var lines []string
	widest := 0.0
	switch {
	case u.HasDefiniteWidth():
		lines = text.BreakLines(m, box.Text, fontSize, u.ContentWidth())
		widest = widestLine(m, lines, fontSize)
	case space.Width.IsDefinite():
		lines = text.BreakLines(m, box.Text, fontSize, space.Width.ToPx())
		widest = widestLine(m, lines, fontSize)
	case space.Width.IsMinContent():
		lines = text.BreakLines(m, box.Text, fontSize, 0)
		widest = text.MinContentWidth(m, box.Text, fontSize)
	default:
		if words := text.SplitWords(box.Text); len(words) > 0 {
			lines = []string{strings.Join(words, " ")}
		}
		widest = text.MaxContentWidth(m, box.Text, fontSize)
	}

	u.Lines = lines
	c.autoWidth = widest
	c.autoHeight = float64(len(lines)) * lineHeight
}

func widestLine(m text.Measurer, lines []string, fontSize float64) float64 {
	widest := 0.0
	for _, line := range lines {
		w, _ := m.Measure(line, fontSize)
		widest = math.Max(widest, w)
	}
	return widest
}
