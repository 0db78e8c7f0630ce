package report

import (
	"bytes"
	"strings"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// renderTitle draws the nested-box title block with an underline, matching
// the surveyor layout: outer border, inner box, centered bold title.
func (c *composer) renderTitle(buf *bytes.Buffer, f frame, e *layout.Element) {
	bg := e.StyleString("background_color", "white")
	writeRect(buf, f, bg, "black", 1, "")
	writeRect(buf, f.sub(0.05, 0.2, 0.9, 0.6), bg, "black", 1, "")

	size := e.StyleFloat("font_size", 14)
	color := e.StyleString("text_color", "black")
	lines := strings.Split(e.StyleString("text", c.data.Title), "\n")
	cx, cy := f.rel(0.5, 0.6)
	writeTextLines(buf, cx, cy, lines, size, size*1.25,
		` font-weight="bold" fill="`+color+`"`)

	x1, y := f.rel(0.1, 0.45)
	x2, _ := f.rel(0.9, 0.45)
	writeLine(buf, x1, y, x2, y, "black", 1)
}
