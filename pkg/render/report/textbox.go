package report

import (
	"bytes"
	"strings"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// renderTextBox draws a free text panel with styled font, colors and an
// optional border.
func (c *composer) renderTextBox(buf *bytes.Buffer, f frame, e *layout.Element) {
	bg := e.StyleString("background_color", "white")
	if e.StyleBool("border", true) {
		writeRect(buf, f, bg, "black", e.StyleFloat("border_width", 1), "")
	} else {
		writeRect(buf, f, bg, "none", 0, "")
	}

	size := e.StyleFloat("font_size", 12)
	color := e.StyleString("text_color", "black")
	lines := strings.Split(e.StyleString("text", ""), "\n")
	cx := f.X + f.W/2
	cy := f.Y + f.H/2
	writeTextLines(buf, cx, cy, lines, size, size*1.3, ` fill="`+color+`"`)
}
