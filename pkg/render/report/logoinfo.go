package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// renderLogoInfo draws the company block: logo image (or a procedural text
// mark when the asset is unavailable), company name with underline, and the
// production info lines.
func (c *composer) renderLogoInfo(buf *bytes.Buffer, f frame, e *layout.Element) {
	bg := e.StyleString("background_color", "white")
	writeRect(buf, f, bg, "black", 1, "")
	writeRect(buf, f.sub(0.05, 0.05, 0.9, 0.9), bg, "black", 1, "")

	if c.data.LogoURI != "" {
		logo := f.sub(0.1, 0.55, 0.8, 0.35)
		fmt.Fprintf(buf, `<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" href="%s" preserveAspectRatio="xMidYMid meet"/>`+"\n",
			logo.X, logo.Y, logo.W, logo.H, c.data.LogoURI)
	} else {
		c.renderLogoFallback(buf, f)
	}

	size := e.StyleFloat("font_size", 8)

	nx, ny := f.rel(0.5, 0.45)
	writeText(buf, nx, ny+size*0.4, c.data.Company.Name, "middle", size*1.25,
		` font-weight="bold" fill="#1E90FF"`)
	ux1, uy := f.rel(0.1, 0.4)
	ux2, _ := f.rel(0.9, 0.4)
	writeLine(buf, ux1, uy, ux2, uy, "black", 1)

	for i, line := range []string{
		c.data.Company.ProducedFor,
		c.data.Company.Program,
		c.data.Company.Generated,
	} {
		x, y := f.rel(0.5, 0.32-float64(i)*0.07)
		writeText(buf, x, y+size*0.35, line, "middle", size, "")
	}
}

// renderLogoFallback draws the text company mark used when the logo image
// cannot be loaded.
func (c *composer) renderLogoFallback(buf *bytes.Buffer, f frame) {
	words := strings.Fields(c.data.Company.Name)
	head := c.data.Company.Name
	tail := ""
	if len(words) > 1 {
		head = strings.Join(words[:len(words)-1], " ")
		tail = words[len(words)-1]
	}

	hx, hy := f.rel(0.5, 0.75)
	writeText(buf, hx, hy+5, head, "middle", 14, ` font-weight="bold" fill="#1E90FF"`)
	if tail != "" {
		tx, ty := f.rel(0.5, 0.65)
		writeText(buf, tx, ty+4, tail, "middle", 12, ` font-weight="bold" fill="#FF6B35"`)
	}
	box := f.sub(0.25, 0.55, 0.5, 0.25)
	writeRect(buf, box, "none", "#1E90FF", 2, "")
}
