package report

import (
	"bytes"
	"fmt"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// renderLegend draws the legend: one row per sub-division actually present
// in the data, then the SIMBOL section with the boundary-line and block-code
// samples. Entries are never hardcoded; they come from the layer.
func (c *composer) renderLegend(buf *bytes.Buffer, f frame, e *layout.Element) {
	bg := e.StyleString("background_color", "white")
	writeRect(buf, f, bg, "black", 1, "")
	writeRect(buf, f.sub(0.05, 0.05, 0.9, 0.9), bg, "black", 1, "")

	titleSize := e.StyleFloat("title_font_size", 12)
	itemSize := e.StyleFloat("item_font_size", 10)

	cx, ty := f.rel(0.5, 0.9)
	writeText(buf, cx, ty+titleSize*0.35, e.StyleString("title", "LEGENDA"), "middle", titleSize, ` font-weight="bold"`)
	ux1, uy := f.rel(0.1, 0.85)
	ux2, _ := f.rel(0.9, 0.85)
	writeLine(buf, ux1, uy, ux2, uy, "black", 1)

	rowStep := 0.12
	y := 0.75
	for _, name := range c.data.Primary.DistinctValues(c.data.SubdivisionAttr) {
		patch := f.sub(0.1, y-0.03, 0.12, 0.06)
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.8" stroke="black" stroke-width="0.5"/>`+"\n",
			patch.X, patch.Y, patch.W, patch.H, c.colors.For(name))
		lx, ly := f.rel(0.25, y)
		writeText(buf, lx, ly+itemSize*0.25, truncateLabel(name, 20), "start", itemSize*0.8, "")
		y -= rowStep
	}

	// SIMBOL section.
	y -= 0.05
	sx1, sy := f.rel(0.1, y+0.02)
	sx2, _ := f.rel(0.9, y+0.02)
	writeLine(buf, sx1, sy, sx2, sy, "black", 0.5)
	hx, hy := f.rel(0.5, y-0.02)
	writeText(buf, hx, hy+itemSize*0.3, "SIMBOL", "middle", itemSize*0.9, ` font-weight="bold"`)

	y -= 0.08
	lx1, lly := f.rel(0.1, y)
	lx2, _ := f.rel(0.22, y)
	writeLine(buf, lx1, lly, lx2, lly, "black", 2)
	tx, tly := f.rel(0.3, y)
	writeText(buf, tx, tly+itemSize*0.25, "Batas Area", "start", itemSize*0.8, "")

	y -= 0.08
	box := f.sub(0.08, y-0.025, 0.06, 0.05)
	writeRect(buf, box, "white", "black", 0.5, "")
	bx, by := f.rel(0.11, y)
	writeText(buf, bx, by+itemSize*0.25, "A1", "middle", itemSize*0.75, ` font-weight="bold"`)
	kx, ky := f.rel(0.3, y)
	writeText(buf, kx, ky+itemSize*0.25, "Kode Blok", "start", itemSize*0.8, "")
}
