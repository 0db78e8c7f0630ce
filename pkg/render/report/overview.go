package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// Overview inset fills by admin-area name: the eastern regency gets light
// blue, the rest of the island light green, anything else gray.
const (
	overviewEastFill  = "#ADD8E6"
	overviewWestFill  = "#90EE90"
	overviewOtherFill = "#D3D3D3"
)

// renderOverview draws the island inset: admin polygons, the primary layer's
// footprint with a red bounding rectangle and center marker. A missing or
// empty overview layer degrades to a schematic placeholder.
func (c *composer) renderOverview(buf *bytes.Buffer, f frame, e *layout.Element) {
	bg := e.StyleString("background_color", "white")
	writeRect(buf, f, bg, "black", 1, "")
	writeRect(buf, f.sub(0.05, 0.05, 0.9, 0.9), bg, "black", 1, "")

	titleSize := e.StyleFloat("title_font_size", 10)
	cx, ty := f.rel(0.5, 0.9)
	writeText(buf, cx, ty+titleSize*0.35, e.StyleString("title", "LOKASI DALAM BELITUNG"),
		"middle", titleSize, ` font-weight="bold"`)

	inner := f.sub(0.15, 0.2, 0.7, 0.6)

	if c.data.Overview.Empty() {
		c.renderOverviewFallback(buf, inner)
		return
	}

	ovExtent := newExtent(c.data.Overview.Bound(), 0.1)
	proj := ovExtent.proj(inner)

	clipID := fmt.Sprintf("clip-%s", e.Name)
	fmt.Fprintf(buf, `<clipPath id="%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
		clipID, inner.X, inner.Y, inner.W, inner.H)
	fmt.Fprintf(buf, `<g clip-path="url(#%s)">`+"\n", clipID)

	for _, feat := range c.data.Overview.Features {
		path := geometryPath(feat.Geometry, proj)
		if path == "" {
			continue
		}
		fmt.Fprintf(buf, `<path d="%s" fill="%s" fill-opacity="0.7" stroke="black" stroke-width="0.8"/>`+"\n",
			path, overviewFill(feat.Attr(c.data.OverviewAttr)))
	}

	// Primary footprint in its sub-division colors with a dark red edge.
	for _, feat := range c.data.Primary.Features {
		path := geometryPath(feat.Geometry, proj)
		if path == "" {
			continue
		}
		fmt.Fprintf(buf, `<path d="%s" fill="%s" fill-opacity="0.8" stroke="darkred" stroke-width="2"/>`+"\n",
			path, c.colors.For(feat.Attr(c.data.SubdivisionAttr)))
	}

	// Red bounding rectangle plus center marker over the study area.
	b := c.data.Primary.Bound()
	x1, y1 := proj(orb.Point{b.Min[0], b.Max[1]})
	x2, y2 := proj(orb.Point{b.Max[0], b.Min[1]})
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="red" stroke-width="3" stroke-opacity="0.9"/>`+"\n",
		x1, y1, x2-x1, y2-y1)
	mx, my := proj(b.Center())
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="8" height="8" fill="red" stroke="darkred" stroke-width="2"/>`+"\n",
		mx-4, my-4)

	buf.WriteString("</g>\n")
	writeRect(buf, inner, "none", "black", 1.5, "")
}

// overviewFill picks the inset fill color for an admin-area name.
func overviewFill(name string) string {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "BELITUNG TIMUR"):
		return overviewEastFill
	case strings.Contains(upper, "BELITUNG"):
		return overviewWestFill
	default:
		return overviewOtherFill
	}
}

// renderOverviewFallback draws a schematic island blob when no overview
// layer is available.
func (c *composer) renderOverviewFallback(buf *bytes.Buffer, inner frame) {
	writeRect(buf, inner, "#F0F8FF", "black", 1, "")
	pts := [][2]float64{
		{0.15, 0.45}, {0.25, 0.65}, {0.45, 0.75}, {0.65, 0.70},
		{0.85, 0.55}, {0.80, 0.35}, {0.60, 0.25}, {0.35, 0.28}, {0.20, 0.33},
	}
	var sb strings.Builder
	for i, p := range pts {
		x, y := inner.rel(p[0], p[1])
		if i == 0 {
			fmt.Fprintf(&sb, "M%.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&sb, "L%.2f %.2f", x, y)
		}
	}
	sb.WriteString("Z")
	fmt.Fprintf(buf, `<path d="%s" fill="%s" fill-opacity="0.7" stroke="black" stroke-width="0.8"/>`+"\n",
		sb.String(), overviewWestFill)
	cx, cy := inner.rel(0.5, 0.12)
	writeText(buf, cx, cy, "Data tidak tersedia", "middle", 7, ` fill="#555555"`)
}
