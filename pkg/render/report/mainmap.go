package report

import (
	"bytes"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// extent is the main map's geographic window in degrees.
type extent struct {
	minX, minY, maxX, maxY float64
}

// newExtent pads a bound by the given fractional margin on each side.
func newExtent(b orb.Bound, margin float64) extent {
	mx := (b.Max[0] - b.Min[0]) * margin
	my := (b.Max[1] - b.Min[1]) * margin
	return extent{
		minX: b.Min[0] - mx,
		minY: b.Min[1] - my,
		maxX: b.Max[0] + mx,
		maxY: b.Max[1] + my,
	}
}

func (e extent) width() float64  { return e.maxX - e.minX }
func (e extent) height() float64 { return e.maxY - e.minY }

// proj maps degrees into a frame, flipping y for SVG space.
func (e extent) proj(f frame) func(orb.Point) (float64, float64) {
	return func(p orb.Point) (float64, float64) {
		x := f.X + (p[0]-e.minX)/e.width()*f.W
		y := f.Y + (e.maxY-p[1])/e.height()*f.H
		return x, y
	}
}

// renderMainMap draws the sub-division polygons, block-code labels, the
// graticule ticks with plus markers, and the panel border.
func (c *composer) renderMainMap(buf *bytes.Buffer, f frame, e *layout.Element) {
	proj := c.extent.proj(f)

	clipID := fmt.Sprintf("clip-%s", e.Name)
	fmt.Fprintf(buf, `<clipPath id="%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
		clipID, f.X, f.Y, f.W, f.H)
	writeRect(buf, f, "white", "none", 0, "")
	fmt.Fprintf(buf, `<g clip-path="url(#%s)">`+"\n", clipID)

	for _, feat := range c.data.Primary.Features {
		path := geometryPath(feat.Geometry, proj)
		if path == "" {
			continue
		}
		color := c.colors.For(feat.Attr(c.data.SubdivisionAttr))
		fmt.Fprintf(buf, `<path d="%s" fill="%s" fill-opacity="0.8" stroke="black" stroke-width="0.8"/>`+"\n",
			path, color)
	}

	c.renderGraticule(buf, f, proj)

	// Block-code labels on white halo boxes, at polygon centroids.
	for _, feat := range c.data.Primary.Features {
		code := feat.Attr(c.data.BlockAttr)
		if code == "" {
			continue
		}
		x, y := proj(feat.LabelPoint())
		w := float64(len(code))*4.6 + 5
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="11" rx="2" fill="white" fill-opacity="0.9" stroke="black" stroke-width="0.5"/>`+"\n",
			x-w/2, y-5.5, w)
		writeText(buf, x, y+2.8, code, "middle", 7, ` font-weight="bold"`)
	}

	buf.WriteString("</g>\n")

	if e.StyleBool("border", true) {
		writeRect(buf, f, "none",
			e.StyleString("border_color", "black"),
			e.StyleFloat("border_width", 2), "")
	}
}

// renderGraticule draws coordinate ticks on the frame edges and plus markers
// at every tick intersection inside the map.
func (c *composer) renderGraticule(buf *bytes.Buffer, f frame, proj func(orb.Point) (float64, float64)) {
	stepX := niceStep(c.extent.width() / 5)
	stepY := niceStep(c.extent.height() / 5)

	var xTicks, yTicks []float64
	for x := float64(int(c.extent.minX/stepX))*stepX - stepX; x <= c.extent.maxX; x += stepX {
		if x >= c.extent.minX {
			xTicks = append(xTicks, x)
		}
	}
	for y := float64(int(c.extent.minY/stepY))*stepY - stepY; y <= c.extent.maxY; y += stepY {
		if y >= c.extent.minY {
			yTicks = append(yTicks, y)
		}
	}

	plusX := f.W * 0.004 * 2
	plusY := f.H * 0.004 * 2
	for _, x := range xTicks {
		for _, y := range yTicks {
			px, py := proj(orb.Point{x, y})
			writeLine(buf, px-plusX, py, px+plusX, py, "black", 1.2)
			writeLine(buf, px, py-plusY, px, py+plusY, "black", 1.2)
		}
	}

	for _, x := range xTicks {
		px, _ := proj(orb.Point{x, c.extent.minY})
		writeText(buf, px, f.Y+f.H+12, fmt.Sprintf("%.5f", x), "middle", 8, ` font-weight="bold"`)
	}
	for _, y := range yTicks {
		_, py := proj(orb.Point{c.extent.minX, y})
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="8.0" font-weight="bold" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
			f.X-10, py, f.X-10, py, fmt.Sprintf("%.4f", y))
	}
}
