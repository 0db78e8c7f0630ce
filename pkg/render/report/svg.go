package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// A3 landscape in points. rsvg-convert honors the pt dimensions, so the PDF
// comes out as a physical A3 page.
const (
	pageWidth  = 1190.55
	pageHeight = 841.89
)

// frame is a panel rectangle in page points, origin top-left (SVG space).
type frame struct {
	X, Y, W, H float64
}

// rel converts panel-relative coordinates (unit square, origin bottom-left,
// matching the layout convention) to page points.
func (f frame) rel(x, y float64) (float64, float64) {
	return f.X + x*f.W, f.Y + (1-y)*f.H
}

// sub returns the frame of a nested rectangle given in panel-relative
// coordinates.
func (f frame) sub(left, bottom, width, height float64) frame {
	x, y := f.rel(left, bottom+height)
	return frame{X: x, Y: y, W: width * f.W, H: height * f.H}
}

func esc(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func writeRect(buf *bytes.Buffer, f frame, fill, stroke string, strokeWidth float64, attrs string) {
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		f.X, f.Y, f.W, f.H, fill, stroke, strokeWidth, attrs)
}

func writeLine(buf *bytes.Buffer, x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, stroke, width)
}

// writeText emits a text element. anchor is start/middle/end; y is the
// baseline in page points.
func writeText(buf *bytes.Buffer, x, y float64, text, anchor string, size float64, attrs string) {
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="%s" font-family="Helvetica, Arial, sans-serif" font-size="%.1f"%s>%s</text>`+"\n",
		x, y, anchor, size, attrs, esc(text))
}

// writeTextLines emits centered multi-line text around (x, y) with the given
// line height.
func writeTextLines(buf *bytes.Buffer, x, y float64, lines []string, size, lineHeight float64, attrs string) {
	top := y - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		writeText(buf, x, top+float64(i)*lineHeight+size*0.35, line, "middle", size, attrs)
	}
}

// geometryPath builds SVG path data for polygonal geometry, projecting each
// point through proj.
func geometryPath(g orb.Geometry, proj func(orb.Point) (float64, float64)) string {
	var sb strings.Builder
	var ring func(r orb.Ring)
	ring = func(r orb.Ring) {
		for i, p := range r {
			x, y := proj(p)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.2f %.2f", x, y)
			} else {
				fmt.Fprintf(&sb, "L%.2f %.2f", x, y)
			}
		}
		sb.WriteString("Z")
	}
	switch g := g.(type) {
	case orb.Polygon:
		for _, r := range g {
			ring(r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				ring(r)
			}
		}
	case orb.Ring:
		ring(g)
	case orb.LineString:
		for i, p := range g {
			x, y := proj(p)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.2f %.2f", x, y)
			} else {
				fmt.Fprintf(&sb, "L%.2f %.2f", x, y)
			}
		}
	case orb.MultiLineString:
		for _, ls := range g {
			sb.WriteString(geometryPath(ls, proj))
		}
	}
	return sb.String()
}

// niceStep rounds a raw interval up to a 1/2/5 multiple of a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := 1.0
	for raw >= 10 {
		raw /= 10
		mag *= 10
	}
	for raw < 1 {
		raw *= 10
		mag /= 10
	}
	switch {
	case raw <= 1:
		return 1 * mag
	case raw <= 2:
		return 2 * mag
	case raw <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// truncateLabel shortens long names for legend rows.
func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
