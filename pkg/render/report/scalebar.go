package report

import (
	"bytes"
	"fmt"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// kmPerDegree is the approximate longitude degree length near the equator.
const kmPerDegree = 111.0

// ScaleKilometers picks the scale bar length for a map of the given width
// in degrees. Wider maps get longer bars so the bar stays a readable
// fraction of the map.
func ScaleKilometers(widthDegrees float64) float64 {
	km := widthDegrees * kmPerDegree
	switch {
	case km > 20:
		return 5
	case km > 10:
		return 2
	case km > 5:
		return 1
	default:
		return 0.5
	}
}

// FormatScaleLabel formats a kilometer value for the bar end labels: meters
// below 1 km, whole or one-decimal kilometers above.
func FormatScaleLabel(km float64) string {
	if km == 0 {
		return "0"
	}
	if km < 1 {
		return fmt.Sprintf("%dm", int(km*1000))
	}
	if km == float64(int(km)) {
		return fmt.Sprintf("%dkm", int(km))
	}
	return fmt.Sprintf("%.1fkm", km)
}

// scaleBarLength converts the chosen bar distance to page units through the
// main map's projection, so the drawn bar measures true map distance. The
// result is capped to 80% of the panel width; without a usable map frame it
// falls back to that cap.
func scaleBarLength(scaleKm, extentWidthDeg, mapFrameW, panelW float64) float64 {
	max := 0.8 * panelW
	if extentWidthDeg <= 0 || mapFrameW <= 0 {
		return max
	}
	w := scaleKm / kmPerDegree / extentWidthDeg * mapFrameW
	if w > max {
		return max
	}
	return w
}

// renderScaleBar draws the alternating-segment scale bar with the SKALA
// heading, end labels and the CRS caption.
func (c *composer) renderScaleBar(buf *bytes.Buffer, f frame, e *layout.Element) {
	scaleKm := ScaleKilometers(c.extent.width())

	writeRect(buf, f, "white", "black", 1.5, ` fill-opacity="0.95"`)

	tx, ty := f.rel(0.5, 0.85)
	writeText(buf, tx, ty+4, "SKALA", "middle", 10, ` font-weight="bold"`)

	// Five alternating segments, centered, sized to the true map distance.
	bar := f.sub(0.1, 0.45, 0.8, 0.18)
	bar.W = scaleBarLength(scaleKm, c.extent.width(), c.mapFrame.W, f.W)
	bar.X = f.X + (f.W-bar.W)/2
	segW := bar.W / 5
	for i := 0; i < 5; i++ {
		fill := "black"
		if i%2 == 1 {
			fill = "white"
		}
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="black" stroke-width="0.8"/>`+"\n",
			bar.X+float64(i)*segW, bar.Y, segW, bar.H, fill)
	}

	// End labels only; intermediate numbers read as clutter at this size.
	writeText(buf, bar.X, bar.Y+bar.H+10, FormatScaleLabel(0), "middle", 8, ` font-weight="bold"`)
	writeText(buf, bar.X+bar.W, bar.Y+bar.H+10, FormatScaleLabel(scaleKm), "middle", 8, ` font-weight="bold"`)

	cx, cy := f.rel(0.5, 0.12)
	writeText(buf, cx, cy, "WGS84 (EPSG:4326) - Derajat Desimal", "middle", 6.5, "")
}
