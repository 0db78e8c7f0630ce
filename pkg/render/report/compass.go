package report

import (
	"bytes"
	"fmt"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// renderCompass draws the compass overlay: the compass image on a white
// circle when the asset loaded, a procedural rose otherwise.
func (c *composer) renderCompass(buf *bytes.Buffer, f frame, e *layout.Element) {
	cx := f.X + f.W/2
	cy := f.Y + f.H/2
	r := f.W / 2
	if f.H/2 < r {
		r = f.H / 2
	}

	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="white" fill-opacity="0.95" stroke="black" stroke-width="1.5"/>`+"\n",
		cx, cy, r)

	if c.data.CompassURI != "" && e.StyleString("style", "image") == "image" {
		img := r * 1.4
		fmt.Fprintf(buf, `<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" href="%s" preserveAspectRatio="xMidYMid meet"/>`+"\n",
			cx-img/2, cy-img/2, img, img, c.data.CompassURI)
	} else {
		c.renderCompassRose(buf, cx, cy, r*0.8)
	}

	writeText(buf, cx, cy+r+10, "UTARA", "middle", 8, ` font-weight="bold" fill="darkred"`)
}

// renderCompassRose draws the procedural four-point rose with a red north
// needle.
func (c *composer) renderCompassRose(buf *bytes.Buffer, cx, cy, r float64) {
	w := r * 0.22
	// North (red) and south needles.
	fmt.Fprintf(buf, `<path d="M%.2f %.2fL%.2f %.2fL%.2f %.2fZ" fill="red" stroke="black" stroke-width="0.5"/>`+"\n",
		cx, cy-r, cx-w, cy, cx+w, cy)
	fmt.Fprintf(buf, `<path d="M%.2f %.2fL%.2f %.2fL%.2f %.2fZ" fill="white" stroke="black" stroke-width="0.5"/>`+"\n",
		cx, cy+r, cx-w, cy, cx+w, cy)
	// East and west needles, smaller.
	fmt.Fprintf(buf, `<path d="M%.2f %.2fL%.2f %.2fL%.2f %.2fZ" fill="#444444" stroke="black" stroke-width="0.5"/>`+"\n",
		cx+r*0.7, cy, cx, cy-w, cx, cy+w)
	fmt.Fprintf(buf, `<path d="M%.2f %.2fL%.2f %.2fL%.2f %.2fZ" fill="#444444" stroke="black" stroke-width="0.5"/>`+"\n",
		cx-r*0.7, cy, cx, cy-w, cx, cy+w)
	writeText(buf, cx, cy-r-3, "N", "middle", 10, ` font-weight="bold" fill="red"`)
}
