// Package report composes the map report page as SVG.
//
// Compose walks the layout model in draw order and renders each visible
// element into an A3 landscape page. Panel-local problems (missing assets,
// missing overview data, unrecognized element kinds) degrade to fallbacks or
// skips; only an unusable primary layer is fatal.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/geo"
	"github.com/sawitlabs/petamap/pkg/layout"
)

// CompanyInfo is the text content of the logo_info panel.
type CompanyInfo struct {
	Name        string
	ProducedFor string
	Program     string
	Generated   string
}

// Data carries everything the renderer needs besides the layout model.
type Data struct {
	// Primary is the sub-division layer, already normalized to WGS84.
	Primary *geo.Layer
	// Overview is the island admin-boundary layer for the inset; optional.
	Overview *geo.Layer

	Title   string
	Company CompanyInfo

	// LogoURI and CompassURI are data URIs for the image assets; empty
	// values select the procedural fallbacks.
	LogoURI    string
	CompassURI string

	// Attribute names in the primary and overview layers.
	SubdivisionAttr string
	BlockAttr       string
	OverviewAttr    string

	ColorOverrides map[string]string
}

func (d *Data) setDefaults() {
	if d.Title == "" {
		d.Title = "PETA KEBUN\nPT. REBINMAS JAYA"
	}
	if d.Company.Name == "" {
		d.Company.Name = "PT. REBINMAS JAYA"
	}
	if d.Company.ProducedFor == "" {
		d.Company.ProducedFor = "Diproduksi untuk : " + d.Company.Name
	}
	if d.Company.Program == "" {
		d.Company.Program = "Program: IT Rebinmas | Data: Surveyor RMJ"
	}
	if d.Company.Generated == "" {
		d.Company.Generated = "Generated: " + time.Now().Format("January 2006")
	}
	if d.SubdivisionAttr == "" {
		d.SubdivisionAttr = "SUB_DIVISI"
	}
	if d.BlockAttr == "" {
		d.BlockAttr = "BLOK"
	}
	if d.OverviewAttr == "" {
		d.OverviewAttr = "WADMKK"
	}
}

type composer struct {
	data   *Data
	colors *ColorMap
	logger *log.Logger
	// extent is the main map extent in degrees, set before panels render so
	// the scale bar can derive its tier from it.
	extent extent
	// mapFrame is the main_map panel frame in page units; the scale bar
	// converts kilometers to page units through it. Zero when the layout
	// carries no usable main_map.
	mapFrame frame
}

// Option configures Compose.
type Option func(*composer)

// WithLogger routes skip warnings to the given logger.
func WithLogger(l *log.Logger) Option {
	return func(c *composer) { c.logger = l }
}

// Compose renders the full report page as SVG bytes.
func Compose(m *layout.Model, d *Data, opts ...Option) ([]byte, error) {
	if d == nil || d.Primary.Empty() {
		return nil, errors.New(errors.ErrCodeDataSource, "no features to render")
	}
	d.setDefaults()

	c := &composer{
		data:   d,
		colors: NewColorMap(d.ColorOverrides),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.extent = newExtent(d.Primary.Bound(), 0.05)
	for _, e := range m.Elements() {
		if e.Kind == layout.KindMainMap && e.Position.Width > 0 && e.Position.Height > 0 {
			c.mapFrame = elementFrame(e)
			break
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2fpt" height="%.2fpt">`+"\n",
		pageWidth, pageHeight, pageWidth, pageHeight)
	writeRect(&buf, frame{X: 0, Y: 0, W: pageWidth, H: pageHeight}, "white", "none", 0, "")
	// Blue border around the whole page.
	writeRect(&buf, frame{
		X: 0.01 * pageWidth, Y: 0.01 * pageHeight,
		W: 0.98 * pageWidth, H: 0.98 * pageHeight,
	}, "none", "blue", 3, "")

	for _, e := range m.Elements() {
		if !e.Visible {
			continue
		}
		if !layout.IsKnown(e.Kind) {
			c.logger.Warn("skipping element of unrecognized kind", "element", e.Name, "kind", e.Kind)
			continue
		}
		if e.Position.Width <= 0 || e.Position.Height <= 0 {
			c.logger.Warn("skipping element with non-positive size", "element", e.Name)
			continue
		}
		f := elementFrame(e)
		switch e.Kind {
		case layout.KindMainMap:
			c.renderMainMap(&buf, f, e)
		case layout.KindTitle:
			c.renderTitle(&buf, f, e)
		case layout.KindLegend:
			c.renderLegend(&buf, f, e)
		case layout.KindOverview:
			c.renderOverview(&buf, f, e)
		case layout.KindLogoInfo:
			c.renderLogoInfo(&buf, f, e)
		case layout.KindCompass:
			c.renderCompass(&buf, f, e)
		case layout.KindScaleBar:
			c.renderScaleBar(&buf, f, e)
		case layout.KindTextBox:
			c.renderTextBox(&buf, f, e)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// elementFrame converts an element's normalized rectangle to page units,
// flipping from bottom-left page coordinates to SVG's top-left origin.
func elementFrame(e *layout.Element) frame {
	return frame{
		X: e.Position.Left * pageWidth,
		Y: (1 - e.Position.Bottom - e.Position.Height) * pageHeight,
		W: e.Position.Width * pageWidth,
		H: e.Position.Height * pageHeight,
	}
}
