// Package pipeline runs the load → compose → convert pipeline for map
// reports.
//
// The pipeline consists of three stages:
//
//  1. Load: read the primary geospatial input, normalize to WGS84, apply
//     the sub-division filter, and load the layout model.
//  2. Compose: render the layout model and data to a page SVG.
//  3. Convert: produce the requested delivery formats (PDF/PNG) from the
//     SVG via rsvg-convert.
//
// Finished artifacts are cached by content: the same input bytes, layout
// document and options never render twice.
//
// Usage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "kebun.shp",
//	    Formats: []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sawitlabs/petamap/pkg/cache"
	"github.com/sawitlabs/petamap/pkg/config"
	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/geo"
	"github.com/sawitlabs/petamap/pkg/layout"
)

// DefaultDPI is the raster resolution used when none is configured.
const DefaultDPI = 300

// TTLArtifact is how long cached artifacts live. Inputs are keyed by
// content hash, so a long TTL is safe; this mainly bounds disk usage.
const TTLArtifact = 30 * 24 * time.Hour

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the primary geospatial input (.shp, .json, .geojson).
	Input string `json:"input"`

	// LayoutPath selects a layout file; empty uses the shipped defaults.
	LayoutPath string `json:"layout,omitempty"`

	// Subdivisions restricts rendering to the named sub-divisions.
	Subdivisions []string `json:"subdivisions,omitempty"`

	Formats []string `json:"formats,omitempty"`
	DPI     int      `json:"dpi,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Config *config.Config `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// Model is the layout model that was rendered.
	Model *layout.Model

	// Layer is the loaded, filtered primary layer.
	Layer *geo.Layer

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FeatureCount int
	ElementCount int
	LoadTime     time.Duration
	ComposeTime  time.Duration
	ConvertTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.DPI == 0 {
		o.DPI = o.Config.Output.DPI
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		DPI:          o.DPI,
		Subdivisions: o.Subdivisions,
	}
}
