package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sawitlabs/petamap/pkg/assets"
	"github.com/sawitlabs/petamap/pkg/cache"
	"github.com/sawitlabs/petamap/pkg/config"
	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/geo"
	"github.com/sawitlabs/petamap/pkg/layout"
	"github.com/sawitlabs/petamap/pkg/render"
	"github.com/sawitlabs/petamap/pkg/render/report"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → compose → convert pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	// The runner's logger must land before validation installs its discard
	// fallback.
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run_id", result.RunID)

	// Stage 1: Load
	loadStart := time.Now()
	inputBytes, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read input %s", opts.Input)
	}
	layer, err := geo.Read(opts.Input, opts.Config.Data.UTMZone)
	if err != nil {
		return nil, err
	}
	subdivAttr := opts.Config.Data.SubdivisionAttr
	if subdivAttr == "" {
		subdivAttr = "SUB_DIVISI"
	}
	layer = layer.Filter(subdivAttr, opts.Subdivisions)
	if layer.Empty() {
		return nil, errors.New(errors.ErrCodeDataSource,
			"no features left after sub-division filter %v", opts.Subdivisions)
	}
	result.Layer = layer

	model, err := r.loadModel(opts)
	if err != nil {
		return nil, err
	}
	result.Model = model
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.FeatureCount = len(layer.Features)
	result.Stats.ElementCount = model.Len()

	logger.Info("loaded input",
		"features", result.Stats.FeatureCount,
		"elements", result.Stats.ElementCount,
		"duration", result.Stats.LoadTime)

	// Cache keys: input content, layout document, options.
	layoutJSON, err := model.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	inputHash := cache.Hash(inputBytes)
	layoutHash := cache.Hash(layoutJSON)
	keyer := r.keyerFor(opts.Config)

	// Try cache for every requested format.
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := keyer.ArtifactKey(inputHash, layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				artifacts = nil
				break
			}
			artifacts[format] = data
		}
		if artifacts != nil {
			result.Artifacts = artifacts
			result.CacheInfo.ArtifactHit = true
			logger.Info("all artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Compose
	composeStart := time.Now()
	data := r.buildData(logger, opts, layer)
	svg, err := report.Compose(model, data, report.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	result.Stats.ComposeTime = time.Since(composeStart)
	logger.Info("composed page", "bytes", len(svg), "duration", result.Stats.ComposeTime)

	// Stage 3: Convert
	convertStart := time.Now()
	for _, format := range opts.Formats {
		var out []byte
		switch format {
		case FormatSVG:
			out = svg
		case FormatPDF:
			out, err = render.ToPDF(ctx, svg)
		case FormatPNG:
			out, err = render.ToPNG(ctx, svg, opts.DPI)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to %s", format)
		}
		result.Artifacts[format] = out

		key := keyer.ArtifactKey(inputHash, layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, out, TTLArtifact)
	}
	result.Stats.ConvertTime = time.Since(convertStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ConvertTime)

	return result, nil
}

// keyerFor scopes cache keys by the configured project name so projects
// sharing one cache directory stay isolated.
func (r *Runner) keyerFor(cfg *config.Config) cache.Keyer {
	if cfg != nil && cfg.Project != "" {
		return cache.NewScopedKeyer(r.Keyer, cfg.Project+":")
	}
	return r.Keyer
}

// loadModel loads the layout file or falls back to the shipped defaults.
func (r *Runner) loadModel(opts Options) (*layout.Model, error) {
	if opts.LayoutPath == "" {
		return layout.Default(), nil
	}
	return layout.Load(opts.LayoutPath)
}

// buildData assembles the renderer input from the loaded layer and config.
// Asset and overview failures degrade with a warning; they never fail the
// run.
func (r *Runner) buildData(logger *log.Logger, opts Options, layer *geo.Layer) *report.Data {
	cfg := opts.Config
	data := &report.Data{
		Primary:         layer,
		Title:           cfg.Title,
		SubdivisionAttr: cfg.Data.SubdivisionAttr,
		BlockAttr:       cfg.Data.BlockAttr,
		OverviewAttr:    cfg.Data.OverviewAttr,
		ColorOverrides:  cfg.Colors,
		Company: report.CompanyInfo{
			Name:        cfg.Company.Name,
			ProducedFor: cfg.Company.ProducedFor,
			Program:     cfg.Company.Program,
		},
	}

	if cfg.Assets.Logo != "" {
		uri, err := assets.DataURI(cfg.Assets.Logo)
		if err != nil {
			logger.Warn("logo asset unavailable, using fallback", "err", err)
		} else {
			data.LogoURI = uri
		}
	}
	if cfg.Assets.Compass != "" {
		uri, err := assets.DataURI(cfg.Assets.Compass)
		if err != nil {
			logger.Warn("compass asset unavailable, using fallback", "err", err)
		} else {
			data.CompassURI = uri
		}
	}
	if cfg.Data.Overview != "" {
		overview, err := geo.Read(cfg.Data.Overview, cfg.Data.UTMZone)
		if err != nil {
			logger.Warn("overview layer unavailable, using placeholder", "err", err)
		} else {
			data.Overview = overview
		}
	}
	return data
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
