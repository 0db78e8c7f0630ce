package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawitlabs/petamap/pkg/config"
	"github.com/sawitlabs/petamap/pkg/errors"
	"github.com/sawitlabs/petamap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string   // output file path (or base path for multiple formats)
	layoutPath   string   // layout file; empty uses the shipped defaults
	configPath   string   // TOML config file
	formats      []string // output formats: "pdf", "png", "svg"
	dpi          int      // raster resolution for PNG output
	subdivisions []string // restrict rendering to the named sub-divisions
	refresh      bool     // bypass cache reads
	noCache      bool     // disable caching entirely
}

// renderCommand creates the render command for generating map documents.
//
// Default settings:
//   - format: pdf
//   - dpi: from config (300 if unset)
//   - layout: shipped defaults
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a map report from a shapefile or GeoJSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), png, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.layoutPath, "layout", "l", "", "layout file (default: shipped layout)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution for PNG output (default from config)")
	cmd.Flags().StringArrayVarP(&opts.subdivisions, "subdivision", "s", nil, "render only the named sub-division (repeatable)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runRender executes the pipeline and writes one file per requested format.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:        input,
		LayoutPath:   opts.layoutPath,
		Subdivisions: opts.subdivisions,
		Formats:      opts.formats,
		DPI:          opts.dpi,
		Refresh:      opts.refresh,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := basePath(opts.output, input)
	single := len(opts.formats) == 1

	printSuccess("Generated map report")
	for _, format := range opts.formats {
		path := base + "." + format
		if single && opts.output != "" && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		printFile(path)
	}
	printStats(result.Stats.FeatureCount, result.Stats.ElementCount, result.CacheInfo.ArtifactHit)

	if opts.layoutPath == "" {
		printNextStep("Customize the layout", appName+" layout init && "+appName+" edit layout.json")
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.pdf, .png, .svg), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
