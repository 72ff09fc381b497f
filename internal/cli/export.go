package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"faceplate/pkg/errors"
	"faceplate/pkg/pipeline"
	"faceplate/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output    string // output file path
	preset    string // layer preset: cut or engrave
	layers    string // explicit comma-separated layer names (overrides preset)
	textPaths bool   // outline text through font glyphs
	width     int    // raster viewport width in px
	quality   int    // JPEG quality
	noCache   bool   // skip the raster cache
}

// exportCommand creates the export command for SVG and raster output.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{
		preset:  render.PresetCut,
		quality: render.DefaultJPEGQuality,
	}

	cmd := &cobra.Command{
		Use:       "export svg|png|jpeg <spec.toml>",
		Short:     "Export a panel spec as SVG or a raster preview",
		ValidArgs: []string{"svg", "png", "jpeg"},
		Args:      cobra.MatchAll(cobra.ExactArgs(2), matchFirstArg("svg", "png", "jpeg")),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: spec path with the format extension)")
	cmd.Flags().StringVar(&opts.preset, "preset", opts.preset, "layer preset: cut (outline+cutouts) or engrave (outline+text)")
	cmd.Flags().StringVar(&opts.layers, "layers", "", "explicit layer names, comma-separated (overrides --preset)")
	cmd.Flags().BoolVar(&opts.textPaths, "text-paths", false, "outline text as font glyph paths")
	cmd.Flags().IntVar(&opts.width, "width", 0, "raster viewport width in px")
	cmd.Flags().IntVar(&opts.quality, "quality", opts.quality, "JPEG quality")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the raster cache")

	return cmd
}

// matchFirstArg validates a positional subcommand-like first argument.
func matchFirstArg(valid ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		for _, v := range valid {
			if args[0] == v {
				return nil
			}
		}
		return fmt.Errorf("unknown export format %q (must be %s)", args[0], strings.Join(valid, ", "))
	}
}

func (c *CLI) runExport(cmd *cobra.Command, format, specPath string, opts *exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{SpecPath: specPath, Logger: logger})
	if err != nil {
		return err
	}
	if err := runner.BuildLayout(ctx, pipeline.Options{Logger: logger}, result); err != nil {
		return err
	}

	layers, err := exportLayers(opts, result)
	if err != nil {
		return err
	}

	svgData, err := render.SVG(result.Document, render.SVGOptions{
		Layers:      layers,
		TextAsPaths: opts.textPaths,
		FontFamily:  result.Spec.TextFont(),
	})
	if err != nil {
		return err
	}

	data := svgData
	if format != "svg" {
		err = withSpinner(ctx, "Rendering raster preview", func() error {
			data, err = render.Raster(ctx, svgData, render.RasterOptions{
				Format:  format,
				Width:   opts.width,
				Quality: opts.quality,
			}, runner.Cache)
			return err
		})
		if err != nil {
			return err
		}
	}

	out := outputPath(opts.output, specPath, format)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", out)
	}

	printSuccess("Exported %s (%s, %d bytes)", specPath, format, len(data))
	printDetail("Layers: %s", strings.Join(layers, ", "))
	printFile(out)
	return nil
}

// exportLayers resolves the layer selection: explicit --layers wins,
// then the preset mapped through the layout's resolved layer names.
func exportLayers(opts *exportOpts, result *pipeline.Result) ([]string, error) {
	if opts.layers != "" {
		parts := strings.Split(opts.layers, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
	return render.PresetLayers(opts.preset, result.Layout.Layers)
}
