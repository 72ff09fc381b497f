package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"faceplate/pkg/cache"
	"faceplate/pkg/dxf"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/layout"
	"faceplate/pkg/overrides"
	"faceplate/pkg/spec"
)

// Runner executes pipeline stages. It is stateless apart from the cache
// and logger, so one Runner can serve concurrent runs with different
// options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger discards stage logs.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete Load → Layout → Compose → Encode pipeline
// and, when OutputPath is set, writes the DXF file.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := r.BuildLayout(ctx, opts, result); err != nil {
		return nil, err
	}
	tpl, err := r.Compose(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	if err := r.Encode(ctx, opts, result, tpl); err != nil {
		return nil, err
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, result.Encoded, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncode, err, "write %s", opts.OutputPath)
		}
		r.logger(opts).Info("wrote drawing",
			"path", opts.OutputPath,
			"bytes", len(result.Encoded))
	}
	return result, nil
}

// Load parses the spec and applies dimension overrides.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()

	var (
		s   *spec.Spec
		err error
	)
	if len(opts.SpecData) > 0 {
		s, err = spec.Parse(opts.SpecData)
	} else {
		s, err = spec.Load(opts.SpecPath)
	}
	if err != nil {
		return nil, err
	}

	if opts.OverridesPath != "" {
		set, err := overrides.Load(opts.OverridesPath)
		if err != nil {
			return nil, err
		}
		if set.Empty() {
			logger.Warn("overrides file has no dimension rows", "path", opts.OverridesPath)
		} else {
			before := len(s.Dimensions.Items)
			s.Dimensions.Items = set.Apply(s.Dimensions.Items, opts.OnlyRequested)
			logger.Debug("applied dimension overrides",
				"path", opts.OverridesPath,
				"items_before", before,
				"items_after", len(s.Dimensions.Items))
		}
	}

	result := &Result{Spec: s}
	result.Stats.LoadTime = time.Since(start)
	logger.Debug("loaded spec",
		"spec", opts.name(),
		"openings", len(s.Openings),
		"dimensions", len(s.Dimensions.Items),
		"duration", result.Stats.LoadTime)
	return result, nil
}

// BuildLayout runs the layout stage, filling Result.Layout and
// Result.Document.
func (r *Runner) BuildLayout(ctx context.Context, opts Options, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	lay, err := layout.Build(result.Spec)
	if err != nil {
		return err
	}
	result.Layout = lay
	result.Document = lay.Document
	result.Stats.LayoutTime = time.Since(start)

	r.logger(opts).Debug("built layout",
		"openings", len(lay.Openings.All()),
		"dimensions", len(lay.Placements),
		"axes", len(lay.Axes),
		"duration", result.Stats.LayoutTime)
	return nil
}

// Compose places the drawing on the sheet template: the drawing is
// centered in the free area, title block fields are substituted and the
// template viewport is aimed at the drawing. Without a template the
// drawing stays at the panel origin and the returned template is nil.
func (r *Runner) Compose(ctx context.Context, opts Options, result *Result) (*dxf.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()

	path := opts.TemplatePath
	if path == "" {
		path = result.Spec.Sheet.Template
	}
	if path == "" {
		logger.Warn("no sheet template configured, encoding blank sheet", "spec", opts.name())
		result.Stats.ComposeTime = time.Since(start)
		return nil, nil
	}

	tpl, err := dxf.LoadTemplate(path)
	if err != nil {
		// A missing template degrades to a blank sheet; a present but
		// unreadable one is still fatal.
		if errors.Is(err, errors.ErrCodeNotFound) {
			logger.Warn("sheet template not found, encoding blank sheet",
				"template", path, "spec", opts.name())
			result.Stats.ComposeTime = time.Since(start)
			return nil, nil
		}
		return nil, err
	}

	free, ok := freeArea(result.Spec, tpl)
	if !ok {
		logger.Warn("template has no usable free area, leaving drawing at origin",
			"template", path)
		result.Stats.ComposeTime = time.Since(start)
		return tpl, nil
	}

	result.FreeArea = layout.CenterInFreeArea(result.Document, free, result.Spec.RoundCenterToMM())
	result.TemplateUsed = true

	if result.Spec.ApplyTitleBlock() {
		result.TitleBlockFields = tpl.SubstituteTitleBlock(result.Spec.TitleBlock.Fields, opts.clock())
	}
	if !tpl.FitViewport(free) {
		logger.Debug("template has no paper space viewport", "template", path)
	}

	result.Stats.ComposeTime = time.Since(start)
	logger.Debug("composed sheet",
		"template", path,
		"title_fields", result.TitleBlockFields,
		"duration", result.Stats.ComposeTime)
	return tpl, nil
}

// Encode serializes the composed document, merged into the template
// when one is present.
func (r *Runner) Encode(ctx context.Context, opts Options, result *Result, tpl *dxf.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	var (
		data []byte
		err  error
	)
	if tpl != nil {
		if err = tpl.Insert(result.Document); err != nil {
			return err
		}
		data, err = tpl.Encode()
	} else {
		data, err = dxf.Encode(result.Document)
	}
	if err != nil {
		return err
	}
	result.Encoded = data
	result.Stats.EncodeTime = time.Since(start)

	r.logger(opts).Debug("encoded drawing",
		"bytes", len(data),
		"duration", result.Stats.EncodeTime)
	return nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// freeArea resolves the sheet region reserved for the drawing. A spec
// free_area wins; otherwise the first populated border layer bounds it,
// and a template with no border layer at all contributes its full
// entity extent.
func freeArea(s *spec.Spec, tpl *dxf.Template) (geom.Rect, bool) {
	if fa := s.Sheet.FreeArea; fa != nil {
		return geom.Rect{Left: fa.Left, Bottom: fa.Bottom, Right: fa.Right, Top: fa.Top}, true
	}
	for _, layer := range borderLayers {
		if box := tpl.BorderBBox(layer); box.HasData {
			return box.Rect(), true
		}
	}
	if box := tpl.ExtentBBox(); box.HasData {
		return box.Rect(), true
	}
	return geom.Rect{}, false
}
