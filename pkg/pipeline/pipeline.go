// Package pipeline runs the complete spec → layout → sheet → DXF
// pipeline. Centralizing the staging here keeps the CLI, the batch
// runner and the preview server on identical behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: parse and validate the panel spec, apply dimension overrides
//  2. Layout: resolve openings and build the drawing document
//  3. Compose: place the drawing on the sheet template
//  4. Encode: write the merged document as DXF tags
//
// Each stage can be run independently or as part of the complete
// pipeline; Execute chains them and writes the output file only after
// encoding succeeded.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SpecPath:   "panel.toml",
//	    OutputPath: "panel.dxf",
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"faceplate/pkg/drawing"
	"faceplate/pkg/geom"
	"faceplate/pkg/layout"
	"faceplate/pkg/spec"
)

// borderLayers are the template layers probed, in order, for the frame
// whose extent bounds the free drawing area when the spec does not
// configure one explicitly. QCAD-drawn sheets split the frame across
// Border.Thick/Border.Thin; hand-made ones use a single Border layer.
var borderLayers = []string{"Border.Thick", "Border"}

// Options configures one pipeline run.
type Options struct {
	// SpecPath names the TOML panel spec. SpecData is used instead when
	// set; SpecName then labels the run in logs and errors.
	SpecPath string
	SpecData []byte
	SpecName string

	// TemplatePath overrides the sheet template named in the spec. An
	// empty value defers to the spec; if neither names a template the
	// panel is encoded on a blank sheet.
	TemplatePath string

	// OverridesPath names an optional markdown notes file whose
	// dimension rows adjust placement. OnlyRequested additionally drops
	// dimension items the notes never mention.
	OverridesPath string
	OnlyRequested bool

	// OutputPath receives the encoded DXF. Empty skips the write; the
	// bytes are still returned in the Result.
	OutputPath string

	// Now is the clock used for title block date substitution. The zero
	// value means time.Now.
	Now time.Time

	Logger *log.Logger
}

// name returns the label used for this run in logs.
func (o *Options) name() string {
	switch {
	case o.SpecPath != "":
		return o.SpecPath
	case o.SpecName != "":
		return o.SpecName
	default:
		return "(inline spec)"
	}
}

func (o *Options) clock() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the parsed and validated panel spec, with overrides
	// already applied to its dimension items.
	Spec *spec.Spec

	// Layout is the layout stage output: the drawing document plus the
	// resolved opening table and axis limits.
	Layout *layout.Result

	// Document is the composed drawing. It aliases Layout.Document;
	// after Compose its entities sit in sheet coordinates.
	Document *drawing.Document

	// FreeArea is the sheet region the drawing was centered in. Only
	// meaningful when TemplateUsed is set.
	FreeArea     geom.Rect
	TemplateUsed bool

	// TitleBlockFields counts the template fields that were filled in.
	TitleBlockFields int

	// Encoded is the DXF output.
	Encoded []byte

	Stats Stats
}

// Stats contains per-stage timings.
type Stats struct {
	LoadTime    time.Duration
	LayoutTime  time.Duration
	ComposeTime time.Duration
	EncodeTime  time.Duration
}
