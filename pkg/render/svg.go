package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/fonts"
	"faceplate/pkg/geom"
	"faceplate/pkg/layout"
)

// Layer presets for the two common machine workflows.
const (
	PresetCut     = "cut"     // outline + cutouts, for the laser/mill pass
	PresetEngrave = "engrave" // outline + text, for the marking pass
)

// SVG export defaults.
const (
	DefaultPadding     = 2.0 // mm around the geometry
	DefaultStrokeWidth = 0.1 // mm
)

// SVGOptions selects what to export and how text is rendered.
type SVGOptions struct {
	// Layers lists the layer names to export; empty exports everything.
	Layers []string
	// TextAsPaths outlines text through the font's glyph segments so
	// the output needs no fonts installed on the consuming machine.
	TextAsPaths bool
	// FontFamily resolves glyph outlines; empty falls back to a stock
	// sans-serif.
	FontFamily  string
	Padding     float64 // 0 = DefaultPadding
	StrokeWidth float64 // 0 = DefaultStrokeWidth
}

// PresetLayers maps a preset name to the resolved layer names of a
// layout run.
func PresetLayers(preset string, l layout.Layers) ([]string, error) {
	switch preset {
	case PresetCut:
		return []string{l.Outline.Name, l.Cutouts.Name}, nil
	case PresetEngrave:
		return []string{l.Outline.Name, l.Text.Name}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown preset %q", preset)
	}
}

// SVG renders the selected layers as an SVG sized in millimeters, one
// user unit per mm, with the drawing's Y axis flipped into SVG screen
// coordinates.
func SVG(doc *drawing.Document, opts SVGOptions) ([]byte, error) {
	entities := doc.Entities
	if len(opts.Layers) > 0 {
		entities = doc.EntitiesOnLayer(opts.Layers...)
	}
	box := boundsOf(entities)
	if !box.HasData {
		return nil, errors.New(errors.ErrCodeRender, "no geometry on the selected layers")
	}

	pad := opts.Padding
	if pad == 0 {
		pad = DefaultPadding
	}
	strokeWidth := opts.StrokeWidth
	if strokeWidth == 0 {
		strokeWidth = DefaultStrokeWidth
	}

	width := box.Width() + 2*pad
	height := box.Height() + 2*pad
	tx := func(x float64) float64 { return x - box.Min.X + pad }
	ty := func(y float64) float64 { return box.Max.Y - y + pad }

	var face *fonts.Face
	if opts.TextAsPaths {
		var err error
		if face, err = fonts.Load(opts.FontFamily); err != nil {
			return nil, err
		}
	}

	stroke := fmt.Sprintf("fill:none;stroke:#000000;stroke-width:%s", trimFloat(strokeWidth))
	fill := "fill:#000000;stroke:none"

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startunit(width, height, "mm",
		fmt.Sprintf(`viewBox="0 0 %s %s"`, trimFloat(width), trimFloat(height)))

	for _, e := range entities {
		switch v := e.(type) {
		case *drawing.Line:
			canvas.Line(tx(v.Start.X), ty(v.Start.Y), tx(v.End.X), ty(v.End.Y), stroke)

		case *drawing.Polyline:
			xs := make([]float64, len(v.Points))
			ys := make([]float64, len(v.Points))
			for i, p := range v.Points {
				xs[i], ys[i] = tx(p.X), ty(p.Y)
			}
			if v.Closed {
				canvas.Polygon(xs, ys, stroke)
			} else {
				canvas.Polyline(xs, ys, stroke)
			}

		case *drawing.Circle:
			canvas.Circle(tx(v.Center.X), ty(v.Center.Y), v.Radius, stroke)

		case *drawing.Solid:
			xs := []float64{tx(v.Corners[0].X), tx(v.Corners[1].X), tx(v.Corners[2].X)}
			ys := []float64{ty(v.Corners[0].Y), ty(v.Corners[1].Y), ty(v.Corners[2].Y)}
			canvas.Polygon(xs, ys, fill)

		case *drawing.Hatch:
			xs := make([]float64, len(v.Boundary))
			ys := make([]float64, len(v.Boundary))
			for i, p := range v.Boundary {
				xs[i], ys[i] = tx(p.X), ty(p.Y)
			}
			canvas.Polygon(xs, ys, fill)

		case *drawing.Text:
			if err := writeText(canvas, v, face, tx, ty, fill); err != nil {
				return nil, err
			}

		default:
			return nil, errors.New(errors.ErrCodeRender, "unsupported entity type %T", e)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// writeText emits one text entity, as glyph-outline paths when a face
// is loaded and as a plain <text> element otherwise.
func writeText(canvas *svg.SVG, t *drawing.Text, face *fonts.Face, tx, ty func(float64) float64, fill string) error {
	rotated := t.Rotation != 0
	if rotated {
		// Drawing rotation is counterclockwise; SVG's Y points down.
		canvas.Gtransform(fmt.Sprintf("rotate(%s,%s,%s)",
			trimFloat(-t.Rotation), trimFloat(tx(t.Position.X)), trimFloat(ty(t.Position.Y))))
	}

	if face == nil {
		anchor := "start"
		x, y := tx(t.Position.X), ty(t.Position.Y)
		switch t.Align {
		case drawing.AlignCenter:
			anchor = "middle"
			y += t.Height / 2
		case drawing.AlignTopRight:
			anchor = "end"
			y += t.Height
		}
		canvas.Text(x, y, t.Value, fmt.Sprintf(
			"font-size:%s;text-anchor:%s;fill:#000000", trimFloat(t.Height), anchor))
	} else {
		width, err := measureText(face, t.Value, t.Height)
		if err != nil {
			return err
		}
		x, y := t.Position.X, t.Position.Y
		switch t.Align {
		case drawing.AlignCenter:
			x -= width / 2
			y -= t.Height / 2
		case drawing.AlignTopRight:
			x -= width
			y -= t.Height
		}
		d, err := textPathData(face, t.Value, t.Height, tx(x), ty(y))
		if err != nil {
			return err
		}
		if d != "" {
			canvas.Path(d, fill)
		}
	}

	if rotated {
		canvas.Gend()
	}
	return nil
}

func boundsOf(entities []drawing.Entity) geom.BBox {
	var box geom.BBox
	for _, e := range entities {
		box.Union(e.BBox())
	}
	return box
}
