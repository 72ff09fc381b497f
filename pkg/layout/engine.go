package layout

import (
	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// Layers holds the resolved layer set for one render.
type Layers struct {
	Background *drawing.Layer // nil unless the spec configures one
	Outline    drawing.Layer
	Cutouts    drawing.Layer
	Axes       drawing.Layer
	Dimensions drawing.Layer
	Text       drawing.Layer
}

// Result is the outcome of a layout run: the assembled document plus the
// intermediate tables for inspection and testing.
type Result struct {
	Document   *drawing.Document
	Openings   *OpeningTable
	Limits     *AxisLimits
	Placements []Placement
	Axes       []Axis
	Layers     Layers
}

// Build runs the full layout pass for a validated spec: background and
// outline, resolved openings, dimension call-outs, symmetry axes and
// text annotations, in that order. The returned document sits at the
// panel's native origin; CenterInFreeArea moves it onto a sheet.
func Build(s *spec.Spec) (*Result, error) {
	layers, err := resolveLayers(s)
	if err != nil {
		return nil, err
	}

	doc := drawing.NewDocument()
	if layers.Background != nil {
		doc.EnsureLayer(*layers.Background)
	}
	doc.EnsureLayer(layers.Outline)
	doc.EnsureLayer(layers.Cutouts)
	doc.EnsureLayer(layers.Axes)
	doc.EnsureLayer(layers.Dimensions)
	doc.EnsureLayer(layers.Text)
	doc.EnsureLinetype(drawing.Dashdot())
	doc.EnsureTextStyle(drawing.TextStyle{
		Name:     drawing.LabelTextStyle,
		FontFile: s.TextFont() + ".ttf",
	})
	dimStyle := drawing.ISO25(layers.Dimensions.LineweightMM)
	dimStyle.Name = s.DimensionStyleName()
	doc.EnsureDimStyle(dimStyle)

	length := s.Panel.Size.Length
	width := s.Panel.Size.Width
	outlinePoints := []geom.Point{
		geom.Pt(0, 0), geom.Pt(length, 0), geom.Pt(length, width),
		geom.Pt(0, width), geom.Pt(0, 0),
	}

	if layers.Background != nil {
		doc.Add(&drawing.Hatch{LayerName: layers.Background.Name, Boundary: outlinePoints})
	}
	doc.Add(&drawing.Polyline{LayerName: layers.Outline.Name, Points: outlinePoints})

	openings, err := ResolveOpenings(s)
	if err != nil {
		return nil, err
	}
	addOpeningEntities(doc, openings, layers.Cutouts.Name)

	limits := NewAxisLimits(openings)
	p := &planner{
		doc:      doc,
		layer:    layers.Dimensions.Name,
		style:    dimStyle,
		length:   length,
		width:    width,
		openings: openings,
		limits:   limits,
	}
	if err := p.planDimensions(s); err != nil {
		return nil, err
	}

	axes := planAxes(doc, s, openings, limits, layers.Axes.Name, layers.Axes.Linetype)

	if err := planText(doc, s, openings, layers.Text.Name); err != nil {
		return nil, err
	}

	return &Result{
		Document:   doc,
		Openings:   openings,
		Limits:     limits,
		Placements: p.placements,
		Axes:       axes,
		Layers:     layers,
	}, nil
}

// addOpeningEntities emits the cutout geometry for every opening.
func addOpeningEntities(doc *drawing.Document, openings *OpeningTable, layer string) {
	for _, o := range openings.All() {
		switch o.Kind {
		case spec.OpeningCircle:
			doc.Add(&drawing.Circle{LayerName: layer, Center: o.Center, Radius: o.Radius})
		default:
			b := o.Bounds
			doc.Add(&drawing.Polyline{
				LayerName: layer,
				Points: []geom.Point{
					geom.Pt(b.Left, b.Bottom), geom.Pt(b.Right, b.Bottom),
					geom.Pt(b.Right, b.Top), geom.Pt(b.Left, b.Top),
					geom.Pt(b.Left, b.Bottom),
				},
			})
		}
	}
}

func resolveLayers(s *spec.Spec) (Layers, error) {
	var layers Layers
	var err error

	if s.Styles.Layers.Background != nil {
		bg, bgErr := resolveLayer(s.Styles.Layers.Background, drawing.DefaultBackgroundLayer, 0.0, "")
		if bgErr != nil {
			return layers, bgErr
		}
		layers.Background = &bg
	}
	if layers.Outline, err = resolveLayer(s.Styles.Layers.Outline, drawing.DefaultOutlineLayer, 0.7, ""); err != nil {
		return layers, err
	}
	if layers.Cutouts, err = resolveLayer(s.Styles.Layers.Cutouts, drawing.DefaultCutoutLayer, 0.7, ""); err != nil {
		return layers, err
	}
	if layers.Axes, err = resolveLayer(s.Styles.Layers.Axes, drawing.DefaultAxesLayer, 0.35, drawing.DashdotLinetypeName); err != nil {
		return layers, err
	}
	if layers.Dimensions, err = resolveLayer(s.Styles.Layers.Dimensions, drawing.DefaultDimensionsLayer, 0.35, ""); err != nil {
		return layers, err
	}
	if layers.Text, err = resolveLayer(s.Styles.Layers.Text, drawing.DefaultTextLayer, 0.35, ""); err != nil {
		return layers, err
	}
	return layers, nil
}

func resolveLayer(style *spec.LayerStyle, defName string, defWeight float64, defLinetype string) (drawing.Layer, error) {
	l := drawing.Layer{Name: defName, LineweightMM: defWeight, Linetype: defLinetype}
	if style == nil {
		return l, nil
	}
	if style.Name != "" {
		l.Name = style.Name
	}
	if style.Lineweight != nil {
		l.LineweightMM = *style.Lineweight
	}
	if style.Linetype != "" {
		l.Linetype = style.Linetype
	}
	if style.Color != "" {
		c, err := drawing.ParseColor(style.Color)
		if err != nil {
			return l, errors.Wrap(errors.ErrCodeInvalidColor, err, "layer %s", l.Name)
		}
		l.Color = &c
	}
	return l, nil
}
