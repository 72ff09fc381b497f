package layout

import (
	"faceplate/pkg/drawing"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// Axis is one symmetry axis segment with its owner, for inspection.
type Axis struct {
	Owner string // CenterOwner or an opening id
	Start geom.Point
	End   geom.Point
}

// planAxes draws the enabled symmetry axes. Each axis starts from its
// default extent (overhang past the panel or opening edge) and, when
// extend_to_dimensions is on, grows to cover the recorded limits so it
// visually reaches every dimension line drawn against its owner. The
// default extent is a floor: limits never shrink an axis.
func planAxes(doc *drawing.Document, s *spec.Spec, openings *OpeningTable, limits *AxisLimits, layer, linetype string) []Axis {
	length := s.Panel.Size.Length
	width := s.Panel.Size.Width
	cx := length / 2
	cy := width / 2
	overhang := s.AxisOverhang()
	extend := s.ExtendAxesToDimensions()

	var axes []Axis
	add := func(owner string, start, end geom.Point) {
		doc.Add(&drawing.Line{LayerName: layer, Linetype: linetype, Start: start, End: end})
		axes = append(axes, Axis{Owner: owner, Start: start, End: end})
	}

	if s.Axes.Center.Vertical {
		y1 := -overhang
		y2 := width + overhang
		if extend {
			if lim, ok := limits.Get(CenterOwner); ok {
				y1, y2 = widen(y1, y2, lim.VMin, lim.VMax)
			}
		}
		add(CenterOwner, geom.Pt(cx, y1), geom.Pt(cx, y2))
	}

	if s.Axes.Center.Horizontal {
		x1 := -overhang
		x2 := length + overhang
		if extend {
			if lim, ok := limits.Get(CenterOwner); ok {
				x1, x2 = widen(x1, x2, lim.HMin, lim.HMax)
			}
		}
		add(CenterOwner, geom.Pt(x1, cy), geom.Pt(x2, cy))
	}

	for _, o := range openings.All() {
		switch {
		case o.Kind == spec.OpeningCircle && s.Axes.Openings.Circles:
			reach := o.Radius + overhang
			y1 := o.Center.Y - reach
			y2 := o.Center.Y + reach
			x1 := o.Center.X - reach
			x2 := o.Center.X + reach
			if extend {
				if lim, ok := limits.Get(o.ID); ok {
					y1, y2 = widen(y1, y2, lim.VMin, lim.VMax)
					x1, x2 = widen(x1, x2, lim.HMin, lim.HMax)
				}
			}
			add(o.ID, geom.Pt(o.Center.X, y1), geom.Pt(o.Center.X, y2))
			add(o.ID, geom.Pt(x1, o.Center.Y), geom.Pt(x2, o.Center.Y))

		case o.Kind == spec.OpeningRect && s.Axes.Openings.Rects:
			reach := o.HalfHeight() + overhang
			y1 := o.Center.Y - reach
			y2 := o.Center.Y + reach
			if extend {
				if lim, ok := limits.Get(o.ID); ok {
					y1, y2 = widen(y1, y2, lim.VMin, lim.VMax)
				}
			}
			add(o.ID, geom.Pt(o.Center.X, y1), geom.Pt(o.Center.X, y2))
		}
	}
	return axes
}

// widen grows the [lo, hi] interval to cover the recorded bounds.
func widen(lo, hi float64, min, max *float64) (float64, float64) {
	if min != nil && *min < lo {
		lo = *min
	}
	if max != nil && *max > hi {
		hi = *max
	}
	return lo, hi
}
