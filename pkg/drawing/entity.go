package drawing

import "faceplate/pkg/geom"

// Entity is a drawable primitive. Entities are mutable so the sheet
// compositor can translate the finished drawing in place.
type Entity interface {
	Layer() string
	BBox() geom.BBox
	Translate(dx, dy float64)
}

// TextAlign selects the anchor point semantics of a Text entity.
type TextAlign int

const (
	// AlignLeft anchors the text baseline at the insertion point.
	AlignLeft TextAlign = iota
	// AlignCenter centers the text on the insertion point.
	AlignCenter
	// AlignTopRight anchors the top-right corner at the insertion point.
	AlignTopRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignTopRight:
		return "top_right"
	default:
		return "left"
	}
}

// Line is a straight segment.
type Line struct {
	LayerName string
	Linetype  string // empty = layer default
	Start     geom.Point
	End       geom.Point
}

func (l *Line) Layer() string { return l.LayerName }

func (l *Line) BBox() geom.BBox {
	var box geom.BBox
	box.Add(l.Start)
	box.Add(l.End)
	return box
}

func (l *Line) Translate(dx, dy float64) {
	l.Start = l.Start.Add(dx, dy)
	l.End = l.End.Add(dx, dy)
}

// Polyline is a connected sequence of straight segments, optionally closed.
type Polyline struct {
	LayerName string
	Points    []geom.Point
	Closed    bool
}

func (p *Polyline) Layer() string { return p.LayerName }

func (p *Polyline) BBox() geom.BBox {
	var box geom.BBox
	for _, pt := range p.Points {
		box.Add(pt)
	}
	return box
}

func (p *Polyline) Translate(dx, dy float64) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(dx, dy)
	}
}

// Circle is a full circle.
type Circle struct {
	LayerName string
	Center    geom.Point
	Radius    float64
}

func (c *Circle) Layer() string { return c.LayerName }

func (c *Circle) BBox() geom.BBox {
	var box geom.BBox
	box.AddXY(c.Center.X-c.Radius, c.Center.Y-c.Radius)
	box.AddXY(c.Center.X+c.Radius, c.Center.Y+c.Radius)
	return box
}

func (c *Circle) Translate(dx, dy float64) {
	c.Center = c.Center.Add(dx, dy)
}

// Text is a single-line annotation. Height is in millimeters; Rotation in
// degrees counterclockwise. Width for bounding purposes is estimated from
// the glyph count since the model carries no font metrics.
type Text struct {
	LayerName string
	Style     string
	Value     string
	Position  geom.Point // anchor point, interpreted per Align
	Height    float64
	Rotation  float64
	Align     TextAlign
}

// glyphAspect approximates average glyph advance as a fraction of height.
const glyphAspect = 0.6

func (t *Text) Layer() string { return t.LayerName }

// Width returns the estimated rendered width of the text.
func (t *Text) Width() float64 {
	return float64(len([]rune(t.Value))) * t.Height * glyphAspect
}

func (t *Text) BBox() geom.BBox {
	w := t.Width()
	h := t.Height
	var left, bottom float64
	switch t.Align {
	case AlignCenter:
		left = t.Position.X - w/2
		bottom = t.Position.Y - h/2
	case AlignTopRight:
		left = t.Position.X - w
		bottom = t.Position.Y - h
	default:
		left = t.Position.X
		bottom = t.Position.Y
	}
	var box geom.BBox
	box.AddXY(left, bottom)
	box.AddXY(left+w, bottom+h)
	return box
}

func (t *Text) Translate(dx, dy float64) {
	t.Position = t.Position.Add(dx, dy)
}

// Solid is a filled triangle, used for dimension arrowheads.
type Solid struct {
	LayerName string
	Corners   [3]geom.Point
}

func (s *Solid) Layer() string { return s.LayerName }

func (s *Solid) BBox() geom.BBox {
	var box geom.BBox
	for _, c := range s.Corners {
		box.Add(c)
	}
	return box
}

func (s *Solid) Translate(dx, dy float64) {
	for i := range s.Corners {
		s.Corners[i] = s.Corners[i].Add(dx, dy)
	}
}

// Hatch is a solid fill bounded by a closed polygon, used for the
// background panel fill.
type Hatch struct {
	LayerName string
	Boundary  []geom.Point
}

func (h *Hatch) Layer() string { return h.LayerName }

func (h *Hatch) BBox() geom.BBox {
	var box geom.BBox
	for _, pt := range h.Boundary {
		box.Add(pt)
	}
	return box
}

func (h *Hatch) Translate(dx, dy float64) {
	for i := range h.Boundary {
		h.Boundary[i] = h.Boundary[i].Add(dx, dy)
	}
}
