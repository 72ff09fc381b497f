package layout

import (
	"strings"

	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// Opening is a fully resolved cutout. Bounds are computed once at
// resolution time and never mutated afterwards.
type Opening struct {
	ID     string
	Kind   string
	Center geom.Point
	Radius float64 // 0 for non-circles
	Width  float64
	Height float64
	Bounds geom.Rect
}

// HalfWidth returns half the opening's horizontal size.
func (o *Opening) HalfWidth() float64 { return o.Width / 2 }

// HalfHeight returns half the opening's vertical size.
func (o *Opening) HalfHeight() float64 { return o.Height / 2 }

// sizeAlong returns the opening's half-size on the given axis, which is
// the radius for circles.
func (o *Opening) sizeAlong(axis string) float64 {
	if o.Kind == spec.OpeningCircle {
		return o.Radius
	}
	if axis == "x" {
		return o.HalfWidth()
	}
	return o.HalfHeight()
}

// OpeningTable holds resolved openings in declaration order and by id.
type OpeningTable struct {
	order []string
	byID  map[string]*Opening
}

func newOpeningTable() *OpeningTable {
	return &OpeningTable{byID: make(map[string]*Opening)}
}

func (t *OpeningTable) add(o *Opening) {
	t.order = append(t.order, o.ID)
	t.byID[o.ID] = o
}

// Get returns the opening with the given id.
func (t *OpeningTable) Get(id string) (*Opening, bool) {
	o, ok := t.byID[id]
	return o, ok
}

// All returns the openings in declaration order.
func (t *OpeningTable) All() []*Opening {
	out := make([]*Opening, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Len returns the number of resolved openings.
func (t *OpeningTable) Len() int { return len(t.order) }

// ResolveRef evaluates a reference expression like "hole1.center.x"
// against the table. Only openings already in the table are visible, so
// forward references fail during declaration-order resolution.
func (t *OpeningTable) ResolveRef(expr string) (float64, error) {
	parts := strings.SplitN(expr, ".", 2)
	if len(parts) != 2 {
		return 0, errors.New(errors.ErrCodeInvalidPosition, "invalid reference %q", expr)
	}
	o, ok := t.byID[parts[0]]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownReference, "unknown opening in reference %q", expr)
	}
	switch parts[1] {
	case "center.x":
		return o.Center.X, nil
	case "center.y":
		return o.Center.Y, nil
	case "left":
		return o.Bounds.Left, nil
	case "right":
		return o.Bounds.Right, nil
	case "top":
		return o.Bounds.Top, nil
	case "bottom":
		return o.Bounds.Bottom, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPosition, "unsupported reference field in %q", expr)
}

// resolveCenter turns a relative position into an absolute point. For
// each axis the first given expression wins: offset from center, then
// from the left/bottom edge, then from the right/top edge, then an
// absolute value; an axis with no expression lands on the panel midline.
func resolveCenter(pos spec.Position, length, width float64) geom.Point {
	x := length / 2
	switch {
	case pos.XFromCenter != nil:
		x = length/2 + *pos.XFromCenter
	case pos.XFromLeft != nil:
		x = *pos.XFromLeft
	case pos.XFromRight != nil:
		x = length - *pos.XFromRight
	case pos.X != nil:
		x = *pos.X
	}

	y := width / 2
	switch {
	case pos.YFromCenter != nil:
		y = width/2 + *pos.YFromCenter
	case pos.YFromBottom != nil:
		y = *pos.YFromBottom
	case pos.YFromTop != nil:
		y = width - *pos.YFromTop
	case pos.Y != nil:
		y = *pos.Y
	}

	return geom.Pt(x, y)
}

// ResolveOpenings resolves every opening in declaration order. A notch's
// to_x_ref may only point at an opening declared before it.
func ResolveOpenings(s *spec.Spec) (*OpeningTable, error) {
	length := s.Panel.Size.Length
	width := s.Panel.Size.Width
	table := newOpeningTable()

	for i := range s.Openings {
		decl := &s.Openings[i]
		switch decl.Type {
		case spec.OpeningCircle:
			center := resolveCenter(decl.Center, length, width)
			r := decl.Diameter / 2
			table.add(&Opening{
				ID:     decl.ID,
				Kind:   spec.OpeningCircle,
				Center: center,
				Radius: r,
				Width:  decl.Diameter,
				Height: decl.Diameter,
				Bounds: geom.Rect{
					Left: center.X - r, Right: center.X + r,
					Bottom: center.Y - r, Top: center.Y + r,
				},
			})

		case spec.OpeningRect:
			center := resolveCenter(decl.Center, length, width)
			hw := decl.Width / 2
			hh := decl.Height / 2
			table.add(&Opening{
				ID:     decl.ID,
				Kind:   spec.OpeningRect,
				Center: center,
				Width:  decl.Width,
				Height: decl.Height,
				Bounds: geom.Rect{
					Left: center.X - hw, Right: center.X + hw,
					Bottom: center.Y - hh, Top: center.Y + hh,
				},
			})

		case spec.OpeningNotchU:
			yCenter := width / 2
			if decl.CenteredOnY != nil && !*decl.CenteredOnY {
				yCenter = *decl.CenterY
			}
			x0 := 0.0
			if decl.FromLeft != nil {
				x0 = *decl.FromLeft
			}
			var x1 float64
			if decl.ToXRef != "" {
				v, err := table.ResolveRef(decl.ToXRef)
				if err != nil {
					return nil, errors.Wrap(errors.GetCode(err), err, "opening %q", decl.ID)
				}
				x1 = v
			} else {
				x1 = *decl.ToX
			}
			hh := decl.Height / 2
			table.add(&Opening{
				ID:     decl.ID,
				Kind:   spec.OpeningNotchU,
				Center: geom.Pt((x0+x1)/2, yCenter),
				Width:  abs(x1 - x0),
				Height: decl.Height,
				Bounds: geom.Rect{
					Left: x0, Right: x1,
					Bottom: yCenter - hh, Top: yCenter + hh,
				},
			})

		default:
			return nil, errors.New(errors.ErrCodeInvalidOpening,
				"opening %q: unsupported type %q", decl.ID, decl.Type)
		}
	}
	return table, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
