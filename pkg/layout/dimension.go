package layout

import (
	"math"
	"strconv"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// Placement records where a dimension call-out landed. It exists for
// inspection and testing; rendering happens through the document.
type Placement struct {
	Kind   string
	Target string     // opening id, empty for overall dimensions
	Base   geom.Point // dimension line base point
}

// planner lowers dimension items to primitive entities on the
// dimensions layer and feeds the axis-limits accumulator.
type planner struct {
	doc        *drawing.Document
	layer      string
	style      drawing.DimStyle
	length     float64
	width      float64
	openings   *OpeningTable
	limits     *AxisLimits
	placements []Placement
}

// planDimensions renders every dimension item in order. An unknown
// target aborts the render: a call-out against missing geometry is worse
// than no drawing at all.
func (p *planner) planDimensions(s *spec.Spec) error {
	defaultOffset := s.DimensionOffset()
	threshold := s.Styles.Dimensions.SmallHoleOutsideThreshold

	for i := range s.Dimensions.Items {
		item := &s.Dimensions.Items[i]
		distance := defaultOffset
		if item.Distance != nil {
			distance = *item.Distance
		}

		var err error
		switch item.Type {
		case spec.DimOverallLength:
			p.overallLength(where(item, "down"), distance)
		case spec.DimOverallWidth:
			p.overallWidth(where(item, "left"), distance)
		case spec.DimDiameter:
			err = p.diameter(item, distance, defaultOffset, threshold)
		case spec.DimRectWidth:
			err = p.rectWidth(item, where(item, "down"), distance)
		case spec.DimRectHeight:
			err = p.rectHeight(item, where(item, "left"), distance)
		case spec.DimOffsetFromCenterX:
			err = p.offsetFromCenterX(item, where(item, "up"), distance)
		case spec.DimOffsetFromCenterY:
			err = p.offsetFromCenterY(item, where(item, "right"), distance)
		case spec.DimOffsetFromLeft:
			err = p.offsetFromLeft(item, where(item, "up"), distance)
		default:
			err = errors.New(errors.ErrCodeInvalidDimension,
				"unsupported dimension type %q", item.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func where(item *spec.DimensionItem, def string) string {
	if item.Where != "" {
		return item.Where
	}
	return def
}

func (p *planner) target(item *spec.DimensionItem, id string) (*Opening, error) {
	o, ok := p.openings.Get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownOpening,
			"dimension %s: unknown target %q", item.Type, id)
	}
	return o, nil
}

func (p *planner) record(kind, target string, base geom.Point) {
	p.placements = append(p.placements, Placement{Kind: kind, Target: target, Base: base})
}

func (p *planner) overallLength(w string, distance float64) {
	baseY := -distance
	if w == "up" {
		baseY = p.width + distance
	}
	p.linearH(geom.Pt(0, 0), geom.Pt(p.length, 0), baseY)
	p.record(spec.DimOverallLength, "", geom.Pt(0, baseY))
}

func (p *planner) overallWidth(w string, distance float64) {
	baseX := -distance
	if w == "right" {
		baseX = p.length + distance
	}
	p.linearV(geom.Pt(0, 0), geom.Pt(0, p.width), baseX)
	p.record(spec.DimOverallWidth, "", geom.Pt(baseX, 0))
}

func (p *planner) diameter(item *spec.DimensionItem, distance, defaultOffset float64, threshold *float64) error {
	o, err := p.target(item, item.Target)
	if err != nil {
		return err
	}
	r := o.Radius
	d := r * 2

	var location *geom.Point
	switch {
	case item.Where != "":
		var loc geom.Point
		switch item.Where {
		case "right":
			loc = geom.Pt(o.Center.X+r+distance, o.Center.Y)
		case "left":
			loc = geom.Pt(o.Center.X-r-distance, o.Center.Y)
		case "up":
			loc = geom.Pt(o.Center.X, o.Center.Y+r+distance)
		case "down":
			loc = geom.Pt(o.Center.X, o.Center.Y-r-distance)
		}
		location = &loc
	case item.Placement == "outside" || (threshold != nil && d <= *threshold):
		// Small circles get the call-out along the outward diagonal so
		// the text does not overwhelm the hole.
		off := defaultOffset
		if item.OutsideOffset != nil {
			off = *item.OutsideOffset
		}
		diag := (r + off) / math.Sqrt2
		loc := geom.Pt(o.Center.X+diag, o.Center.Y+diag)
		location = &loc
	}

	if location != nil {
		p.diameterLeader(o, *location)
		p.record(spec.DimDiameter, o.ID, *location)
		return nil
	}
	p.diameterInside(o)
	p.record(spec.DimDiameter, o.ID, o.Center)
	return nil
}

func (p *planner) rectWidth(item *spec.DimensionItem, w string, distance float64) error {
	o, err := p.target(item, item.Target)
	if err != nil {
		return err
	}
	b := o.Bounds
	if w == "down" {
		baseY := b.Bottom - distance
		p.linearH(geom.Pt(b.Left, b.Bottom), geom.Pt(b.Right, b.Bottom), baseY)
		p.record(spec.DimRectWidth, o.ID, geom.Pt(b.Left, baseY))
	} else {
		baseY := b.Top + distance
		p.linearH(geom.Pt(b.Left, b.Top), geom.Pt(b.Right, b.Top), baseY)
		p.record(spec.DimRectWidth, o.ID, geom.Pt(b.Left, baseY))
	}
	return nil
}

func (p *planner) rectHeight(item *spec.DimensionItem, w string, distance float64) error {
	o, err := p.target(item, item.Target)
	if err != nil {
		return err
	}
	b := o.Bounds
	if w == "left" {
		baseX := b.Left - distance
		p.linearV(geom.Pt(b.Left, b.Bottom), geom.Pt(b.Left, b.Top), baseX)
		p.record(spec.DimRectHeight, o.ID, geom.Pt(baseX, b.Bottom))
	} else {
		baseX := b.Right + distance
		p.linearV(geom.Pt(b.Right, b.Bottom), geom.Pt(b.Right, b.Top), baseX)
		p.record(spec.DimRectHeight, o.ID, geom.Pt(baseX, b.Bottom))
	}
	return nil
}

func (p *planner) offsetFromCenterX(item *spec.DimensionItem, w string, distance float64) error {
	cx := p.length / 2
	cy := p.width / 2
	sign := 1.0
	if w == "down" {
		sign = -1.0
	}
	for _, id := range item.Targets {
		o, err := p.target(item, id)
		if err != nil {
			return err
		}
		baseY := o.Center.Y + (o.sizeAlong("y")+distance)*sign
		p.linearH(geom.Pt(cx, o.Center.Y), geom.Pt(o.Center.X, o.Center.Y), baseY)
		p.record(spec.DimOffsetFromCenterX, id, geom.Pt(cx, baseY))
		p.limits.UpdateVertical(CenterOwner, baseY, cy)
		p.limits.UpdateVertical(id, baseY, o.Center.Y)
	}
	return nil
}

func (p *planner) offsetFromCenterY(item *spec.DimensionItem, w string, distance float64) error {
	cx := p.length / 2
	cy := p.width / 2
	sign := 1.0
	if w == "left" {
		sign = -1.0
	}
	for _, id := range item.Targets {
		o, err := p.target(item, id)
		if err != nil {
			return err
		}
		baseX := o.Center.X + (o.sizeAlong("x")+distance)*sign
		p.linearV(geom.Pt(o.Center.X, cy), geom.Pt(o.Center.X, o.Center.Y), baseX)
		p.record(spec.DimOffsetFromCenterY, id, geom.Pt(baseX, cy))
		p.limits.UpdateHorizontal(CenterOwner, baseX, cx)
		p.limits.UpdateHorizontal(id, baseX, o.Center.X)
	}
	return nil
}

func (p *planner) offsetFromLeft(item *spec.DimensionItem, w string, distance float64) error {
	o, err := p.target(item, item.Target)
	if err != nil {
		return err
	}
	sign := 1.0
	if w == "down" {
		sign = -1.0
	}
	baseY := o.Center.Y + (o.sizeAlong("y")+distance)*sign
	p.linearH(geom.Pt(0, o.Center.Y), geom.Pt(o.Center.X, o.Center.Y), baseY)
	p.record(spec.DimOffsetFromLeft, o.ID, geom.Pt(0, baseY))
	p.limits.UpdateVertical(o.ID, baseY, o.Center.Y)
	return nil
}

// =============================================================================
// Primitive lowering
// =============================================================================

// linearH draws a horizontal linear dimension: witness lines from the
// measured points down (or up) to the base line, the dimension line with
// filled arrowheads, and the measurement text above the line.
func (p *planner) linearH(p1, p2 geom.Point, baseY float64) {
	x1, x2 := p1.X, p2.X
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	p.witnessV(p1.X, p1.Y, baseY)
	p.witnessV(p2.X, p2.Y, baseY)

	p.doc.Add(&drawing.Line{
		LayerName: p.layer,
		Start:     geom.Pt(x1, baseY),
		End:       geom.Pt(x2, baseY),
	})
	p.arrow(geom.Pt(x1, baseY), geom.Pt(1, 0))
	p.arrow(geom.Pt(x2, baseY), geom.Pt(-1, 0))

	p.doc.Add(&drawing.Text{
		LayerName: p.layer,
		Value:     formatMM(x2 - x1),
		Position:  geom.Pt((x1+x2)/2, baseY+p.style.TextHeight*0.6),
		Height:    p.style.TextHeight,
		Align:     drawing.AlignCenter,
	})
}

// linearV is the 90°-rotated counterpart of linearH.
func (p *planner) linearV(p1, p2 geom.Point, baseX float64) {
	y1, y2 := p1.Y, p2.Y
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	p.witnessH(p1.X, p1.Y, baseX)
	p.witnessH(p2.X, p2.Y, baseX)

	p.doc.Add(&drawing.Line{
		LayerName: p.layer,
		Start:     geom.Pt(baseX, y1),
		End:       geom.Pt(baseX, y2),
	})
	p.arrow(geom.Pt(baseX, y1), geom.Pt(0, 1))
	p.arrow(geom.Pt(baseX, y2), geom.Pt(0, -1))

	p.doc.Add(&drawing.Text{
		LayerName: p.layer,
		Value:     formatMM(y2 - y1),
		Position:  geom.Pt(baseX-p.style.TextHeight*0.6, (y1+y2)/2),
		Height:    p.style.TextHeight,
		Rotation:  90,
		Align:     drawing.AlignCenter,
	})
}

// witnessV draws a vertical witness line from a measured point toward
// the base line, leaving the standard gap at the feature and overshoot
// past the dimension line.
func (p *planner) witnessV(x, featureY, baseY float64) {
	dir := 1.0
	if baseY < featureY {
		dir = -1.0
	}
	start := featureY + p.style.ExtOffset*dir
	end := baseY + p.style.ExtBeyond*dir
	p.doc.Add(&drawing.Line{
		LayerName: p.layer,
		Start:     geom.Pt(x, start),
		End:       geom.Pt(x, end),
	})
}

func (p *planner) witnessH(featureX, y, baseX float64) {
	dir := 1.0
	if baseX < featureX {
		dir = -1.0
	}
	start := featureX + p.style.ExtOffset*dir
	end := baseX + p.style.ExtBeyond*dir
	p.doc.Add(&drawing.Line{
		LayerName: p.layer,
		Start:     geom.Pt(start, y),
		End:       geom.Pt(end, y),
	})
}

// arrow draws a filled arrowhead at tip pointing against dir; dir is the
// unit direction from the tip into the dimension line.
func (p *planner) arrow(tip, dir geom.Point) {
	size := p.style.ArrowSize
	halfW := size / 6
	backX := tip.X + dir.X*size
	backY := tip.Y + dir.Y*size
	// Perpendicular of dir
	px, py := -dir.Y, dir.X
	p.doc.Add(&drawing.Solid{
		LayerName: p.layer,
		Corners: [3]geom.Point{
			tip,
			geom.Pt(backX+px*halfW, backY+py*halfW),
			geom.Pt(backX-px*halfW, backY-py*halfW),
		},
	})
}

// diameterInside draws the default in-circle call-out: a diameter line
// through the center at 45° with arrows at both rim intersections and
// the ⌀ text beside the center.
func (p *planner) diameterInside(o *Opening) {
	dx := o.Radius / math.Sqrt2
	a := geom.Pt(o.Center.X-dx, o.Center.Y-dx)
	b := geom.Pt(o.Center.X+dx, o.Center.Y+dx)
	p.doc.Add(&drawing.Line{LayerName: p.layer, Start: a, End: b})
	inward := geom.Pt(1/math.Sqrt2, 1/math.Sqrt2)
	p.arrow(a, inward)
	p.arrow(b, geom.Pt(-inward.X, -inward.Y))
	p.doc.Add(&drawing.Text{
		LayerName: p.layer,
		Value:     diameterText(o.Radius * 2),
		Position:  geom.Pt(o.Center.X+p.style.TextHeight*0.4, o.Center.Y+p.style.TextHeight*0.8),
		Height:    p.style.TextHeight,
		Align:     drawing.AlignLeft,
	})
}

// diameterLeader draws an outside call-out: a leader from the rim to the
// location with the arrow touching the circle, plus the ⌀ text.
func (p *planner) diameterLeader(o *Opening, location geom.Point) {
	dx := location.X - o.Center.X
	dy := location.Y - o.Center.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	ux, uy := dx/dist, dy/dist
	rim := geom.Pt(o.Center.X+ux*o.Radius, o.Center.Y+uy*o.Radius)
	p.doc.Add(&drawing.Line{LayerName: p.layer, Start: rim, End: location})
	p.arrow(rim, geom.Pt(ux, uy))

	align := drawing.AlignLeft
	pos := location
	if ux < 0 {
		align = drawing.AlignTopRight
		pos = geom.Pt(location.X, location.Y+p.style.TextHeight)
	}
	p.doc.Add(&drawing.Text{
		LayerName: p.layer,
		Value:     diameterText(o.Radius * 2),
		Position:  pos,
		Height:    p.style.TextHeight,
		Align:     align,
	})
}

// formatMM formats a measurement in millimeters with up to two decimals
// and no trailing zeros, matching ISO drawing convention for mm values.
func formatMM(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func diameterText(d float64) string {
	return "⌀" + formatMM(d)
}
