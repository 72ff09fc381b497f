package layout

import (
	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// planText places free text annotations. Anchors reuse the resolver's
// reference primitive but never feed back into axis limits.
func planText(doc *drawing.Document, s *spec.Spec, openings *OpeningTable, layer string) error {
	length := s.Panel.Size.Length
	width := s.Panel.Size.Width
	height := s.TextHeightMM()

	for i := range s.Text.Items {
		item := &s.Text.Items[i]
		at := item.At

		x := length / 2
		switch {
		case at.XRef != "":
			v, err := openings.ResolveRef(at.XRef)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "text %q", item.Value)
			}
			x = v
		case at.XFromRight != nil:
			x = length - *at.XFromRight
		case at.XFromLeft != nil:
			x = *at.XFromLeft
		}

		y := width / 2
		switch {
		case at.YRef != "":
			v, err := openings.ResolveRef(at.YRef)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "text %q", item.Value)
			}
			y = v
		case at.YFromTop != nil:
			y = width - *at.YFromTop
		case at.YFromBottom != nil:
			y = *at.YFromBottom
		}

		align := drawing.AlignCenter
		switch item.Align {
		case spec.AlignTopRight:
			align = drawing.AlignTopRight
		case spec.AlignLeft:
			align = drawing.AlignLeft
		}

		doc.Add(&drawing.Text{
			LayerName: layer,
			Style:     drawing.LabelTextStyle,
			Value:     item.Value,
			Position:  geom.Pt(x, y),
			Height:    height,
			Align:     align,
		})
	}
	return nil
}
