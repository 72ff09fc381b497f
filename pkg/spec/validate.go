package spec

import (
	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
)

var dimensionTypes = map[string]bool{
	DimOverallLength:     true,
	DimOverallWidth:      true,
	DimDiameter:          true,
	DimRectWidth:         true,
	DimRectHeight:        true,
	DimOffsetFromCenterX: true,
	DimOffsetFromCenterY: true,
	DimOffsetFromLeft:    true,
}

// whereValues lists the accepted placement sides per dimension kind.
var whereValues = map[string]map[string]bool{
	DimOverallLength:     {"down": true, "up": true},
	DimOverallWidth:      {"left": true, "right": true},
	DimDiameter:          {"right": true, "left": true, "up": true, "down": true},
	DimRectWidth:         {"down": true, "up": true},
	DimRectHeight:        {"left": true, "right": true},
	DimOffsetFromCenterX: {"up": true, "down": true},
	DimOffsetFromCenterY: {"right": true, "left": true},
	DimOffsetFromLeft:    {"up": true, "down": true},
}

// Validate checks a decoded spec for structural problems: bad sizes,
// duplicate or malformed ids, unknown enum values, dangling dimension
// targets and unparsable colors. Reference ordering is checked later by
// the geometry resolver, which knows declaration order.
func Validate(s *Spec) error {
	if s.Panel.Size.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "panel.size.length must be > 0, got %v", s.Panel.Size.Length)
	}
	if s.Panel.Size.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "panel.size.width must be > 0, got %v", s.Panel.Size.Width)
	}

	ids := make(map[string]bool, len(s.Openings))
	for i := range s.Openings {
		o := &s.Openings[i]
		if err := errors.ValidateOpeningID(o.ID); err != nil {
			return err
		}
		if ids[o.ID] {
			return errors.New(errors.ErrCodeInvalidOpening, "duplicate opening id %q", o.ID)
		}
		ids[o.ID] = true
		if err := validateOpening(o); err != nil {
			return err
		}
	}

	for i := range s.Dimensions.Items {
		if err := validateDimension(&s.Dimensions.Items[i], ids); err != nil {
			return err
		}
	}

	for i := range s.Text.Items {
		if err := validateTextItem(&s.Text.Items[i]); err != nil {
			return err
		}
	}

	if err := validateStyles(&s.Styles); err != nil {
		return err
	}

	if fa := s.Sheet.FreeArea; fa != nil {
		if fa.Right <= fa.Left || fa.Top <= fa.Bottom {
			return errors.New(errors.ErrCodeInvalidSpec,
				"sheet.free_area must have right > left and top > bottom")
		}
	}
	return nil
}

func validateOpening(o *Opening) error {
	switch o.Type {
	case OpeningCircle:
		if o.Diameter <= 0 {
			return errors.New(errors.ErrCodeInvalidOpening, "opening %q: diameter must be > 0", o.ID)
		}
	case OpeningRect:
		if o.Width <= 0 || o.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidOpening,
				"opening %q: width and height must be > 0", o.ID)
		}
	case OpeningNotchU:
		if o.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidOpening, "opening %q: height must be > 0", o.ID)
		}
		if o.ToX == nil && o.ToXRef == "" {
			return errors.New(errors.ErrCodeInvalidOpening,
				"opening %q: notch_u needs to_x or to_x_ref", o.ID)
		}
		if o.ToXRef != "" {
			if err := errors.ValidateReference(o.ToXRef); err != nil {
				return err
			}
		}
		if o.CenteredOnY != nil && !*o.CenteredOnY && o.CenterY == nil {
			return errors.New(errors.ErrCodeInvalidOpening,
				"opening %q: centered_on_y = false needs center_y", o.ID)
		}
	default:
		return errors.New(errors.ErrCodeInvalidOpening,
			"opening %q: unknown type %q", o.ID, o.Type)
	}
	return nil
}

func validateDimension(item *DimensionItem, ids map[string]bool) error {
	if !dimensionTypes[item.Type] {
		return errors.New(errors.ErrCodeInvalidDimension, "unknown dimension type %q", item.Type)
	}
	if item.Where != "" && !whereValues[item.Type][item.Where] {
		return errors.New(errors.ErrCodeInvalidDimension,
			"dimension %s: where %q not supported", item.Type, item.Where)
	}
	if item.Placement != "" && item.Placement != "outside" {
		return errors.New(errors.ErrCodeInvalidDimension,
			"dimension %s: placement %q not supported", item.Type, item.Placement)
	}

	switch item.Type {
	case DimDiameter, DimRectWidth, DimRectHeight, DimOffsetFromLeft:
		if item.Target == "" {
			return errors.New(errors.ErrCodeInvalidDimension, "dimension %s: target required", item.Type)
		}
		if !ids[item.Target] {
			return errors.New(errors.ErrCodeUnknownOpening,
				"dimension %s: unknown target %q", item.Type, item.Target)
		}
	case DimOffsetFromCenterX, DimOffsetFromCenterY:
		if len(item.Targets) == 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "dimension %s: targets required", item.Type)
		}
		for _, t := range item.Targets {
			if !ids[t] {
				return errors.New(errors.ErrCodeUnknownOpening,
					"dimension %s: unknown target %q", item.Type, t)
			}
		}
	}
	return nil
}

func validateTextItem(item *TextItem) error {
	if item.Value == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "text item: value required")
	}
	switch item.Align {
	case "", AlignTopRight, AlignCenter, AlignLeft:
	default:
		return errors.New(errors.ErrCodeInvalidSpec, "text item %q: unknown align %q", item.Value, item.Align)
	}
	if item.At.XRef != "" {
		if err := errors.ValidateReference(item.At.XRef); err != nil {
			return err
		}
	}
	if item.At.YRef != "" {
		if err := errors.ValidateReference(item.At.YRef); err != nil {
			return err
		}
	}
	return nil
}

func validateStyles(st *Styles) error {
	layers := []*LayerStyle{
		st.Layers.Outline, st.Layers.Cutouts, st.Layers.Axes,
		st.Layers.Dimensions, st.Layers.Text, st.Layers.Background,
	}
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Name != "" {
			if err := errors.ValidateLayerName(l.Name); err != nil {
				return err
			}
		}
		if l.Lineweight != nil && *l.Lineweight < 0 {
			return errors.New(errors.ErrCodeInvalidSpec,
				"layer %q: lineweight must be >= 0", l.Name)
		}
		if l.Color != "" {
			if _, err := drawing.ParseColor(l.Color); err != nil {
				return err
			}
		}
	}
	return nil
}
