// Package spec defines the declarative panel specification and its TOML
// loader. A spec describes the panel blank, its openings, dimension
// call-outs, symmetry axes, annotations, styling and sheet placement;
// pkg/layout turns it into drawing entities.
package spec

// Opening kinds.
const (
	OpeningCircle = "circle"
	OpeningRect   = "rect"
	OpeningNotchU = "notch_u"
)

// Dimension item kinds.
const (
	DimOverallLength     = "overall_length"
	DimOverallWidth      = "overall_width"
	DimDiameter          = "diameter"
	DimRectWidth         = "rect_width"
	DimRectHeight        = "rect_height"
	DimOffsetFromCenterX = "offset_from_center_x"
	DimOffsetFromCenterY = "offset_from_center_y"
	DimOffsetFromLeft    = "offset_from_left"
)

// Text alignment values.
const (
	AlignTopRight = "top_right"
	AlignCenter   = "center"
	AlignLeft     = "left"
)

// IssueDatePlaceholder in a title block field is replaced with today's
// date formatted as dd.mm.yyyy.
const IssueDatePlaceholder = "DD.MM.YYYY"

// Spec is a complete panel drawing specification.
type Spec struct {
	Panel      Panel      `toml:"panel"`
	Openings   []Opening  `toml:"openings"`
	Dimensions Dimensions `toml:"dimensions"`
	Axes       Axes       `toml:"axes"`
	Text       TextBlock  `toml:"text"`
	Styles     Styles     `toml:"styles"`
	Sheet      Sheet      `toml:"sheet"`
	TitleBlock TitleBlock `toml:"title_block"`
}

// Panel describes the panel blank.
type Panel struct {
	Size Size `toml:"size"`
}

// Size is the panel extent in millimeters.
type Size struct {
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
}

// Opening is a cutout in the panel. Which fields apply depends on Type:
// circles use Diameter, rects use Width and Height, U-notches use Height
// plus the FromLeft/ToX/ToXRef span fields.
type Opening struct {
	ID       string   `toml:"id"`
	Type     string   `toml:"type"`
	Diameter float64  `toml:"diameter"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Center   Position `toml:"center"`

	// U-notch span. FromLeft defaults to the panel's left edge.
	FromLeft *float64 `toml:"from_left"`
	ToX      *float64 `toml:"to_x"`
	ToXRef   string   `toml:"to_x_ref"`

	// CenteredOnY defaults to true; when false, CenterY places the notch.
	CenteredOnY *bool    `toml:"centered_on_y"`
	CenterY     *float64 `toml:"center_y"`
}

// Position locates an opening center. For each axis the first set field
// wins, in the order: from_center, from_left/bottom, from_right/top,
// absolute. Unset axes default to the panel midline.
type Position struct {
	XFromCenter *float64 `toml:"x_from_center"`
	XFromLeft   *float64 `toml:"x_from_left"`
	XFromRight  *float64 `toml:"x_from_right"`
	X           *float64 `toml:"x"`

	YFromCenter *float64 `toml:"y_from_center"`
	YFromBottom *float64 `toml:"y_from_bottom"`
	YFromTop    *float64 `toml:"y_from_top"`
	Y           *float64 `toml:"y"`
}

// Dimensions holds the ordered dimension call-out list.
type Dimensions struct {
	Items []DimensionItem `toml:"items"`
}

// DimensionItem requests one dimension call-out. Target applies to
// single-target kinds (diameter, rect_width, rect_height,
// offset_from_left); Targets to the offset_from_center kinds.
type DimensionItem struct {
	Type          string   `toml:"type"`
	Target        string   `toml:"target"`
	Targets       []string `toml:"targets"`
	Where         string   `toml:"where"`
	Distance      *float64 `toml:"distance"`
	Label         string   `toml:"label"`
	Placement     string   `toml:"placement"`
	OutsideOffset *float64 `toml:"outside_offset"`
}

// Axes configures symmetry axis generation.
type Axes struct {
	Overhang *float64 `toml:"overhang"`

	// ExtendToDimensions defaults to true: axes grow to reach the
	// dimension lines recorded against their owner.
	ExtendToDimensions *bool       `toml:"extend_to_dimensions"`
	Center             CenterAxes  `toml:"center"`
	Openings           OpeningAxes `toml:"openings"`
}

// CenterAxes enables the panel center lines.
type CenterAxes struct {
	Vertical   bool `toml:"vertical"`
	Horizontal bool `toml:"horizontal"`
}

// OpeningAxes enables per-opening symmetry axes.
type OpeningAxes struct {
	Circles bool `toml:"circles"`
	Rects   bool `toml:"rects"`
}

// TextBlock holds free text annotations.
type TextBlock struct {
	Items []TextItem `toml:"items"`
}

// TextItem is one annotation. Align defaults to center.
type TextItem struct {
	Value string     `toml:"value"`
	Align string     `toml:"align"`
	At    TextAnchor `toml:"at"`
}

// TextAnchor locates a text item. Refs take precedence over edge
// offsets; unset axes default to the panel midline.
type TextAnchor struct {
	XRef       string   `toml:"x_ref"`
	XFromRight *float64 `toml:"x_from_right"`
	XFromLeft  *float64 `toml:"x_from_left"`

	YRef        string   `toml:"y_ref"`
	YFromTop    *float64 `toml:"y_from_top"`
	YFromBottom *float64 `toml:"y_from_bottom"`
}

// Styles bundles layer, dimension and text styling.
type Styles struct {
	Layers     LayerStyles     `toml:"layers"`
	Dimensions DimensionStyles `toml:"dimensions"`
	Text       TextStyleSpec   `toml:"text"`
}

// LayerStyles overrides the default drawing layers. A nil entry keeps
// the built-in defaults; the background layer only exists when set.
type LayerStyles struct {
	Outline    *LayerStyle `toml:"outline"`
	Cutouts    *LayerStyle `toml:"cutouts"`
	Axes       *LayerStyle `toml:"axes"`
	Dimensions *LayerStyle `toml:"dimensions"`
	Text       *LayerStyle `toml:"text"`
	Background *LayerStyle `toml:"background"`
}

// LayerStyle overrides one layer definition.
type LayerStyle struct {
	Name       string   `toml:"name"`
	Lineweight *float64 `toml:"lineweight"`
	Color      string   `toml:"color"`
	Linetype   string   `toml:"linetype"`
}

// DimensionStyles configures the dimension style and default offsets.
type DimensionStyles struct {
	Style                     string   `toml:"style"`
	Offset                    *float64 `toml:"offset"`
	SmallHoleOutsideThreshold *float64 `toml:"small_hole_outside_threshold"`
}

// TextStyleSpec configures annotation text rendering.
type TextStyleSpec struct {
	Font     string   `toml:"font"`
	HeightPt *float64 `toml:"height_pt"`
}

// Sheet configures the sheet template and drawing placement.
type Sheet struct {
	Template string       `toml:"template"`
	FreeArea *FreeArea    `toml:"free_area"`
	Center   CenterConfig `toml:"center"`
}

// FreeArea is the sheet region reserved for the drawing, in sheet
// coordinates.
type FreeArea struct {
	Left   float64 `toml:"left"`
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
}

// CenterConfig tunes drawing centering inside the free area.
type CenterConfig struct {
	RoundToMM *bool `toml:"round_to_mm"`
}

// TitleBlock configures template title block substitution.
type TitleBlock struct {
	Apply  *bool             `toml:"apply"`
	Fields map[string]string `toml:"fields"`
}

// Default values applied when the spec leaves a knob unset.
const (
	DefaultDimensionOffset = 7.0
	DefaultAxisOverhang    = 2.0
	DefaultTextFont        = "Segoe UI Semibold"
	DefaultTextHeightPt    = 9.0
	DefaultDimensionStyle  = "ISO-25"
)

// DimensionOffset returns the configured default dimension offset.
func (s *Spec) DimensionOffset() float64 {
	if s.Styles.Dimensions.Offset != nil {
		return *s.Styles.Dimensions.Offset
	}
	return DefaultDimensionOffset
}

// AxisOverhang returns the configured axis overhang.
func (s *Spec) AxisOverhang() float64 {
	if s.Axes.Overhang != nil {
		return *s.Axes.Overhang
	}
	return DefaultAxisOverhang
}

// TextFont returns the configured annotation font family.
func (s *Spec) TextFont() string {
	if s.Styles.Text.Font != "" {
		return s.Styles.Text.Font
	}
	return DefaultTextFont
}

// TextHeightMM returns the annotation text height in millimeters.
func (s *Spec) TextHeightMM() float64 {
	pt := DefaultTextHeightPt
	if s.Styles.Text.HeightPt != nil {
		pt = *s.Styles.Text.HeightPt
	}
	return pt / 72.0 * 25.4
}

// DimensionStyleName returns the configured dimension style name.
func (s *Spec) DimensionStyleName() string {
	if s.Styles.Dimensions.Style != "" {
		return s.Styles.Dimensions.Style
	}
	return DefaultDimensionStyle
}

// ExtendAxesToDimensions reports whether axes grow to cover the
// recorded dimension limits.
func (s *Spec) ExtendAxesToDimensions() bool {
	if s.Axes.ExtendToDimensions != nil {
		return *s.Axes.ExtendToDimensions
	}
	return true
}

// RoundCenterToMM reports whether the centered drawing's y coordinate is
// rounded to a whole millimeter.
func (s *Spec) RoundCenterToMM() bool {
	if s.Sheet.Center.RoundToMM != nil {
		return *s.Sheet.Center.RoundToMM
	}
	return true
}

// ApplyTitleBlock reports whether template title block fields are filled.
func (s *Spec) ApplyTitleBlock() bool {
	if s.TitleBlock.Apply != nil {
		return *s.TitleBlock.Apply
	}
	return true
}

// Opening returns the opening with the given id.
func (s *Spec) Opening(id string) (Opening, bool) {
	for _, o := range s.Openings {
		if o.ID == id {
			return o, true
		}
	}
	return Opening{}, false
}
