// Package drawing defines the in-memory model of a panel drawing: layers,
// linetypes, text styles and the ordered entity list the layout engine
// produces. The model is format-neutral; pkg/dxf and pkg/render encode it.
//
// All coordinates and lengths are millimeters. Lineweights are stored in
// millimeters and converted to DXF hundredths only at encode time.
package drawing

import (
	"math"

	"faceplate/pkg/geom"
)

// Well-known layer roles. Specs may rename the layers; these are the
// defaults the engine falls back to.
const (
	DefaultOutlineLayer    = "OUTLINE"
	DefaultCutoutLayer     = "CUTOUTS"
	DefaultAxesLayer       = "AXES"
	DefaultDimensionsLayer = "DIMENSIONS"
	DefaultTextLayer       = "TEXT"
	DefaultBackgroundLayer = "BACKGROUND"
)

// DashdotLinetypeName is the linetype used for symmetry axes.
const DashdotLinetypeName = "DASHDOT"

// LabelTextStyle is the text style used for panel annotations.
const LabelTextStyle = "LABEL"

// Layer describes a named drawing layer.
type Layer struct {
	Name         string
	LineweightMM float64
	Linetype     string // empty = continuous
	Color        *RGB   // nil = default (black/white per viewer)
}

// Linetype describes a dash pattern. Pattern elements are dash lengths:
// positive = dash, negative = gap, zero = dot.
type Linetype struct {
	Name        string
	Description string
	Pattern     []float64
}

// PatternLength returns the total length of one pattern repetition.
func (lt Linetype) PatternLength() float64 {
	var sum float64
	for _, e := range lt.Pattern {
		sum += math.Abs(e)
	}
	return sum
}

// Dashdot is the symmetry-axis linetype: long dash, gap, dot, gap.
func Dashdot() Linetype {
	return Linetype{
		Name:        DashdotLinetypeName,
		Description: "Symmetry axis dash-dot 6-1.5-0-1.5-6",
		Pattern:     []float64{6.0, -1.5, 0.0, -1.5, 6.0},
	}
}

// TextStyle describes a named text style and the font file backing it.
type TextStyle struct {
	Name     string
	FontFile string // e.g. "Segoe UI Semibold.ttf"
}

// DimStyle carries the dimension-style parameters the encoder writes and
// the planner uses when lowering call-outs to primitives.
type DimStyle struct {
	Name         string
	LineweightMM float64 // dimension and extension line weight
	ArrowSize    float64 // filled arrowhead length
	TextHeight   float64 // measurement text height
	ExtBeyond    float64 // extension line overshoot past the dimension line
	ExtOffset    float64 // gap between the feature and the extension line start
}

// ISO25 returns the ISO-25 dimension style with the given line weight.
// The proportions follow the ISO defaults (2.5 mm text and arrows).
func ISO25(lineweightMM float64) DimStyle {
	return DimStyle{
		Name:         "ISO-25",
		LineweightMM: lineweightMM,
		ArrowSize:    2.5,
		TextHeight:   2.5,
		ExtBeyond:    1.25,
		ExtOffset:    0.625,
	}
}

// Document is an assembled drawing: table definitions plus the ordered
// entity list. A Document holds only generated entities; sheet-template
// content stays in the template it came from and is merged at encode time.
type Document struct {
	Layers     []Layer
	Linetypes  []Linetype
	TextStyles []TextStyle
	DimStyles  []DimStyle
	Entities   []Entity
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// EnsureLayer adds the layer if no layer with the same name exists,
// otherwise it replaces the existing definition.
func (d *Document) EnsureLayer(l Layer) {
	for i := range d.Layers {
		if d.Layers[i].Name == l.Name {
			d.Layers[i] = l
			return
		}
	}
	d.Layers = append(d.Layers, l)
}

// Layer returns the layer definition with the given name.
func (d *Document) Layer(name string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// EnsureLinetype adds the linetype if it is not already defined.
func (d *Document) EnsureLinetype(lt Linetype) {
	for _, existing := range d.Linetypes {
		if existing.Name == lt.Name {
			return
		}
	}
	d.Linetypes = append(d.Linetypes, lt)
}

// EnsureTextStyle adds the text style if it is not already defined.
func (d *Document) EnsureTextStyle(ts TextStyle) {
	for _, existing := range d.TextStyles {
		if existing.Name == ts.Name {
			return
		}
	}
	d.TextStyles = append(d.TextStyles, ts)
}

// EnsureDimStyle adds the dimension style if it is not already defined.
func (d *Document) EnsureDimStyle(ds DimStyle) {
	for _, existing := range d.DimStyles {
		if existing.Name == ds.Name {
			return
		}
	}
	d.DimStyles = append(d.DimStyles, ds)
}

// Add appends entities to the document.
func (d *Document) Add(entities ...Entity) {
	d.Entities = append(d.Entities, entities...)
}

// BBox returns the bounding box of all entities in the document.
func (d *Document) BBox() geom.BBox {
	var box geom.BBox
	for _, e := range d.Entities {
		box.Union(e.BBox())
	}
	return box
}

// Translate moves every entity in the document by (dx, dy).
func (d *Document) Translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, e := range d.Entities {
		e.Translate(dx, dy)
	}
}

// EntitiesOnLayer returns the entities whose layer matches any of the
// given names, preserving document order.
func (d *Document) EntitiesOnLayer(names ...string) []Entity {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Entity
	for _, e := range d.Entities {
		if want[e.Layer()] {
			out = append(out, e)
		}
	}
	return out
}

// LineweightHundredths converts a lineweight in millimeters to the DXF
// lineweight enumeration (hundredths of a millimeter, never negative).
func LineweightHundredths(mm float64) int {
	v := int(math.Round(mm * 100.0))
	if v < 0 {
		return 0
	}
	return v
}

// PointsToMM converts a font size in typographic points to millimeters.
func PointsToMM(pt float64) float64 {
	return pt / 72.0 * 25.4
}
