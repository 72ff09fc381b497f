// Package svgimport converts SVG sheet templates into drawing documents
// that the DXF encoder can write out. The conversion is best-effort: it
// covers the primitives sheet templates are built from (groups, rects,
// circles, lines, simple paths, text) and reports everything it mapped
// or skipped so the result can be finished in a CAD tool.
package svgimport

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
)

// DefaultLayers is the QCAD-compatible layer set sheet templates are
// sorted into.
var DefaultLayers = []string{
	"1.Outline",
	"Border.Thick",
	"Border.Thin",
	"TitleBlock.Outer",
	"TitleBlock.Inner",
	"Revision",
	"8.Dimension line",
	"Title",
	"9.Text",
	"7.Hatch",
	"6.Construction line",
	"3.Center",
	"AXES",
	"2.Hidden",
	"5.Thin line",
	"4.Note",
}

// groupLayers maps the group ids used by the stock ISO 7200 sheet
// templates to their layers.
var groupLayers = map[string]string{
	"drawing_space_frame":     "Border.Thick",
	"centring_marks":          "3.Center",
	"grid_reference_borders":  "Border.Thin",
	"grid_reference_markers":  "9.Text",
	"trimming_marks":          "Border.Thin",
	"title_block_borders":     "TitleBlock.Inner",
	"title_block_labels":      "Title",
	"title_block_data_fields": "Title",
	"extras_outlines":         "1.Outline",
	"extras_centre_lines":     "3.Center",
}

// elementLayers maps individual element ids that override their group.
var elementLayers = map[string]string{
	"grid_reference_border": "Border.Thin",
	"title_block_frame":     "TitleBlock.Outer",
}

var layerLineweights = map[string]float64{
	"Border.Thick":         0.7,
	"Border.Thin":          0.35,
	"TitleBlock.Outer":     0.7,
	"TitleBlock.Inner":     0.35,
	"1.Outline":            0.5,
	"2.Hidden":             0.35,
	"3.Center":             0.35,
	"AXES":                 0.35,
	"4.Note":               0.25,
	"5.Thin line":          0.35,
	"6.Construction line":  0.25,
	"7.Hatch":              0.25,
	"8.Dimension line":     0.25,
	"9.Text":               0.25,
	"Title":                0.25,
	"Revision":             0.25,
}

// UnmappedLayer holds geometry from groups the name tables don't cover.
const UnmappedLayer = "0"

// Result is the converted document plus the mapping report.
type Result struct {
	Document *drawing.Document
	Report   Report
}

// node is the generic XML tree the decoder fills.
type node struct {
	XMLName    xml.Name
	ID         string `xml:"id,attr"`
	Style      string `xml:"style,attr"`
	ViewBox    string `xml:"viewBox,attr"`
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	X1         string `xml:"x1,attr"`
	Y1         string `xml:"y1,attr"`
	X2         string `xml:"x2,attr"`
	Y2         string `xml:"y2,attr"`
	Width      string `xml:"width,attr"`
	Height     string `xml:"height,attr"`
	CX         string `xml:"cx,attr"`
	CY         string `xml:"cy,attr"`
	R          string `xml:"r,attr"`
	D          string `xml:"d,attr"`
	FontSize   string `xml:"font-size,attr"`
	FontFamily string `xml:"font-family,attr"`
	TextAnchor string `xml:"text-anchor,attr"`
	Text       string `xml:",chardata"`
	Children   []node `xml:",any"`
}

// ConvertFile converts an SVG template file.
func ConvertFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "template %s", path)
	}
	defer f.Close()
	res, err := Convert(f)
	if err != nil {
		return nil, err
	}
	res.Report.Source = path
	return res, nil
}

// Convert converts an SVG template read from r.
func Convert(r io.Reader) (*Result, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing svg")
	}
	if strings.ToLower(root.XMLName.Local) != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "root element is <%s>, not <svg>", root.XMLName.Local)
	}

	width, height := canvasSize(&root)

	doc := drawing.NewDocument()
	doc.EnsureLinetype(drawing.Dashdot())
	for _, name := range DefaultLayers {
		layer := drawing.Layer{Name: name, LineweightMM: layerLineweights[name]}
		if name == "AXES" {
			layer.Linetype = drawing.DashdotLinetypeName
		}
		doc.EnsureLayer(layer)
	}

	c := &converter{
		doc:         doc,
		height:      height,
		counts:      map[string]map[string]int{},
		layerFor:    map[string]string{},
		unmapped:    map[string]bool{},
		unsupported: map[string]bool{},
	}
	c.walk(&root, "", styleMap{})

	// A sample axis line at sheet center so the dash-dot linetype is
	// visible and adjustable when the template is opened in CAD.
	if width > 0 && height > 0 {
		doc.Add(&drawing.Line{
			LayerName: "AXES",
			Linetype:  drawing.DashdotLinetypeName,
			Start:     geom.Pt(width/2-50, height/2),
			End:       geom.Pt(width/2+50, height/2),
		})
	}

	return &Result{Document: doc, Report: c.report()}, nil
}

func canvasSize(root *node) (float64, float64) {
	if parts := strings.Fields(root.ViewBox); len(parts) == 4 {
		return parseFloat(parts[2]), parseFloat(parts[3])
	}
	return parseLength(root.Width, 0), parseLength(root.Height, 0)
}

// =============================================================================
// Tree walk
// =============================================================================

type converter struct {
	doc    *drawing.Document
	height float64

	groups      []string              // group ids in encounter order
	counts      map[string]map[string]int
	layerFor    map[string]string
	unmapped    map[string]bool
	unsupported map[string]bool
}

func (c *converter) walk(n *node, group string, inherited styleMap) {
	style := inherited.merge(n)

	if n.XMLName.Local == "g" {
		id := n.ID
		if id == "" {
			id = group
		}
		for i := range n.Children {
			c.walk(&n.Children[i], id, style)
		}
		return
	}

	switch n.XMLName.Local {
	case "rect":
		c.record(group, n, "rect")
		c.addRect(n, c.layer(group, n.ID))
	case "circle":
		c.record(group, n, "circle")
		c.addCircle(n, c.layer(group, n.ID))
	case "line":
		c.record(group, n, "line")
		c.addLine(n, c.layer(group, n.ID))
	case "path":
		c.record(group, n, "path")
		c.addPath(n, c.layer(group, n.ID), style)
	case "text":
		c.record(group, n, "text")
		c.addText(n, c.layer(group, n.ID), style)
	}

	for i := range n.Children {
		c.walk(&n.Children[i], group, style)
	}
}

// layer resolves the target layer for an element: element id overrides,
// then group id, then the unmapped fallback.
func (c *converter) layer(group, id string) string {
	if l, ok := elementLayers[id]; ok {
		return l
	}
	if l, ok := groupLayers[id]; ok {
		return l
	}
	if l, ok := groupLayers[group]; ok {
		return l
	}
	return UnmappedLayer
}

func (c *converter) record(group string, n *node, kind string) {
	key := group
	if key == "" {
		key = n.ID
	}
	if key == "" {
		key = "(root)"
	}
	if _, ok := c.counts[key]; !ok {
		c.counts[key] = map[string]int{}
		c.groups = append(c.groups, key)
	}
	c.counts[key][kind]++
	layer := c.layer(group, n.ID)
	c.layerFor[key] = layer
	if layer == UnmappedLayer {
		c.unmapped[key] = true
	}
}

// =============================================================================
// Element conversion (SVG y grows down; drawings grow up)
// =============================================================================

func (c *converter) addRect(n *node, layer string) {
	x := parseFloat(n.X)
	w := parseFloat(n.Width)
	h := parseFloat(n.Height)
	y := c.height - parseFloat(n.Y) - h
	c.doc.Add(&drawing.Polyline{
		LayerName: layer,
		Closed:    true,
		Points: []geom.Point{
			geom.Pt(x, y), geom.Pt(x+w, y), geom.Pt(x+w, y+h), geom.Pt(x, y+h),
		},
	})
}

func (c *converter) addCircle(n *node, layer string) {
	c.doc.Add(&drawing.Circle{
		LayerName: layer,
		Center:    geom.Pt(parseFloat(n.CX), c.height-parseFloat(n.CY)),
		Radius:    parseFloat(n.R),
	})
}

func (c *converter) addLine(n *node, layer string) {
	c.doc.Add(&drawing.Line{
		LayerName: layer,
		Start:     geom.Pt(parseFloat(n.X1), c.height-parseFloat(n.Y1)),
		End:       geom.Pt(parseFloat(n.X2), c.height-parseFloat(n.Y2)),
	})
}

func (c *converter) addPath(n *node, layer string, style styleMap) {
	if n.D == "" {
		return
	}
	subpaths, skipped := parsePath(n.D, c.height)
	for cmd := range skipped {
		c.unsupported[cmd] = true
	}
	closed := style["fill"] == "#000000"
	for _, points := range subpaths {
		if len(points) < 2 {
			continue
		}
		c.doc.Add(&drawing.Polyline{LayerName: layer, Points: points, Closed: closed})
	}
}

func (c *converter) addText(n *node, layer string, style styleMap) {
	value := strings.TrimSpace(collectText(n))
	if value == "" {
		return
	}
	align := drawing.AlignLeft
	switch style["text-anchor"] {
	case "middle":
		align = drawing.AlignCenter
	case "end":
		align = drawing.AlignTopRight
	}
	c.doc.Add(&drawing.Text{
		LayerName: layer,
		Value:     value,
		Position:  geom.Pt(parseFloat(n.X), c.height-parseFloat(n.Y)),
		Height:    parseFontSize(style["font-size"]),
		Align:     align,
	})
}

func collectText(n *node) string {
	var b strings.Builder
	b.WriteString(n.Text)
	for i := range n.Children {
		b.WriteString(collectText(&n.Children[i]))
	}
	return b.String()
}

// =============================================================================
// Styles and lengths
// =============================================================================

// styleMap holds inherited presentation attributes.
type styleMap map[string]string

func (s styleMap) merge(n *node) styleMap {
	out := styleMap{}
	for k, v := range s {
		out[k] = v
	}
	for _, part := range strings.Split(n.Style, ";") {
		if k, v, ok := strings.Cut(part, ":"); ok {
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	if n.FontSize != "" {
		out["font-size"] = n.FontSize
	}
	if n.FontFamily != "" {
		out["font-family"] = n.FontFamily
	}
	if n.TextAnchor != "" {
		out["text-anchor"] = n.TextAnchor
	}
	return out
}

// defaultTextHeight is 3.5 CSS px in millimeters.
const defaultTextHeight = 3.5 * 25.4 / 96.0

func parseFontSize(value string) float64 {
	if value == "" {
		return defaultTextHeight
	}
	return parseLength(value, defaultTextHeight)
}
