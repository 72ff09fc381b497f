package dxf

import (
	"bytes"
	"strconv"
	"strings"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
)

// handleAllocator hands out sequential entity handles. DXF handles are
// uppercase hex strings and must be unique across the whole file, so a
// template merge seeds the allocator past the template's maximum.
type handleAllocator struct {
	next uint64
}

func newHandleAllocator(start uint64) *handleAllocator {
	if start < 0x100 {
		start = 0x100
	}
	return &handleAllocator{next: start}
}

func (h *handleAllocator) Next() string {
	v := h.next
	h.next++
	return strings.ToUpper(strconv.FormatUint(v, 16))
}

// Seed returns the next unallocated handle, which is what $HANDSEED
// expects.
func (h *handleAllocator) Seed() string {
	return strings.ToUpper(strconv.FormatUint(h.next, 16))
}

// Encode renders the document as a self-contained R2010 DXF on a blank
// sheet: header, full table set, the document's layers, linetypes, text
// styles and dimension styles, then the entity list in document order.
func Encode(doc *drawing.Document) ([]byte, error) {
	handles := newHandleAllocator(0x100)

	var tags []Tag
	tags = append(tags, headerTags(handles)...)
	tags = append(tags, tableTags(doc, handles)...)
	tags = append(tags, blockTags(handles)...)

	tags = append(tags, str(0, "SECTION"), str(2, "ENTITIES"))
	entityTags, err := EntityTags(doc, handles)
	if err != nil {
		return nil, err
	}
	tags = append(tags, entityTags...)
	tags = append(tags, str(0, "ENDSEC"), str(0, "EOF"))

	// The header is built before the entities, so patch the seed now
	// that every handle is known.
	for i := range tags {
		if tags[i].Code == 9 && tags[i].Value == "$HANDSEED" {
			tags[i+1].Value = handles.Seed()
			break
		}
	}

	var buf bytes.Buffer
	if err := WriteTags(&buf, tags); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headerTags(handles *handleAllocator) []Tag {
	return []Tag{
		str(0, "SECTION"), str(2, "HEADER"),
		str(9, "$ACADVER"), str(1, "AC1024"),
		str(9, "$INSUNITS"), num(70, 4), // millimeters
		str(9, "$MEASUREMENT"), num(70, 1), // metric
		str(9, "$LTSCALE"), flt(40, 1.0),
		str(9, "$HANDSEED"), str(5, handles.Seed()),
		str(0, "ENDSEC"),
	}
}

// =============================================================================
// Tables
// =============================================================================

func tableTags(doc *drawing.Document, handles *handleAllocator) []Tag {
	var tags []Tag
	tags = append(tags, str(0, "SECTION"), str(2, "TABLES"))
	tags = append(tags, vportTable(handles)...)
	tags = append(tags, ltypeTable(doc, handles)...)
	tags = append(tags, layerTable(doc, handles)...)
	tags = append(tags, styleTable(doc, handles)...)
	tags = append(tags, appidTable(handles)...)
	tags = append(tags, dimstyleTable(doc, handles)...)
	tags = append(tags, str(0, "ENDSEC"))
	return tags
}

func tableHeader(name string, count int, handles *handleAllocator) []Tag {
	return []Tag{
		str(0, "TABLE"), str(2, name), str(5, handles.Next()),
		str(100, "AcDbSymbolTable"), num(70, count),
	}
}

func vportTable(handles *handleAllocator) []Tag {
	tags := tableHeader("VPORT", 1, handles)
	tags = append(tags,
		str(0, "VPORT"), str(5, handles.Next()),
		str(100, "AcDbSymbolTableRecord"), str(100, "AcDbViewportTableRecord"),
		str(2, "*Active"), num(70, 0),
		flt(10, 0), flt(20, 0),
		flt(11, 1), flt(21, 1),
		flt(12, 0), flt(22, 0),
		flt(40, 297), flt(41, 1.4),
		str(0, "ENDTAB"),
	)
	return tags
}

func ltypeTable(doc *drawing.Document, handles *handleAllocator) []Tag {
	stock := []drawing.Linetype{
		{Name: "ByBlock"}, {Name: "ByLayer"},
		{Name: "Continuous", Description: "Solid line"},
	}
	all := append(stock, doc.Linetypes...)

	tags := tableHeader("LTYPE", len(all), handles)
	for _, lt := range all {
		tags = append(tags,
			str(0, "LTYPE"), str(5, handles.Next()),
			str(100, "AcDbSymbolTableRecord"), str(100, "AcDbLinetypeTableRecord"),
			str(2, lt.Name), num(70, 0),
			str(3, lt.Description),
			num(72, 65), num(73, len(lt.Pattern)),
			flt(40, lt.PatternLength()),
		)
		for _, e := range lt.Pattern {
			tags = append(tags, flt(49, e), num(74, 0))
		}
	}
	tags = append(tags, str(0, "ENDTAB"))
	return tags
}

func layerTable(doc *drawing.Document, handles *handleAllocator) []Tag {
	all := append([]drawing.Layer{{Name: "0"}}, doc.Layers...)

	tags := tableHeader("LAYER", len(all), handles)
	for _, l := range all {
		tags = append(tags, layerRecord(l, handles.Next())...)
	}
	tags = append(tags, str(0, "ENDTAB"))
	return tags
}

func layerRecord(l drawing.Layer, handle string) []Tag {
	linetype := l.Linetype
	if linetype == "" {
		linetype = "Continuous"
	}
	tags := []Tag{
		str(0, "LAYER"), str(5, handle),
		str(100, "AcDbSymbolTableRecord"), str(100, "AcDbLayerTableRecord"),
		str(2, l.Name), num(70, 0),
		num(62, 7),
	}
	if l.Color != nil {
		tags = append(tags, num(420, l.Color.TrueColor()))
	}
	tags = append(tags,
		str(6, linetype),
		num(370, drawing.LineweightHundredths(l.LineweightMM)),
		str(390, "F"),
	)
	return tags
}

func styleTable(doc *drawing.Document, handles *handleAllocator) []Tag {
	all := append([]drawing.TextStyle{{Name: "Standard", FontFile: "txt"}}, doc.TextStyles...)

	tags := tableHeader("STYLE", len(all), handles)
	for _, ts := range all {
		tags = append(tags,
			str(0, "STYLE"), str(5, handles.Next()),
			str(100, "AcDbSymbolTableRecord"), str(100, "AcDbTextStyleTableRecord"),
			str(2, ts.Name), num(70, 0),
			flt(40, 0), flt(41, 1), flt(50, 0), num(71, 0), flt(42, 2.5),
			str(3, ts.FontFile), str(4, ""),
		)
	}
	tags = append(tags, str(0, "ENDTAB"))
	return tags
}

func appidTable(handles *handleAllocator) []Tag {
	tags := tableHeader("APPID", 1, handles)
	tags = append(tags,
		str(0, "APPID"), str(5, handles.Next()),
		str(100, "AcDbSymbolTableRecord"), str(100, "AcDbRegAppTableRecord"),
		str(2, "ACAD"), num(70, 0),
		str(0, "ENDTAB"),
	)
	return tags
}

func dimstyleTable(doc *drawing.Document, handles *handleAllocator) []Tag {
	tags := []Tag{
		str(0, "TABLE"), str(2, "DIMSTYLE"), str(5, handles.Next()),
		str(100, "AcDbSymbolTable"), num(70, len(doc.DimStyles)),
		str(100, "AcDbDimStyleTable"),
	}
	for _, ds := range doc.DimStyles {
		lw := drawing.LineweightHundredths(ds.LineweightMM)
		tags = append(tags,
			str(0, "DIMSTYLE"), str(105, handles.Next()),
			str(100, "AcDbSymbolTableRecord"), str(100, "AcDbDimStyleTableRecord"),
			str(2, ds.Name), num(70, 0),
			flt(41, ds.ArrowSize),
			flt(42, ds.ExtOffset),
			flt(44, ds.ExtBeyond),
			flt(140, ds.TextHeight),
			num(371, lw), num(372, lw),
		)
	}
	tags = append(tags, str(0, "ENDTAB"))
	return tags
}

func blockTags(handles *handleAllocator) []Tag {
	block := func(name string) []Tag {
		return []Tag{
			str(0, "BLOCK"), str(5, handles.Next()),
			str(100, "AcDbEntity"), str(8, "0"),
			str(100, "AcDbBlockBegin"), str(2, name), num(70, 0),
			flt(10, 0), flt(20, 0), flt(30, 0), str(3, name), str(1, ""),
			str(0, "ENDBLK"), str(5, handles.Next()),
			str(100, "AcDbEntity"), str(8, "0"), str(100, "AcDbBlockEnd"),
		}
	}
	var tags []Tag
	tags = append(tags, str(0, "SECTION"), str(2, "BLOCKS"))
	tags = append(tags, block("*Model_Space")...)
	tags = append(tags, block("*Paper_Space")...)
	tags = append(tags, str(0, "ENDSEC"))
	return tags
}

// =============================================================================
// Entities
// =============================================================================

// EntityTags lowers every document entity to its tag form. The same
// lowering feeds both the blank-sheet writer and the template merge.
func EntityTags(doc *drawing.Document, handles *handleAllocator) ([]Tag, error) {
	var tags []Tag
	for _, e := range doc.Entities {
		t, err := entityTags(e, handles)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t...)
	}
	return tags, nil
}

func entityTags(e drawing.Entity, handles *handleAllocator) ([]Tag, error) {
	switch v := e.(type) {
	case *drawing.Line:
		return lineTags(v, handles), nil
	case *drawing.Polyline:
		return polylineTags(v, handles), nil
	case *drawing.Circle:
		return circleTags(v, handles), nil
	case *drawing.Text:
		return textTags(v, handles), nil
	case *drawing.Solid:
		return solidTags(v, handles), nil
	case *drawing.Hatch:
		return hatchTags(v, handles), nil
	default:
		return nil, errors.New(errors.ErrCodeEncode, "unsupported entity type %T", e)
	}
}

func entityHeader(kind, handle, layer string) []Tag {
	return []Tag{
		str(0, kind), str(5, handle),
		str(100, "AcDbEntity"), str(8, layer),
	}
}

func lineTags(l *drawing.Line, handles *handleAllocator) []Tag {
	tags := entityHeader("LINE", handles.Next(), l.LayerName)
	if l.Linetype != "" {
		tags = append(tags, str(6, l.Linetype))
	}
	tags = append(tags,
		str(100, "AcDbLine"),
		flt(10, l.Start.X), flt(20, l.Start.Y), flt(30, 0),
		flt(11, l.End.X), flt(21, l.End.Y), flt(31, 0),
	)
	return tags
}

func polylineTags(p *drawing.Polyline, handles *handleAllocator) []Tag {
	closed := 0
	if p.Closed {
		closed = 1
	}
	tags := entityHeader("LWPOLYLINE", handles.Next(), p.LayerName)
	tags = append(tags,
		str(100, "AcDbPolyline"),
		num(90, len(p.Points)), num(70, closed),
	)
	for _, pt := range p.Points {
		tags = append(tags, flt(10, pt.X), flt(20, pt.Y))
	}
	return tags
}

func circleTags(c *drawing.Circle, handles *handleAllocator) []Tag {
	tags := entityHeader("CIRCLE", handles.Next(), c.LayerName)
	tags = append(tags,
		str(100, "AcDbCircle"),
		flt(10, c.Center.X), flt(20, c.Center.Y), flt(30, 0),
		flt(40, c.Radius),
	)
	return tags
}

func textTags(t *drawing.Text, handles *handleAllocator) []Tag {
	style := t.Style
	if style == "" {
		style = "Standard"
	}
	halign, valign := 0, 0
	switch t.Align {
	case drawing.AlignCenter:
		halign, valign = 1, 2
	case drawing.AlignTopRight:
		halign, valign = 2, 3
	}

	tags := entityHeader("TEXT", handles.Next(), t.LayerName)
	tags = append(tags,
		str(100, "AcDbText"),
		flt(10, t.Position.X), flt(20, t.Position.Y), flt(30, 0),
		flt(40, t.Height),
		str(1, t.Value),
	)
	if t.Rotation != 0 {
		tags = append(tags, flt(50, t.Rotation))
	}
	tags = append(tags, str(7, style), num(72, halign))
	if halign != 0 {
		// Aligned text anchors at the second point; the first is ignored.
		tags = append(tags, flt(11, t.Position.X), flt(21, t.Position.Y), flt(31, 0))
	}
	tags = append(tags, str(100, "AcDbText"), num(73, valign))
	return tags
}

func solidTags(s *drawing.Solid, handles *handleAllocator) []Tag {
	tags := entityHeader("SOLID", handles.Next(), s.LayerName)
	tags = append(tags,
		str(100, "AcDbTrace"),
		flt(10, s.Corners[0].X), flt(20, s.Corners[0].Y), flt(30, 0),
		flt(11, s.Corners[1].X), flt(21, s.Corners[1].Y), flt(31, 0),
		flt(12, s.Corners[2].X), flt(22, s.Corners[2].Y), flt(32, 0),
		// A SOLID is a quad; a triangle repeats the last corner.
		flt(13, s.Corners[2].X), flt(23, s.Corners[2].Y), flt(33, 0),
	)
	return tags
}

func hatchTags(h *drawing.Hatch, handles *handleAllocator) []Tag {
	tags := entityHeader("HATCH", handles.Next(), h.LayerName)
	tags = append(tags,
		num(62, 256), // BYLAYER so the layer's true color shows through
		str(100, "AcDbHatch"),
		flt(10, 0), flt(20, 0), flt(30, 0),
		flt(210, 0), flt(220, 0), flt(230, 1),
		str(2, "SOLID"), num(70, 1), num(71, 0),
		num(91, 1),          // one boundary path
		num(92, 2),          // polyline path
		num(72, 0), num(73, 1),
		num(93, len(h.Boundary)),
	)
	for _, pt := range h.Boundary {
		tags = append(tags, flt(10, pt.X), flt(20, pt.Y))
	}
	tags = append(tags,
		num(97, 0),
		num(75, 1), num(76, 1), num(98, 0),
	)
	return tags
}
