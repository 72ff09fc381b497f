package dxf

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
)

// Template is a loaded sheet template. The tag stream is kept verbatim;
// merging mutates it in place so everything the template carries (title
// block, border, viewports, object dictionaries) survives untouched.
type Template struct {
	tags    []Tag
	handles *handleAllocator
}

// LoadTemplate reads a template DXF from disk.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "template %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeTemplate, err, "template %s", path)
	}
	defer f.Close()
	return ParseTemplate(f)
}

// ParseTemplate reads a template from a tag stream and seeds the handle
// allocator past the highest handle the template already uses.
func ParseTemplate(r io.Reader) (*Template, error) {
	tags, err := ParseTags(r)
	if err != nil {
		return nil, err
	}
	var max uint64
	for _, t := range tags {
		if t.Code != 5 && t.Code != 105 {
			continue
		}
		if v, err := strconv.ParseUint(strings.TrimSpace(t.Value), 16, 64); err == nil && v > max {
			max = v
		}
	}
	return &Template{tags: tags, handles: newHandleAllocator(max + 1)}, nil
}

// Insert merges the document into the template: table records for the
// document's layers, linetypes and text styles that the template lacks,
// then the lowered entities at the end of the ENTITIES section.
func (t *Template) Insert(doc *drawing.Document) error {
	for _, lt := range doc.Linetypes {
		t.ensureTableRecord("LTYPE", lt.Name, linetypeRecord(lt, t.handles.Next()))
	}
	for _, l := range doc.Layers {
		t.ensureTableRecord("LAYER", l.Name, layerRecord(l, t.handles.Next()))
	}
	for _, ts := range doc.TextStyles {
		t.ensureTableRecord("STYLE", ts.Name, textStyleRecord(ts, t.handles.Next()))
	}

	entityTags, err := EntityTags(doc, t.handles)
	if err != nil {
		return err
	}
	end := t.sectionEnd("ENTITIES")
	if end < 0 {
		return errors.New(errors.ErrCodeTemplate, "template has no ENTITIES section")
	}
	t.tags = insertTags(t.tags, end, entityTags)
	return nil
}

// Encode writes the merged template back out, with $HANDSEED raised past
// every handle allocated during the merge.
func (t *Template) Encode() ([]byte, error) {
	for i := 0; i < len(t.tags)-1; i++ {
		if t.tags[i].Code == 9 && t.tags[i].Value == "$HANDSEED" {
			t.tags[i+1].Value = t.handles.Seed()
			break
		}
	}
	var buf bytes.Buffer
	if err := WriteTags(&buf, t.tags); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FitViewport points the paperspace viewport at the free area: view
// center on the area's center and view height covering the area in both
// directions, with 2% slack. The viewport with id 1 is the paperspace
// overlay itself and is left alone.
func (t *Template) FitViewport(free geom.Rect) bool {
	for start, end := range t.entities() {
		if t.tags[start].Value != "VIEWPORT" {
			continue
		}
		var id int
		var width, height float64
		for i := start; i < end; i++ {
			switch t.tags[i].Code {
			case 69:
				id, _ = strconv.Atoi(strings.TrimSpace(t.tags[i].Value))
			case 40:
				width, _ = t.tags[i].Float()
			case 41:
				height, _ = t.tags[i].Float()
			}
		}
		if id == 1 || height == 0 {
			continue
		}

		aspect := width / height
		viewHeight := free.Height()
		if byWidth := free.Width() / aspect; byWidth > viewHeight {
			viewHeight = byWidth
		}
		viewHeight *= 1.02
		center := free.Center()

		for i := start; i < end; i++ {
			switch t.tags[i].Code {
			case 12:
				t.tags[i] = flt(12, center.X)
			case 22:
				t.tags[i] = flt(22, center.Y)
			case 45:
				t.tags[i] = flt(45, viewHeight)
			}
		}
		return true
	}
	return false
}

// BorderBBox returns the bounding box of the template entities on the
// given layer. Used to derive the free area from a template border when
// the spec does not configure one.
func (t *Template) BorderBBox(layer string) geom.BBox {
	var box geom.BBox
	for start, end := range t.entities() {
		onLayer := false
		for i := start; i < end; i++ {
			if t.tags[i].Code == 8 && t.tags[i].Value == layer {
				onLayer = true
				break
			}
		}
		if !onLayer {
			continue
		}
		t.addCoords(&box, start, end)
	}
	return box
}

// ExtentBBox returns the bounding box of every template entity,
// regardless of layer. The last resort for deriving a free area from a
// template without a recognizable border layer.
func (t *Template) ExtentBBox() geom.BBox {
	var box geom.BBox
	for start, end := range t.entities() {
		t.addCoords(&box, start, end)
	}
	return box
}

func (t *Template) addCoords(box *geom.BBox, start, end int) {
	for i := start; i < end; i++ {
		c := t.tags[i].Code
		if c < 10 || c > 13 {
			continue
		}
		x, errX := t.tags[i].Float()
		// The matching y group follows the x group in well-formed files.
		for j := i + 1; j < end; j++ {
			if t.tags[j].Code == c+10 {
				if y, errY := t.tags[j].Float(); errX == nil && errY == nil {
					box.AddXY(x, y)
				}
				break
			}
		}
	}
}

// =============================================================================
// Tag stream surgery
// =============================================================================

// entities iterates the [start, end) tag ranges of every entity in the
// ENTITIES section.
func (t *Template) entities() func(yield func(int, int) bool) {
	return func(yield func(int, int) bool) {
		sec := t.sectionStart("ENTITIES")
		if sec < 0 {
			return
		}
		start := -1
		for i := sec; i < len(t.tags); i++ {
			if t.tags[i].Code != 0 {
				continue
			}
			if start >= 0 {
				if !yield(start, i) {
					return
				}
				start = -1
			}
			if t.tags[i].Value == "ENDSEC" {
				return
			}
			start = i
		}
	}
}

// sectionStart returns the index of the first tag after "0 SECTION /
// 2 <name>", or -1.
func (t *Template) sectionStart(name string) int {
	for i := 0; i < len(t.tags)-1; i++ {
		if t.tags[i].Code == 0 && t.tags[i].Value == "SECTION" &&
			t.tags[i+1].Code == 2 && t.tags[i+1].Value == name {
			return i + 2
		}
	}
	return -1
}

// sectionEnd returns the index of the section's ENDSEC tag, or -1.
func (t *Template) sectionEnd(name string) int {
	start := t.sectionStart(name)
	if start < 0 {
		return -1
	}
	for i := start; i < len(t.tags); i++ {
		if t.tags[i].Code == 0 && t.tags[i].Value == "ENDSEC" {
			return i
		}
	}
	return -1
}

// ensureTableRecord appends a record to the named table unless a record
// with that name already exists.
func (t *Template) ensureTableRecord(table, name string, record []Tag) {
	start, end := t.tableRange(table)
	if start < 0 {
		return
	}
	for i := start; i < end-1; i++ {
		if t.tags[i].Code == 0 && t.tags[i].Value == table &&
			t.hasName(i+1, end, name) {
			return
		}
	}
	t.tags = insertTags(t.tags, end, record)
}

// hasName reports whether the record starting at i carries "2 <name>"
// before the next record boundary.
func (t *Template) hasName(i, end int, name string) bool {
	for ; i < end && t.tags[i].Code != 0; i++ {
		if t.tags[i].Code == 2 && t.tags[i].Value == name {
			return true
		}
	}
	return false
}

// tableRange returns the [start, end) tag range inside "0 TABLE /
// 2 <name>" ... "0 ENDTAB", with end pointing at the ENDTAB tag.
func (t *Template) tableRange(name string) (int, int) {
	for i := 0; i < len(t.tags)-1; i++ {
		if t.tags[i].Code == 0 && t.tags[i].Value == "TABLE" &&
			t.tags[i+1].Code == 2 && t.tags[i+1].Value == name {
			for j := i + 2; j < len(t.tags); j++ {
				if t.tags[j].Code == 0 && t.tags[j].Value == "ENDTAB" {
					return i + 2, j
				}
			}
		}
	}
	return -1, -1
}

func insertTags(tags []Tag, at int, insert []Tag) []Tag {
	out := make([]Tag, 0, len(tags)+len(insert))
	out = append(out, tags[:at]...)
	out = append(out, insert...)
	out = append(out, tags[at:]...)
	return out
}

func linetypeRecord(lt drawing.Linetype, handle string) []Tag {
	tags := []Tag{
		str(0, "LTYPE"), str(5, handle),
		str(100, "AcDbSymbolTableRecord"), str(100, "AcDbLinetypeTableRecord"),
		str(2, lt.Name), num(70, 0),
		str(3, lt.Description),
		num(72, 65), num(73, len(lt.Pattern)),
		flt(40, lt.PatternLength()),
	}
	for _, e := range lt.Pattern {
		tags = append(tags, flt(49, e), num(74, 0))
	}
	return tags
}

func textStyleRecord(ts drawing.TextStyle, handle string) []Tag {
	return []Tag{
		str(0, "STYLE"), str(5, handle),
		str(100, "AcDbSymbolTableRecord"), str(100, "AcDbTextStyleTableRecord"),
		str(2, ts.Name), num(70, 0),
		flt(40, 0), flt(41, 1), flt(50, 0), num(71, 0), flt(42, 2.5),
		str(3, ts.FontFile), str(4, ""),
	}
}
