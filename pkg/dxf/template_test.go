package dxf

import (
	"strings"
	"testing"
	"time"

	"faceplate/pkg/drawing"
	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

const fixtureTemplate = `0
SECTION
2
HEADER
9
$HANDSEED
5
AF
0
ENDSEC
0
SECTION
2
TABLES
0
TABLE
2
LTYPE
5
10
100
AcDbSymbolTable
70
1
0
LTYPE
5
11
100
AcDbSymbolTableRecord
100
AcDbLinetypeTableRecord
2
Continuous
70
0
0
ENDTAB
0
TABLE
2
LAYER
5
12
100
AcDbSymbolTable
70
1
0
LAYER
5
13
100
AcDbSymbolTableRecord
100
AcDbLayerTableRecord
2
0
70
0
0
ENDTAB
0
TABLE
2
STYLE
5
14
100
AcDbSymbolTable
70
1
0
STYLE
5
15
100
AcDbSymbolTableRecord
100
AcDbTextStyleTableRecord
2
Standard
70
0
0
ENDTAB
0
ENDSEC
0
SECTION
2
ENTITIES
0
VIEWPORT
5
20
100
AcDbEntity
8
0
100
AcDbViewport
40
200.0
41
100.0
12
0.0
22
0.0
45
100.0
69
2
0
TEXT
5
21
100
AcDbEntity
8
TitleBlock
100
AcDbText
10
30.0
20
12.0
30
0.0
40
3.5
1
ISO 5457 template
0
TEXT
5
22
100
AcDbEntity
8
TitleBlock
100
AcDbText
10
30.0
20
8.0
30
0.0
40
2.5
1
DD-MM-YYYY
0
LWPOLYLINE
5
23
100
AcDbEntity
8
Border
100
AcDbPolyline
90
4
70
1
10
25.0
20
60.0
10
180.0
20
60.0
10
180.0
20
276.6
10
25.0
20
276.6
0
ENDSEC
0
EOF
`

func fixture(t *testing.T) *Template {
	t.Helper()
	tpl, err := ParseTemplate(strings.NewReader(fixtureTemplate))
	if err != nil {
		t.Fatalf("ParseTemplate() error: %v", err)
	}
	return tpl
}

func TestLoadTemplateMissing(t *testing.T) {
	_, err := LoadTemplate("testdata/does-not-exist.dxf")
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestInsertMergesEntitiesAndTables(t *testing.T) {
	tpl := fixture(t)
	doc := sampleDocument()
	if err := tpl.Insert(doc); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	out, err := tpl.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	text := string(out)

	// Generated entities land inside the ENTITIES section.
	entities := text[strings.Index(text, "ENTITIES"):]
	for _, want := range []string{"LWPOLYLINE", "CIRCLE", "REV A"} {
		if !strings.Contains(entities, want) {
			t.Errorf("entity %q missing after merge", want)
		}
	}
	// New table records appear for the document's layers and linetype.
	if !strings.Contains(text, "OUTLINE") {
		t.Error("OUTLINE layer record missing after merge")
	}
	if !strings.Contains(text, "Symmetry axis dash-dot") {
		t.Error("DASHDOT linetype record missing after merge")
	}
	// Template content survives untouched.
	if !strings.Contains(text, "ISO 5457 template") {
		t.Error("template title block text lost")
	}
}

func TestInsertDoesNotDuplicateTableRecords(t *testing.T) {
	tpl := fixture(t)
	doc := drawing.NewDocument()
	doc.EnsureLayer(drawing.Layer{Name: "0"})
	doc.EnsureLinetype(drawing.Linetype{Name: "Continuous", Description: "Solid line"})
	if err := tpl.Insert(doc); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	out, err := tpl.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got := strings.Count(string(out), "AcDbLinetypeTableRecord"); got != 1 {
		t.Errorf("Continuous defined %d times, want 1", got)
	}
}

func TestInsertHandlesStartPastTemplate(t *testing.T) {
	tpl := fixture(t)
	doc := drawing.NewDocument()
	doc.Add(&drawing.Line{LayerName: "0", Start: geom.Pt(0, 0), End: geom.Pt(1, 1)})
	if err := tpl.Insert(doc); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	seen := map[string]int{}
	for _, tag := range tpl.tags {
		if tag.Code == 5 || tag.Code == 105 {
			seen[tag.Value]++
		}
	}
	for h, n := range seen {
		if n > 1 {
			t.Errorf("handle %q used %d times", h, n)
		}
	}
}

func TestFitViewport(t *testing.T) {
	tpl := fixture(t)
	free := geom.Rect{Left: 25, Bottom: 60, Right: 180, Top: 276.6}
	if !tpl.FitViewport(free) {
		t.Fatal("FitViewport() found no modelspace viewport")
	}

	var center geom.Point
	var height float64
	for i, tag := range tpl.tags {
		var err error
		switch tag.Code {
		case 12:
			center.X, err = tpl.tags[i].Float()
		case 22:
			center.Y, err = tpl.tags[i].Float()
		case 45:
			height, err = tpl.tags[i].Float()
		}
		if err != nil {
			t.Fatalf("viewport tag parse: %v", err)
		}
	}
	if center.X != 102.5 || !almostEqual(center.Y, 168.3) {
		t.Errorf("view center = (%v, %v), want (102.5, 168.3)", center.X, center.Y)
	}
	// free height 216.6 governs (155/2 aspect-derived height is smaller);
	// 2% slack on top.
	if !almostEqual(height, 216.6*1.02) {
		t.Errorf("view height = %v, want %v", height, 216.6*1.02)
	}
}

func TestBorderBBox(t *testing.T) {
	tpl := fixture(t)
	box := tpl.BorderBBox("Border")
	if !box.HasData {
		t.Fatal("no border geometry found")
	}
	r := box.Rect()
	if r.Left != 25 || r.Bottom != 60 || r.Right != 180 || r.Top != 276.6 {
		t.Errorf("border box = %+v", r)
	}
}

func TestExtentBBox(t *testing.T) {
	tpl := fixture(t)
	box := tpl.ExtentBBox()
	if !box.HasData {
		t.Fatal("no template geometry found")
	}
	border := tpl.BorderBBox("Border").Rect()
	r := box.Rect()
	if r.Left > border.Left || r.Right < border.Right || r.Bottom > border.Bottom || r.Top < border.Top {
		t.Errorf("extent %+v does not cover the border %+v", r, border)
	}
}

func TestSubstituteTitleBlock(t *testing.T) {
	tpl := fixture(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	n := tpl.SubstituteTitleBlock(map[string]string{
		FieldTitle: "GBS-8200 Back Panel",
		FieldDate:  spec.IssueDatePlaceholder,
	}, now)
	if n != 2 {
		t.Errorf("replaced %d placeholders, want 2", n)
	}

	out, err := tpl.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "GBS-8200 Back Panel") {
		t.Error("title not substituted")
	}
	if strings.Contains(text, "ISO 5457 template") {
		t.Error("title placeholder still present")
	}
	if !strings.Contains(text, "25.08.2026") {
		t.Error("issue date not filled from clock")
	}
}

func TestSubstituteTitleBlockSkipsEmptyFields(t *testing.T) {
	tpl := fixture(t)
	n := tpl.SubstituteTitleBlock(map[string]string{FieldTitle: "Panel"}, time.Now())
	if n != 1 {
		t.Errorf("replaced %d placeholders, want 1", n)
	}
	out, _ := tpl.Encode()
	if !strings.Contains(string(out), "DD-MM-YYYY") {
		t.Error("date placeholder without a value was rewritten")
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
