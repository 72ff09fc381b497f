package overrides

import (
	"path/filepath"
	"testing"

	"faceplate/pkg/spec"
)

const notes = `# GBS-8200 Back Panel

### Measurements

#### Cotes
- overall length; measured on the drawing; where: down; distance: 10
- hole diameter; confirm against the connector datasheet
- vga offset; where: up; distance: 12.5
- ; where: up; distance: 3

### Materials
- aluminium sheet; where: down; distance: 99
`

func TestParseCotesSection(t *testing.T) {
	s := ParseString(notes)
	if s.Empty() {
		t.Fatal("no rows parsed")
	}

	ov, ok := s.Match("overall length")
	if !ok {
		t.Fatal("overall length override not found")
	}
	if ov.Where != "down" || ov.Distance != 10 {
		t.Errorf("override = %+v, want down/10", ov)
	}

	// A row without where/distance requests but does not override.
	if _, ok := s.Match("hole diameter"); ok {
		t.Error("bare row produced an override")
	}
	if !s.Requested("hole diameter") {
		t.Error("bare row not counted as requested")
	}

	// Rows after the next ### heading are out of scope.
	if s.Requested("aluminium sheet") {
		t.Error("row outside the Cotes section was parsed")
	}
}

func TestMatchIsContainment(t *testing.T) {
	s := ParseString(notes)
	// Item labels match anywhere inside the row text, case-insensitive.
	ov, ok := s.Match("VGA Offset")
	if !ok {
		t.Fatal("containment match failed")
	}
	if ov.Where != "up" || ov.Distance != 12.5 {
		t.Errorf("override = %+v, want up/12.5", ov)
	}
	if _, ok := s.Match("dvi offset"); ok {
		t.Error("unrelated label matched")
	}
	if _, ok := s.Match(""); ok {
		t.Error("empty label matched")
	}
}

func TestApply(t *testing.T) {
	s := ParseString(notes)
	items := []spec.DimensionItem{
		{Type: spec.DimOverallLength, Where: "up", Label: "overall length"},
		{Type: spec.DimDiameter, Target: "hole1", Label: "hole diameter"},
		{Type: spec.DimOverallWidth, Label: "overall width"},
		{Type: spec.DimRectWidth, Target: "window"},
	}

	out := s.Apply(items, false)
	if len(out) != 4 {
		t.Fatalf("Apply kept %d items, want 4", len(out))
	}
	if out[0].Where != "down" || out[0].Distance == nil || *out[0].Distance != 10 {
		t.Errorf("overall length not overridden: %+v", out[0])
	}
	if out[1].Where != "" {
		t.Errorf("bare request modified the item: %+v", out[1])
	}
	// Input slice stays untouched.
	if items[0].Where != "up" {
		t.Error("Apply modified the input slice")
	}

	only := s.Apply(items, true)
	if len(only) != 2 {
		t.Fatalf("only-requested kept %d items, want 2", len(only))
	}
	if only[0].Type != spec.DimOverallLength || only[1].Type != spec.DimDiameter {
		t.Errorf("only-requested kept the wrong items: %+v", only)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.md"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.Empty() {
		t.Error("missing file produced rows")
	}
}
