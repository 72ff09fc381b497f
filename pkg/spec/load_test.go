package spec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"faceplate/pkg/errors"
)

const samplePanel = `
[panel.size]
length = 147.0
width = 37.0

[[openings]]
id = "hole1"
type = "circle"
diameter = 10.0
[openings.center]
x_from_center = -5.0

[[openings]]
id = "window"
type = "rect"
width = 31.0
height = 11.0
[openings.center]
x_from_center = -30.0

[[openings]]
type = "notch_u"
height = 3.0
to_x_ref = "window.left"

[[dimensions.items]]
type = "overall_length"
where = "down"
distance = 8.0
label = "overall length"

[[dimensions.items]]
type = "diameter"
target = "hole1"

[axes]
overhang = 3.0
extend_to_dimensions = true
[axes.center]
vertical = true
horizontal = true

[[text.items]]
value = "REV A"
align = "top_right"
[text.items.at]
x_from_right = 5.0
y_from_top = 4.0

[styles.dimensions]
offset = 8.0

[sheet]
template = "templates/a4.dxf"
[sheet.free_area]
left = 25.0
bottom = 60.0
right = 180.0
top = 277.0

[title_block]
[title_block.fields]
"Title" = "GBS-8200 back panel"
"Issue date" = "DD.MM.YYYY"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.toml")
	if err := os.WriteFile(path, []byte(samplePanel), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got, want := s.Panel.Size.Length, 147.0; got != want {
		t.Errorf("length = %v, want %v", got, want)
	}
	if got, want := len(s.Openings), 3; got != want {
		t.Fatalf("opening count = %d, want %d", got, want)
	}
	if got, want := s.Openings[2].ToXRef, "window.left"; got != want {
		t.Errorf("to_x_ref = %q, want %q", got, want)
	}
	if got, want := s.DimensionOffset(), 8.0; got != want {
		t.Errorf("dimension offset = %v, want %v", got, want)
	}
	if got, want := s.AxisOverhang(), 3.0; got != want {
		t.Errorf("axis overhang = %v, want %v", got, want)
	}
	if !s.ApplyTitleBlock() {
		t.Error("ApplyTitleBlock() = false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeSpecNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeSpecNotFound)
	}
}

func TestParseGeneratesOpeningIDs(t *testing.T) {
	s, err := Parse([]byte(samplePanel))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	id := s.Openings[2].ID
	if !strings.HasPrefix(id, "opening-") {
		t.Errorf("generated id = %q, want opening- prefix", id)
	}
	if len(id) != len("opening-")+8 {
		t.Errorf("generated id %q has wrong length", id)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	input := `
[panel.size]
length = 100.0
width = 50.0
depht = 3.0
`
	_, err := Parse([]byte(input))
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSpec)
	}
	if !strings.Contains(err.Error(), "depht") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	_, err := Parse([]byte("[panel.size\nlength = 1"))
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSpec)
	}
}

func TestDefaults(t *testing.T) {
	s, err := Parse([]byte("[panel.size]\nlength = 100.0\nwidth = 50.0\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got, want := s.DimensionOffset(), DefaultDimensionOffset; got != want {
		t.Errorf("DimensionOffset() = %v, want %v", got, want)
	}
	if got, want := s.AxisOverhang(), DefaultAxisOverhang; got != want {
		t.Errorf("AxisOverhang() = %v, want %v", got, want)
	}
	if !s.ExtendAxesToDimensions() {
		t.Error("ExtendAxesToDimensions() = false, want true by default")
	}
	if got, want := s.TextFont(), DefaultTextFont; got != want {
		t.Errorf("TextFont() = %q, want %q", got, want)
	}
	if got, want := s.TextHeightMM(), 9.0/72.0*25.4; got != want {
		t.Errorf("TextHeightMM() = %v, want %v", got, want)
	}
	if got, want := s.DimensionStyleName(), "ISO-25"; got != want {
		t.Errorf("DimensionStyleName() = %q, want %q", got, want)
	}
	if !s.RoundCenterToMM() {
		t.Error("RoundCenterToMM() = false, want true")
	}
	if !s.ApplyTitleBlock() {
		t.Error("ApplyTitleBlock() = false, want true")
	}
}
