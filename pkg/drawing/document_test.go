package drawing

import (
	"testing"

	"faceplate/pkg/geom"
)

func TestEnsureLayerReplaces(t *testing.T) {
	doc := NewDocument()
	doc.EnsureLayer(Layer{Name: "OUTLINE", LineweightMM: 0.5})
	doc.EnsureLayer(Layer{Name: "OUTLINE", LineweightMM: 0.7})

	if len(doc.Layers) != 1 {
		t.Fatalf("layer count = %d, want 1", len(doc.Layers))
	}
	if got := doc.Layers[0].LineweightMM; got != 0.7 {
		t.Errorf("lineweight = %v, want 0.7", got)
	}
}

func TestEnsureLinetypeIdempotent(t *testing.T) {
	doc := NewDocument()
	doc.EnsureLinetype(Dashdot())
	doc.EnsureLinetype(Dashdot())

	if len(doc.Linetypes) != 1 {
		t.Fatalf("linetype count = %d, want 1", len(doc.Linetypes))
	}
}

func TestDashdotPatternLength(t *testing.T) {
	lt := Dashdot()
	if got, want := lt.PatternLength(), 15.0; got != want {
		t.Errorf("pattern length = %v, want %v", got, want)
	}
}

func TestDocumentBBox(t *testing.T) {
	doc := NewDocument()
	doc.Add(
		&Line{LayerName: "OUTLINE", Start: geom.Pt(0, 0), End: geom.Pt(100, 0)},
		&Circle{LayerName: "CUTOUTS", Center: geom.Pt(50, 40), Radius: 15},
	)

	box := doc.BBox()
	if !box.HasData {
		t.Fatal("bbox has no data")
	}
	if got, want := box.Min.X, 0.0; got != want {
		t.Errorf("min x = %v, want %v", got, want)
	}
	if got, want := box.Max.X, 100.0; got != want {
		t.Errorf("max x = %v, want %v", got, want)
	}
	if got, want := box.Max.Y, 55.0; got != want {
		t.Errorf("max y = %v, want %v", got, want)
	}
	if got, want := box.Min.Y, -15.0; got != want {
		t.Errorf("min y = %v, want %v", got, want)
	}
}

func TestDocumentTranslate(t *testing.T) {
	doc := NewDocument()
	circle := &Circle{LayerName: "CUTOUTS", Center: geom.Pt(10, 20), Radius: 5}
	doc.Add(circle)

	doc.Translate(3, -4)

	if got := circle.Center; got != geom.Pt(13, 16) {
		t.Errorf("center after translate = %v, want {13 16}", got)
	}
}

func TestEntitiesOnLayer(t *testing.T) {
	doc := NewDocument()
	doc.Add(
		&Line{LayerName: "OUTLINE"},
		&Circle{LayerName: "CUTOUTS"},
		&Line{LayerName: "AXES"},
		&Circle{LayerName: "CUTOUTS"},
	)

	got := doc.EntitiesOnLayer("CUTOUTS")
	if len(got) != 2 {
		t.Fatalf("entity count = %d, want 2", len(got))
	}
	for _, e := range got {
		if e.Layer() != "CUTOUTS" {
			t.Errorf("layer = %q, want CUTOUTS", e.Layer())
		}
	}
}

func TestLineweightHundredths(t *testing.T) {
	tests := []struct {
		mm   float64
		want int
	}{
		{0.7, 70},
		{0.35, 35},
		{0.5, 50},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := LineweightHundredths(tt.mm); got != tt.want {
			t.Errorf("LineweightHundredths(%v) = %d, want %d", tt.mm, got, tt.want)
		}
	}
}

func TestPointsToMM(t *testing.T) {
	got := PointsToMM(72)
	if got != 25.4 {
		t.Errorf("PointsToMM(72) = %v, want 25.4", got)
	}
}
