package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"faceplate/pkg/drawing"
	"faceplate/pkg/layout"
	"faceplate/pkg/pipeline"
	"faceplate/pkg/render"
)

func TestExportLayersExplicitWins(t *testing.T) {
	opts := &exportOpts{layers: "Outline, Cutouts ,Text", preset: render.PresetEngrave}
	result := &pipeline.Result{Layout: &layout.Result{}}

	layers, err := exportLayers(opts, result)
	if err != nil {
		t.Fatalf("exportLayers() error: %v", err)
	}
	want := []string{"Outline", "Cutouts", "Text"}
	if diff := cmp.Diff(want, layers); diff != "" {
		t.Errorf("exportLayers() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportLayersPreset(t *testing.T) {
	opts := &exportOpts{preset: render.PresetCut}
	result := &pipeline.Result{Layout: &layout.Result{
		Layers: layout.Layers{
			Outline: drawing.Layer{Name: "Outline"},
			Cutouts: drawing.Layer{Name: "Cutouts"},
			Text:    drawing.Layer{Name: "Text"},
		},
	}}

	layers, err := exportLayers(opts, result)
	if err != nil {
		t.Fatalf("exportLayers() error: %v", err)
	}
	want := []string{"Outline", "Cutouts"}
	if diff := cmp.Diff(want, layers); diff != "" {
		t.Errorf("exportLayers() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportLayersUnknownPreset(t *testing.T) {
	opts := &exportOpts{preset: "emboss"}
	result := &pipeline.Result{Layout: &layout.Result{}}

	if _, err := exportLayers(opts, result); err == nil {
		t.Fatal("exportLayers() expected error for unknown preset")
	}
}

func TestMatchFirstArg(t *testing.T) {
	validate := matchFirstArg("svg", "png", "jpeg")

	if err := validate(nil, []string{"svg", "panel.toml"}); err != nil {
		t.Errorf("validate(svg) unexpected error: %v", err)
	}
	if err := validate(nil, []string{"bmp", "panel.toml"}); err == nil {
		t.Error("validate(bmp) expected error")
	}
}
