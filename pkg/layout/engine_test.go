package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"faceplate/pkg/errors"
	"faceplate/pkg/geom"
	"faceplate/pkg/spec"
)

// scenarioSpec is the 147×37 back panel with one 10 mm hole shifted
// 5 mm left of center, dimensioned overall and from the center line.
func scenarioSpec() *spec.Spec {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{{
		ID: "hole1", Type: spec.OpeningCircle, Diameter: 10,
		Center: spec.Position{XFromCenter: f(-5)},
	}}
	s.Dimensions.Items = []spec.DimensionItem{
		{Type: spec.DimOverallLength, Where: "down", Distance: f(8)},
		{Type: spec.DimOffsetFromCenterX, Targets: []string{"hole1"}, Where: "up", Distance: f(8)},
	}
	s.Axes.Center.Vertical = true
	return s
}

func placement(t *testing.T, r *Result, kind string) Placement {
	t.Helper()
	for _, p := range r.Placements {
		if p.Kind == kind {
			return p
		}
	}
	t.Fatalf("no %s placement recorded", kind)
	return Placement{}
}

func TestScenarioBackPanel(t *testing.T) {
	r, err := Build(scenarioSpec())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	overall := placement(t, r, spec.DimOverallLength)
	if overall.Base.Y != -8 {
		t.Errorf("overall_length base y = %v, want -8", overall.Base.Y)
	}

	offset := placement(t, r, spec.DimOffsetFromCenterX)
	// center_y + radius + distance = 18.5 + 5 + 8
	if offset.Base.Y != 31.5 {
		t.Errorf("offset_from_center_x base y = %v, want 31.5", offset.Base.Y)
	}
	if offset.Base.X != 73.5 {
		t.Errorf("offset_from_center_x base x = %v, want 73.5", offset.Base.X)
	}

	lim, ok := r.Limits.Get(CenterOwner)
	if !ok || lim.VMax == nil {
		t.Fatal("center axis limit not recorded")
	}
	if *lim.VMax < 33.5 {
		t.Errorf("center v_max = %v, want at least 33.5", *lim.VMax)
	}

	// The extended vertical center axis must reach the recorded limit.
	var center *Axis
	for i := range r.Axes {
		if r.Axes[i].Owner == CenterOwner {
			center = &r.Axes[i]
		}
	}
	if center == nil {
		t.Fatal("no center axis drawn")
	}
	if center.End.Y < 33.5 {
		t.Errorf("center axis top = %v, want at least 33.5", center.End.Y)
	}
	if center.Start.Y != -2 {
		t.Errorf("center axis bottom = %v, want default -2", center.Start.Y)
	}
}

// Extension is on unless the spec switches it off: with the knob left
// unset, a dimension placed well past the default extent still pulls
// the axis out to cover it.
func TestAxesExtendByDefault(t *testing.T) {
	s := scenarioSpec()
	if s.Axes.ExtendToDimensions != nil {
		t.Fatal("scenario spec must leave extend_to_dimensions unset")
	}
	s.Dimensions.Items = []spec.DimensionItem{{
		Type: spec.DimOffsetFromCenterX, Targets: []string{"hole1"}, Where: "up", Distance: f(30),
	}}

	r, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	// base y = 18.5 + 5 + 30 = 53.5, limit adds the 2 mm clearance.
	a := r.Axes[0]
	if a.End.Y < 55.5 {
		t.Errorf("center axis top = %v, want at least 55.5", a.End.Y)
	}
}

// With extension off the axis length is exactly the overhang formula,
// no matter what dimensions were placed.
func TestAxesWithoutExtension(t *testing.T) {
	s := scenarioSpec()
	s.Axes.ExtendToDimensions = b(false)
	s.Axes.Overhang = f(3)

	r, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(r.Axes) != 1 {
		t.Fatalf("got %d axes, want 1", len(r.Axes))
	}
	a := r.Axes[0]
	if a.Start.Y != -3 || a.End.Y != 40 {
		t.Errorf("axis spans %v..%v, want -3..40", a.Start.Y, a.End.Y)
	}
}

// Axis extents never shrink below the default, even when the recorded
// limits sit inside the overhang reach.
func TestAxisExtentsNeverShrink(t *testing.T) {
	s := scenarioSpec()
	s.Axes.Overhang = f(50) // default reach dwarfs every dimension

	r, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	a := r.Axes[0]
	if a.Start.Y != -50 || a.End.Y != 87 {
		t.Errorf("axis spans %v..%v, want -50..87", a.Start.Y, a.End.Y)
	}
}

func TestOpeningAxes(t *testing.T) {
	s := panelSpec(100, 40)
	s.Openings = []spec.Opening{
		{ID: "hole", Type: spec.OpeningCircle, Diameter: 10, Center: spec.Position{XFromLeft: f(30)}},
		{ID: "window", Type: spec.OpeningRect, Width: 20, Height: 8, Center: spec.Position{XFromLeft: f(70)}},
	}
	s.Axes.Openings.Circles = true
	s.Axes.Openings.Rects = true

	r, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	// Circle: vertical and horizontal; rect: vertical only.
	if len(r.Axes) != 3 {
		t.Fatalf("got %d axes, want 3", len(r.Axes))
	}
	circleV := r.Axes[0]
	if circleV.Start.Y != 20-7 || circleV.End.Y != 20+7 {
		t.Errorf("circle axis spans %v..%v, want 13..27", circleV.Start.Y, circleV.End.Y)
	}
	rectV := r.Axes[2]
	if rectV.Start.Y != 20-6 || rectV.End.Y != 20+6 {
		t.Errorf("rect axis spans %v..%v, want 14..26", rectV.Start.Y, rectV.End.Y)
	}
}

// Both targets of a shared offset dimension update the limits table and
// render at their own base, even if those coincide.
func TestSharedOffsetDimension(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{
		{ID: "a", Type: spec.OpeningCircle, Diameter: 10, Center: spec.Position{XFromCenter: f(-20)}},
		{ID: "b", Type: spec.OpeningCircle, Diameter: 10, Center: spec.Position{XFromCenter: f(20)}},
	}
	s.Dimensions.Items = []spec.DimensionItem{{
		Type: spec.DimOffsetFromCenterX, Targets: []string{"a", "b"}, Where: "up", Distance: f(8),
	}}

	r, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	var bases []geom.Point
	for _, p := range r.Placements {
		if p.Kind == spec.DimOffsetFromCenterX {
			bases = append(bases, p.Base)
		}
	}
	if len(bases) != 2 {
		t.Fatalf("got %d offset placements, want 2", len(bases))
	}
	if bases[0] != bases[1] {
		t.Errorf("coinciding bases diverged: %v vs %v", bases[0], bases[1])
	}
	for _, id := range []string{"a", "b"} {
		lim, _ := r.Limits.Get(id)
		if lim.VMax == nil {
			t.Errorf("owner %s has no recorded limit", id)
		}
	}
}

func TestUnknownDimensionTarget(t *testing.T) {
	s := scenarioSpec()
	s.Dimensions.Items = append(s.Dimensions.Items, spec.DimensionItem{
		Type: spec.DimDiameter, Target: "ghost",
	})

	_, err := Build(s)
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	if !errors.Is(err, errors.ErrCodeUnknownOpening) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownOpening)
	}
}

func TestDiameterPlacement(t *testing.T) {
	base := func() *spec.Spec {
		s := panelSpec(100, 40)
		s.Openings = []spec.Opening{{ID: "hole", Type: spec.OpeningCircle, Diameter: 5, Center: spec.Position{XFromLeft: f(30)}}}
		return s
	}

	t.Run("explicit side", func(t *testing.T) {
		s := base()
		s.Dimensions.Items = []spec.DimensionItem{{Type: spec.DimDiameter, Target: "hole", Where: "right", Distance: f(6)}}
		r, err := Build(s)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		p := placement(t, r, spec.DimDiameter)
		if p.Base.X != 30+2.5+6 || p.Base.Y != 20 {
			t.Errorf("call-out at (%v, %v), want (38.5, 20)", p.Base.X, p.Base.Y)
		}
	})

	t.Run("small hole moves outside", func(t *testing.T) {
		s := base()
		s.Styles.Dimensions.SmallHoleOutsideThreshold = f(6.5)
		s.Dimensions.Items = []spec.DimensionItem{{Type: spec.DimDiameter, Target: "hole"}}
		r, err := Build(s)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		p := placement(t, r, spec.DimDiameter)
		if p.Base.X <= 30 || p.Base.Y <= 20 {
			t.Errorf("small hole call-out at (%v, %v), want outward diagonal", p.Base.X, p.Base.Y)
		}
	})

	t.Run("large hole stays inside", func(t *testing.T) {
		s := base()
		s.Openings[0].Diameter = 12
		s.Styles.Dimensions.SmallHoleOutsideThreshold = f(6.5)
		s.Dimensions.Items = []spec.DimensionItem{{Type: spec.DimDiameter, Target: "hole"}}
		r, err := Build(s)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		p := placement(t, r, spec.DimDiameter)
		if p.Base.X != 30 || p.Base.Y != 20 {
			t.Errorf("call-out at (%v, %v), want circle center", p.Base.X, p.Base.Y)
		}
	})
}

// Two runs over one spec must produce identical geometry.
func TestBuildIsIdempotent(t *testing.T) {
	first, err := Build(scenarioSpec())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	second, err := Build(scenarioSpec())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if diff := cmp.Diff(first.Document.Entities, second.Document.Entities); diff != "" {
		t.Errorf("documents differ (-first +second):\n%s", diff)
	}
}

func TestCenterInFreeArea(t *testing.T) {
	r, err := Build(scenarioSpec())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	free := geom.Rect{Left: 25, Bottom: 60, Right: 180, Top: 276.6}

	CenterInFreeArea(r.Document, free, true)
	box := r.Document.BBox()
	center := box.Center()
	if got, want := center.X, free.Center().X; !almost(got, want) {
		t.Errorf("centered x = %v, want %v", got, want)
	}
	// 168.3 rounds to 168.
	if got := center.Y; !almost(got, 168) {
		t.Errorf("centered y = %v, want rounded 168", got)
	}
}

func TestCenterInFreeAreaNoRounding(t *testing.T) {
	r, err := Build(scenarioSpec())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	free := geom.Rect{Left: 0, Bottom: 0, Right: 100, Top: 51}

	CenterInFreeArea(r.Document, free, false)
	if got := r.Document.BBox().Center().Y; !almost(got, 25.5) {
		t.Errorf("centered y = %v, want 25.5", got)
	}
}

func almost(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
