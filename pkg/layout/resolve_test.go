package layout

import (
	"math"
	"testing"

	"faceplate/pkg/errors"
	"faceplate/pkg/spec"
)

func f(v float64) *float64 { return &v }

func b(v bool) *bool { return &v }

func panelSpec(length, width float64) *spec.Spec {
	return &spec.Spec{Panel: spec.Panel{Size: spec.Size{Length: length, Width: width}}}
}

func TestResolveCenter(t *testing.T) {
	const length, width = 147.0, 37.0

	tests := []struct {
		name  string
		pos   spec.Position
		wantX float64
		wantY float64
	}{
		{
			name:  "defaults to midline",
			pos:   spec.Position{},
			wantX: 73.5,
			wantY: 18.5,
		},
		{
			name:  "from center",
			pos:   spec.Position{XFromCenter: f(-5), YFromCenter: f(2)},
			wantX: 68.5,
			wantY: 20.5,
		},
		{
			name:  "from edges",
			pos:   spec.Position{XFromLeft: f(10), YFromBottom: f(4)},
			wantX: 10,
			wantY: 4,
		},
		{
			name:  "from far edges",
			pos:   spec.Position{XFromRight: f(10), YFromTop: f(4)},
			wantX: 137,
			wantY: 33,
		},
		{
			name:  "absolute",
			pos:   spec.Position{X: f(99), Y: f(1)},
			wantX: 99,
			wantY: 1,
		},
		{
			name:  "from_center wins over absolute",
			pos:   spec.Position{XFromCenter: f(0), X: f(99)},
			wantX: 73.5,
			wantY: 18.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCenter(tt.pos, length, width)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("resolveCenter() = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// Placing the same center via from_left and from_right must describe the
// same point: the measured distances add up to the panel dimension.
func TestEdgeMeasurementsAreConsistent(t *testing.T) {
	const length = 147.0
	for _, fromLeft := range []float64{0, 10, 73.5, 140} {
		left := resolveCenter(spec.Position{XFromLeft: f(fromLeft)}, length, 37)
		right := resolveCenter(spec.Position{XFromRight: f(length - fromLeft)}, length, 37)
		if left.X != right.X {
			t.Errorf("from_left %v and from_right %v disagree: %v vs %v",
				fromLeft, length-fromLeft, left.X, right.X)
		}
		// The distances measured from both edges cover the panel exactly.
		leftMeasured := left.X
		rightMeasured := length - left.X
		if math.Abs(leftMeasured+rightMeasured-length) > 1e-12 {
			t.Errorf("left %v + right %v != panel length %v", leftMeasured, rightMeasured, length)
		}
	}
}

func TestResolveOpeningsCircle(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{{
		ID: "hole1", Type: spec.OpeningCircle, Diameter: 10,
		Center: spec.Position{XFromCenter: f(-5)},
	}}

	table, err := ResolveOpenings(s)
	if err != nil {
		t.Fatalf("ResolveOpenings() error: %v", err)
	}
	o, ok := table.Get("hole1")
	if !ok {
		t.Fatal("hole1 not in table")
	}
	if o.Center.X != 68.5 || o.Center.Y != 18.5 {
		t.Errorf("center = (%v, %v), want (68.5, 18.5)", o.Center.X, o.Center.Y)
	}
	if o.Radius != 5 {
		t.Errorf("radius = %v, want 5", o.Radius)
	}
	if o.Bounds.Left != 63.5 || o.Bounds.Right != 73.5 || o.Bounds.Bottom != 13.5 || o.Bounds.Top != 23.5 {
		t.Errorf("bounds = %+v", o.Bounds)
	}
}

// Scenario: a 31×11 rect at x_from_center=-30 must have bounds offset by
// its half width from the shifted center.
func TestResolveOpeningsRectBounds(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{{
		ID: "window", Type: spec.OpeningRect, Width: 31, Height: 11,
		Center: spec.Position{XFromCenter: f(-30)},
	}}

	table, err := ResolveOpenings(s)
	if err != nil {
		t.Fatalf("ResolveOpenings() error: %v", err)
	}
	o, _ := table.Get("window")
	cx := 147.0/2 - 30
	if o.Bounds.Left != cx-15.5 {
		t.Errorf("bounds.left = %v, want %v", o.Bounds.Left, cx-15.5)
	}
	if o.Bounds.Right != cx+15.5 {
		t.Errorf("bounds.right = %v, want %v", o.Bounds.Right, cx+15.5)
	}
}

func TestResolveOpeningsNotch(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{
		{
			ID: "window", Type: spec.OpeningRect, Width: 31, Height: 11,
			Center: spec.Position{XFromCenter: f(-30)},
		},
		{
			ID: "slot", Type: spec.OpeningNotchU, Height: 9,
			ToXRef: "window.left",
		},
	}

	table, err := ResolveOpenings(s)
	if err != nil {
		t.Fatalf("ResolveOpenings() error: %v", err)
	}
	window, _ := table.Get("window")
	slot, _ := table.Get("slot")
	if slot.Bounds.Left != 0 {
		t.Errorf("slot starts at %v, want 0", slot.Bounds.Left)
	}
	if slot.Bounds.Right != window.Bounds.Left {
		t.Errorf("slot.right = %v, want window.left = %v", slot.Bounds.Right, window.Bounds.Left)
	}
	if slot.Center.Y != 18.5 {
		t.Errorf("slot.center.y = %v, want panel midline 18.5", slot.Center.Y)
	}
	if slot.Height != 9 {
		t.Errorf("slot.height = %v, want 9", slot.Height)
	}
}

// A reference must see only openings declared before it.
func TestResolveOpeningsForwardReference(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{
		{ID: "slot", Type: spec.OpeningNotchU, Height: 9, ToXRef: "window.left"},
		{ID: "window", Type: spec.OpeningRect, Width: 31, Height: 11},
	}

	_, err := ResolveOpenings(s)
	if err == nil {
		t.Fatal("expected error for forward reference")
	}
	if !errors.Is(err, errors.ErrCodeUnknownReference) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownReference)
	}
}

// Every reference field must match the independently computed value.
func TestResolveRefFields(t *testing.T) {
	s := panelSpec(147, 37)
	s.Openings = []spec.Opening{{
		ID: "hole1", Type: spec.OpeningCircle, Diameter: 10,
		Center: spec.Position{XFromCenter: f(-5), YFromCenter: f(3)},
	}}
	table, err := ResolveOpenings(s)
	if err != nil {
		t.Fatalf("ResolveOpenings() error: %v", err)
	}
	o, _ := table.Get("hole1")

	tests := []struct {
		expr string
		want float64
	}{
		{"hole1.center.x", o.Center.X},
		{"hole1.center.y", o.Center.Y},
		{"hole1.left", o.Bounds.Left},
		{"hole1.right", o.Bounds.Right},
		{"hole1.top", o.Bounds.Top},
		{"hole1.bottom", o.Bounds.Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := table.ResolveRef(tt.expr)
			if err != nil {
				t.Fatalf("ResolveRef(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("ResolveRef(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}

	if _, err := table.ResolveRef("hole1.middle"); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := table.ResolveRef("nope.left"); err == nil {
		t.Error("expected error for unknown opening")
	}
}
