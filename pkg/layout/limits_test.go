package layout

import (
	"testing"

	"faceplate/pkg/spec"
)

func limitsWithOwner(t *testing.T, id string) *AxisLimits {
	t.Helper()
	s := panelSpec(100, 40)
	s.Openings = []spec.Opening{{ID: id, Type: spec.OpeningCircle, Diameter: 10}}
	table, err := ResolveOpenings(s)
	if err != nil {
		t.Fatalf("ResolveOpenings() error: %v", err)
	}
	return NewAxisLimits(table)
}

func TestVerticalLimitPadsBase(t *testing.T) {
	limits := limitsWithOwner(t, "hole")

	limits.UpdateVertical("hole", 31.5, 20)
	lim, _ := limits.Get("hole")
	if lim.VMax == nil || *lim.VMax != 33.5 {
		t.Fatalf("VMax = %v, want 33.5", deref(lim.VMax))
	}
	if lim.VMin != nil {
		t.Errorf("VMin = %v, want unset", *lim.VMin)
	}

	limits.UpdateVertical("hole", -8, 20)
	if lim.VMin == nil || *lim.VMin != -10 {
		t.Errorf("VMin = %v, want -10", deref(lim.VMin))
	}
}

// Limits are a running envelope: repeated updates never move a max down
// or a min up.
func TestLimitsAreMonotonic(t *testing.T) {
	limits := limitsWithOwner(t, "hole")

	limits.UpdateVertical("hole", 31.5, 20)
	limits.UpdateVertical("hole", 25, 20)
	lim, _ := limits.Get("hole")
	if *lim.VMax != 33.5 {
		t.Errorf("VMax shrank to %v after a closer placement, want 33.5", *lim.VMax)
	}

	limits.UpdateVertical("hole", 40, 20)
	if *lim.VMax != 42 {
		t.Errorf("VMax = %v after a farther placement, want 42", *lim.VMax)
	}

	limits.UpdateHorizontal("hole", -3, 50)
	limits.UpdateHorizontal("hole", 10, 50)
	if *lim.HMin != -5 {
		t.Errorf("HMin = %v, want -5", *lim.HMin)
	}

	limits.UpdateHorizontal("hole", 80, 50)
	limits.UpdateHorizontal("hole", 60, 50)
	if *lim.HMax != 82 {
		t.Errorf("HMax = %v, want 82", *lim.HMax)
	}
}

// A base exactly at the owner's center counts toward the max side.
func TestLimitAtCenterGrowsMax(t *testing.T) {
	limits := limitsWithOwner(t, "hole")
	limits.UpdateVertical("hole", 20, 20)
	lim, _ := limits.Get("hole")
	if lim.VMax == nil || *lim.VMax != 22 {
		t.Errorf("VMax = %v, want 22", deref(lim.VMax))
	}
	if lim.VMin != nil {
		t.Errorf("VMin set for base at center")
	}
}

func TestUnknownOwnerIsIgnored(t *testing.T) {
	limits := limitsWithOwner(t, "hole")
	limits.UpdateVertical("ghost", 10, 0) // must not panic
	if _, ok := limits.Get("ghost"); ok {
		t.Error("ghost owner appeared in table")
	}
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
