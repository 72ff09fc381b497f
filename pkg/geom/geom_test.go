package geom

import "testing"

func TestBBoxAdd(t *testing.T) {
	var b BBox
	if b.HasData {
		t.Fatal("zero BBox should be empty")
	}

	b.AddXY(10, 20)
	if !b.HasData {
		t.Fatal("BBox should have data after Add")
	}
	if b.Min != (Point{10, 20}) || b.Max != (Point{10, 20}) {
		t.Errorf("single point box = [%v, %v], want [{10 20}, {10 20}]", b.Min, b.Max)
	}

	b.AddXY(-5, 30)
	b.AddXY(15, -2)

	if b.Min != (Point{-5, -2}) {
		t.Errorf("Min = %v, want {-5 -2}", b.Min)
	}
	if b.Max != (Point{15, 30}) {
		t.Errorf("Max = %v, want {15 30}", b.Max)
	}
}

func TestBBoxCenter(t *testing.T) {
	var b BBox
	b.AddXY(0, 0)
	b.AddXY(100, 40)

	got := b.Center()
	if got != (Point{50, 20}) {
		t.Errorf("Center() = %v, want {50 20}", got)
	}
	if b.Width() != 100 || b.Height() != 40 {
		t.Errorf("size = %vx%v, want 100x40", b.Width(), b.Height())
	}
}

func TestBBoxUnion(t *testing.T) {
	var a, b, empty BBox
	a.AddXY(0, 0)
	a.AddXY(10, 10)
	b.AddXY(-3, 5)
	b.AddXY(4, 25)

	a.Union(b)
	if a.Min != (Point{-3, 0}) || a.Max != (Point{10, 25}) {
		t.Errorf("Union = [%v, %v], want [{-3 0}, {10 25}]", a.Min, a.Max)
	}

	// Union with an empty box is a no-op.
	before := a
	a.Union(empty)
	if a != before {
		t.Errorf("Union with empty box changed the bounds: %v", a)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Left: 25, Bottom: 60, Right: 180, Top: 277}

	if r.Width() != 155 {
		t.Errorf("Width() = %v, want 155", r.Width())
	}
	if r.Height() != 217 {
		t.Errorf("Height() = %v, want 217", r.Height())
	}
	if got := r.Center(); got != (Point{102.5, 168.5}) {
		t.Errorf("Center() = %v, want {102.5 168.5}", got)
	}

	if !r.Contains(Point{102.5, 168.5}) {
		t.Error("Contains(center) = false, want true")
	}
	if r.Contains(Point{0, 0}) {
		t.Error("Contains(origin) = true, want false")
	}
}

func TestPointOps(t *testing.T) {
	p := Point{3, 4}
	if got := p.Add(1, -2); got != (Point{4, 2}) {
		t.Errorf("Add = %v, want {4 2}", got)
	}
	if got := p.Sub(Point{1, 1}); got != (Point{2, 3}) {
		t.Errorf("Sub = %v, want {2 3}", got)
	}
}
