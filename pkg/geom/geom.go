// Package geom provides the small 2-D vocabulary shared by the layout
// engine and the output encoders: points, rectangles and accumulating
// bounding boxes. All values are millimeters in drawing coordinates
// (x grows right, y grows up).
package geom

import "math"

// Point is a position in drawing coordinates.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle given by its edges.
// Left <= Right and Bottom <= Top for a well-formed rectangle.
type Rect struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Bottom + r.Top) / 2}
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// BBox accumulates the bounding box of a set of points. The zero value
// is empty; extend it with Add or Union and check HasData before using
// the bounds.
type BBox struct {
	Min     Point
	Max     Point
	HasData bool
}

// Add extends the box to include p.
func (b *BBox) Add(p Point) {
	if !b.HasData {
		b.Min, b.Max = p, p
		b.HasData = true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// AddXY extends the box to include the point (x, y).
func (b *BBox) AddXY(x, y float64) {
	b.Add(Point{X: x, Y: y})
}

// Union extends the box to include everything in other.
func (b *BBox) Union(other BBox) {
	if !other.HasData {
		return
	}
	b.Add(other.Min)
	b.Add(other.Max)
}

// Center returns the midpoint of the box. The result is meaningless
// when HasData is false.
func (b BBox) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Rect returns the box as a Rect. The result is meaningless when
// HasData is false.
func (b BBox) Rect() Rect {
	return Rect{Left: b.Min.X, Bottom: b.Min.Y, Right: b.Max.X, Top: b.Max.Y}
}
