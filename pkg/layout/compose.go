package layout

import (
	"math"

	"faceplate/pkg/drawing"
	"faceplate/pkg/geom"
)

// CenterInFreeArea translates every entity in the document by one offset
// so the drawing's bounding-box center lands on the center of the free
// area. The document holds only this render's entities, so template
// geometry is untouched by construction. When roundToMM is set the
// target's y component is rounded to a whole millimeter for cleaner
// coordinates. Returns the free area box; a document without geometry is
// left alone.
func CenterInFreeArea(doc *drawing.Document, free geom.Rect, roundToMM bool) geom.Rect {
	box := doc.BBox()
	if !box.HasData {
		return free
	}

	target := free.Center()
	if roundToMM {
		target.Y = math.Round(target.Y)
	}

	delta := target.Sub(box.Center())
	doc.Translate(delta.X, delta.Y)
	return free
}
