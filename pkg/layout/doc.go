// Package layout is the parametric layout engine. It turns a panel spec
// into drawing entities in four stages: resolve opening positions, plan
// dimension call-outs (accumulating axis-extent limits as a side effect),
// draw symmetry axes extended to cover those limits, and finally center
// the generated geometry inside a sheet's free area.
//
// Data flows one way: spec → opening table → dimension placements +
// axis limits → axes → composed document. Each render builds everything
// fresh; nothing is shared between invocations.
package layout
