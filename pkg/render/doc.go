// Package render converts assembled drawings into exchange formats
// beyond DXF.
//
// # SVG export
//
// [SVG] writes selected layers as millimeter-sized SVG, with the layer
// presets [PresetCut] and [PresetEngrave] covering the two common
// machine passes. Text is rendered as glyph-outline paths by default so
// the files need no fonts on the consuming machine.
//
//	data, err := render.SVG(doc, render.SVGOptions{
//		Layers:      []string{"OUTLINE", "CUTOUTS"},
//		TextAsPaths: true,
//	})
//
// # Raster previews
//
// [Raster] turns an exported SVG into PNG or JPEG through a headless
// browser. Results are cached by content hash since browser startup
// dominates the cost.
package render
