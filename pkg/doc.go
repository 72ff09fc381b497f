// Package pkg provides the core libraries for faceplate panel drawings.
//
// # Overview
//
// Faceplate turns declarative TOML panel specs into dimensioned,
// manufacturing-ready 2-D drawings. The pkg directory is organized into
// four main areas:
//
//  1. Domain model - [spec], [geom], [drawing]: the parsed spec, plane
//     geometry, and the layer/entity document model
//  2. Layout - [layout]: opening resolution, dimension call-outs,
//     symmetry axes, sheet composition
//  3. Output and input - [dxf], [render], [svgimport]: DXF encoding and
//     sheet templates, SVG/raster export, SVG template import
//  4. Infrastructure - [pipeline], [cache], [overrides], [fonts],
//     [errors], [refgraph], [buildinfo]
//
// # Architecture
//
// The typical data flow through faceplate:
//
//	TOML panel spec
//	         ↓
//	    [spec] package (parse + validate)
//	         ↓
//	    [layout] package (resolve openings, dimensions, axes)
//	         ↓
//	    [drawing] document (layers + entities)
//	         ↓
//	    [dxf] / [render] (sheet composition, DXF / SVG / PNG output)
//
// # Quick Start
//
// Render a spec to a DXF drawing:
//
//	import (
//	    "context"
//	    "faceplate/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	defer runner.Close()
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    SpecPath:   "panel.toml",
//	    OutputPath: "panel.dxf",
//	})
//
// Or drive the stages directly:
//
//	s, _ := spec.Load("panel.toml")
//	res, _ := layout.Build(s)
//	data, _ := dxf.Encode(res.Document)
//
// # Main Packages
//
// ## Domain Model
//
// [spec] - TOML panel specs: panel size, openings (circles, rectangles,
// U-notches), dimension requests, axes, text and title block fields.
// Validation happens at load time; every opening gets a stable id.
//
// [geom] - Minimal plane geometry: points, rectangles, bounding boxes.
//
// [drawing] - The layer/entity document model shared by every output
// path: lines, circles, arcs, polylines, dimensions, text.
//
// ## Layout
//
// [layout] - The drawing engine. Resolves opening positions (including
// references between openings), places dimension call-outs with
// axis-limit accumulation so stacked call-outs never collide, draws
// symmetry axes, and composes everything into a document.
//
// ## Output and Input
//
// [dxf] - Tag-stream DXF encoding, sheet templates (ISO 5457 style
// frames), free-area fitting and title block substitution.
//
// [render] - SVG export with layer presets for the cut and engrave
// machine passes, text-as-paths via [fonts], and chromedp-based raster
// previews (PNG/JPEG) behind the cache.
//
// [svgimport] - The reverse path: convert an SVG sheet template into a
// DXF template, mapping SVG groups to drawing layers.
//
// ## Infrastructure
//
// [pipeline] - The Load → Layout → Compose → Encode orchestration used
// by the CLI, the batch renderer and the preview server.
//
// [cache] - Content-addressed render cache: file backend for the CLI,
// Redis via FACEPLATE_REDIS_ADDR, a null cache for tests, and a scoped
// wrapper for shared backends.
//
// [overrides] - Measurement-note parsing: shop-floor Markdown notes
// that adjust or filter dimension call-outs without editing the spec.
//
// [refgraph] - The opening reference graph with Graphviz DOT/SVG/PNG
// rendering; flags forward references that the resolver rejects.
//
// [errors] - Coded errors and the shared identifier/reference
// validators.
//
// [fonts] - Host font discovery and parsing for glyph-outline text.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example         # Examples only
package pkg
