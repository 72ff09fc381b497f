package render

import (
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"faceplate/pkg/errors"
	"faceplate/pkg/fonts"
)

// ppem maps the text height onto the font's em square, so glyph
// coordinates come back directly in millimeters.
func ppem(height float64) fixed.Int26_6 {
	return fixed.Int26_6(height * 64)
}

// measureText returns the advance width of the string in millimeters.
func measureText(face *fonts.Face, value string, height float64) (float64, error) {
	var b sfnt.Buffer
	size := ppem(height)
	var width fixed.Int26_6
	for _, r := range value {
		gi, err := face.Font.GlyphIndex(&b, r)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeRender, err, "glyph index %q", r)
		}
		adv, err := face.Font.GlyphAdvance(&b, gi, size, font.HintingNone)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeRender, err, "glyph advance %q", r)
		}
		width += adv
	}
	return f26(width), nil
}

// textPathData outlines the string as one SVG path. The origin is the
// baseline-left point in SVG coordinates; sfnt glyph segments already
// use a downward Y axis, which matches SVG's.
func textPathData(face *fonts.Face, value string, height float64, x, y float64) (string, error) {
	var b sfnt.Buffer
	size := ppem(height)
	var d strings.Builder
	pen := 0.0

	for _, r := range value {
		gi, err := face.Font.GlyphIndex(&b, r)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeRender, err, "glyph index %q", r)
		}
		segments, err := face.Font.LoadGlyph(&b, gi, size, nil)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeRender, err, "glyph outline %q", r)
		}

		open := false
		for _, seg := range segments {
			p := func(i int) (string, string) {
				return trimFloat(x + pen + f26(seg.Args[i].X)), trimFloat(y + f26(seg.Args[i].Y))
			}
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					d.WriteString("Z")
				}
				px, py := p(0)
				d.WriteString("M" + px + " " + py)
				open = true
			case sfnt.SegmentOpLineTo:
				px, py := p(0)
				d.WriteString("L" + px + " " + py)
			case sfnt.SegmentOpQuadTo:
				cx, cy := p(0)
				px, py := p(1)
				d.WriteString("Q" + cx + " " + cy + " " + px + " " + py)
			case sfnt.SegmentOpCubeTo:
				c1x, c1y := p(0)
				c2x, c2y := p(1)
				px, py := p(2)
				d.WriteString("C" + c1x + " " + c1y + " " + c2x + " " + c2y + " " + px + " " + py)
			}
		}
		if open {
			d.WriteString("Z")
		}

		adv, err := face.Font.GlyphAdvance(&b, gi, size, font.HintingNone)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeRender, err, "glyph advance %q", r)
		}
		pen += f26(adv)
	}
	return d.String(), nil
}

func f26(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// trimFloat formats a coordinate with enough precision for sub-0.01 mm
// placement without ballooning the output.
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
