package svgimport

import (
	"regexp"
	"strconv"
	"strings"

	"faceplate/pkg/geom"
)

var pathTokenRe = regexp.MustCompile(`[A-Za-z]|-?\d*\.?\d+(?:[eE][+-]?\d+)?`)

// parsePath converts the M/m L/l H/h V/v Z/z subset of SVG path data
// into subpaths of drawing coordinates (Y flipped against the canvas
// height). Commands outside the subset are skipped with their arguments
// and reported in the second return.
func parsePath(d string, height float64) ([][]geom.Point, map[string]bool) {
	tokens := pathTokenRe.FindAllString(d, -1)
	skipped := map[string]bool{}

	var subpaths [][]geom.Point
	var points []geom.Point
	flush := func() {
		if len(points) > 0 {
			subpaths = append(subpaths, points)
			points = nil
		}
	}

	cur := geom.Pt(0, height)
	start := cur

	i := 0
	for i < len(tokens) {
		cmd := tokens[i]
		if !isCommand(cmd) {
			i++
			continue
		}
		i++
		var nums []float64
		for i < len(tokens) && !isCommand(tokens[i]) {
			v, err := strconv.ParseFloat(tokens[i], 64)
			if err != nil {
				break
			}
			nums = append(nums, v)
			i++
		}

		switch cmd {
		case "M", "m":
			if len(nums) < 2 {
				continue
			}
			flush()
			if cmd == "m" {
				cur = geom.Pt(cur.X+nums[0], cur.Y-nums[1])
			} else {
				cur = geom.Pt(nums[0], height-nums[1])
			}
			start = cur
			points = append(points, cur)
			// Extra coordinate pairs after a move are implicit line-tos.
			for j := 2; j+1 < len(nums); j += 2 {
				if cmd == "m" {
					cur = geom.Pt(cur.X+nums[j], cur.Y-nums[j+1])
				} else {
					cur = geom.Pt(nums[j], height-nums[j+1])
				}
				points = append(points, cur)
			}

		case "L", "l":
			for j := 0; j+1 < len(nums); j += 2 {
				if cmd == "l" {
					cur = geom.Pt(cur.X+nums[j], cur.Y-nums[j+1])
				} else {
					cur = geom.Pt(nums[j], height-nums[j+1])
				}
				points = append(points, cur)
			}

		case "H", "h":
			for _, v := range nums {
				x := v
				if cmd == "h" {
					x = cur.X + v
				}
				cur = geom.Pt(x, cur.Y)
				points = append(points, cur)
			}

		case "V", "v":
			for _, v := range nums {
				y := height - v
				if cmd == "v" {
					y = cur.Y - v
				}
				cur = geom.Pt(cur.X, y)
				points = append(points, cur)
			}

		case "Z", "z":
			points = append(points, start)
			cur = start

		default:
			skipped[strings.ToUpper(cmd)] = true
		}
	}
	flush()
	return subpaths, skipped
}

func isCommand(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	c := tok[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

var numericRe = regexp.MustCompile(`[^0-9.+-]`)

// parseFloat reads a bare SVG coordinate, tolerating a unit suffix.
func parseFloat(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err == nil {
		return v
	}
	v, err = strconv.ParseFloat(numericRe.ReplaceAllString(value, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLength converts a CSS length into millimeters. Unitless values
// are CSS pixels at 96 dpi.
func parseLength(value string, defaultMM float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultMM
	}
	parse := func(s string) (float64, bool) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}
	switch {
	case strings.HasSuffix(value, "pt"):
		if v, ok := parse(value[:len(value)-2]); ok {
			return v * 25.4 / 72.0
		}
	case strings.HasSuffix(value, "px"):
		if v, ok := parse(value[:len(value)-2]); ok {
			return v * 25.4 / 96.0
		}
	case strings.HasSuffix(value, "mm"):
		if v, ok := parse(value[:len(value)-2]); ok {
			return v
		}
	case strings.HasSuffix(value, "cm"):
		if v, ok := parse(value[:len(value)-2]); ok {
			return v * 10.0
		}
	default:
		if v, ok := parse(value); ok {
			return v * 25.4 / 96.0
		}
	}
	return defaultMM
}
