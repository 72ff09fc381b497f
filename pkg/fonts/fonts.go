// Package fonts resolves font families to font files on the host and
// parses them for glyph-outline extraction. The SVG exporter uses the
// parsed font to render text as paths; the DXF encoder only needs the
// file name for its text style records.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"

	"faceplate/pkg/errors"
)

// candidateFiles maps a lowercased family name to the file names it is
// shipped under across platforms. Families not listed here are tried as
// "<family>.ttf" directly.
var candidateFiles = map[string][]string{
	"segoe ui semibold": {"segoeuisb.ttf", "SegoeUI-Semibold.ttf", "Segoe UI Semibold.ttf"},
	"segoe ui":          {"segoeui.ttf", "SegoeUI.ttf"},
	"arial":             {"arial.ttf", "Arial.ttf"},
	"helvetica":         {"Helvetica.ttf", "helvetica.ttf"},
	"dejavu sans":       {"DejaVuSans.ttf"},
}

// fallbackFiles are tried when the requested family cannot be found.
// DejaVu ships with most Linux distributions and covers the glyphs the
// drawings use, including the diameter sign.
var fallbackFiles = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"arial.ttf",
}

// Face is a resolved and parsed font.
type Face struct {
	Family string
	Path   string
	Font   *sfnt.Font
}

var (
	mu    sync.Mutex
	cache = map[string]*Face{}
)

// Find locates the font file for a family without parsing it.
func Find(family string) (string, error) {
	for _, name := range candidates(family) {
		if path, err := findfont.Find(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeNotFound, "no font file for family %q", family)
}

// Load resolves and parses the font for a family, falling back to a
// stock sans-serif when the family is not installed. Parsed faces are
// cached per family.
func Load(family string) (*Face, error) {
	mu.Lock()
	defer mu.Unlock()
	if f, ok := cache[family]; ok {
		return f, nil
	}

	path, err := Find(family)
	if err != nil {
		for _, name := range fallbackFiles {
			if p, ferr := findfont.Find(name); ferr == nil {
				path = p
				break
			}
		}
		if path == "" {
			return nil, err
		}
	}

	face, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	face.Family = family
	cache[family] = face
	return face, nil
}

// LoadFile parses a font file.
func LoadFile(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "font %s", path)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parsing font %s", path)
	}
	return &Face{Path: path, Font: f}, nil
}

func candidates(family string) []string {
	key := strings.ToLower(strings.TrimSpace(family))
	if names, ok := candidateFiles[key]; ok {
		return names
	}
	compact := strings.ReplaceAll(family, " ", "")
	return []string{family + ".ttf", compact + ".ttf", strings.ToLower(compact) + ".ttf"}
}
