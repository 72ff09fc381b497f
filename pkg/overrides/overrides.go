// Package overrides reads dimension call-out adjustments from a
// measurement notes document. The notes are markdown; the rows under a
// "#### Cotes" heading request dimensions and optionally move them:
//
//	#### Cotes
//	- overall length; keep clear of the connector; where: down; distance: 10
//	- hole diameter
//
// Each row names a dimension by label. A row with where/distance fields
// overrides that dimension's placement; a bare row merely requests it,
// which --only-requested uses to filter the spec's dimension list.
package overrides

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"faceplate/pkg/errors"
	"faceplate/pkg/spec"
)

// Override moves one dimension call-out.
type Override struct {
	Where    string
	Distance float64
}

// row is one parsed list entry: the lowercased label text plus the
// optional override.
type row struct {
	label    string
	override *Override
}

// Set holds the parsed rows in document order.
type Set struct {
	rows []row
}

var (
	whereRe    = regexp.MustCompile(`(?i)where:\s*(left|right|up|down)`)
	distanceRe = regexp.MustCompile(`(?i)distance:\s*([0-9.]+)`)
)

// Load reads the notes document. A missing file yields an empty set and
// no error; whether that deserves a warning is the caller's call.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Set{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "overrides %s", path)
	}
	defer f.Close()
	return Parse(f), nil
}

// Parse scans the document for the Cotes section. Rows that do not
// parse are skipped; the notes are hand-written and a half-finished row
// must not block a render.
func Parse(r io.Reader) *Set {
	return parse(bufio.NewScanner(r))
}

// ParseString parses notes held in memory.
func ParseString(text string) *Set {
	return Parse(strings.NewReader(text))
}

func parse(sc *bufio.Scanner) *Set {
	s := &Set{}
	inCotes := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#### Cotes"):
			inCotes = true
			continue
		case inCotes && strings.HasPrefix(line, "###"):
			return s
		case !inCotes || !strings.HasPrefix(line, "-"):
			continue
		}

		label := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(
			strings.SplitN(line, ";", 2)[0], "-")))
		if label == "" {
			continue
		}
		r := row{label: label}

		whereM := whereRe.FindStringSubmatch(line)
		distM := distanceRe.FindStringSubmatch(line)
		if whereM != nil && distM != nil {
			if d, err := strconv.ParseFloat(distM[1], 64); err == nil {
				r.override = &Override{Where: strings.ToLower(whereM[1]), Distance: d}
			}
		}
		s.rows = append(s.rows, r)
	}
	return s
}

// Empty reports whether the document contained no rows.
func (s *Set) Empty() bool { return len(s.rows) == 0 }

// Match returns the override for a dimension label. The label matches a
// row when the row's text contains it, case-insensitively, so a row may
// carry free-form commentary around the label.
func (s *Set) Match(label string) (Override, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Override{}, false
	}
	for _, r := range s.rows {
		if r.override != nil && strings.Contains(r.label, label) {
			return *r.override, true
		}
	}
	return Override{}, false
}

// Requested reports whether any row names the label, with or without an
// override.
func (s *Set) Requested(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}
	for _, r := range s.rows {
		if strings.Contains(r.label, label) {
			return true
		}
	}
	return false
}

// Apply rewrites the spec's dimension items: matched overrides replace
// where/distance, and with onlyRequested set, unlabeled or unrequested
// items are dropped. The input slice is not modified.
func (s *Set) Apply(items []spec.DimensionItem, onlyRequested bool) []spec.DimensionItem {
	out := make([]spec.DimensionItem, 0, len(items))
	for _, item := range items {
		if onlyRequested && !s.Requested(item.Label) {
			continue
		}
		if ov, ok := s.Match(item.Label); ok {
			item.Where = ov.Where
			d := ov.Distance
			item.Distance = &d
		}
		out = append(out, item)
	}
	return out
}
