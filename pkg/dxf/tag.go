// Package dxf encodes drawing documents as AutoCAD R2010 DXF and merges
// generated geometry into existing sheet templates. The format is handled
// at the tag level: a DXF file is a flat stream of (group code, value)
// pairs, and both the blank-sheet writer and the template editor operate
// on that stream directly.
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"faceplate/pkg/errors"
)

// Tag is one group-code/value pair of a DXF stream.
type Tag struct {
	Code  int
	Value string
}

// Float returns the tag value parsed as a float.
func (t Tag) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "group %d", t.Code)
	}
	return v, nil
}

// ParseTags reads a complete tag stream. Codes and values alternate line
// by line; both LF and CRLF input are accepted.
func ParseTags(r io.Reader) ([]Tag, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var tags []Tag
	line := 0
	for sc.Scan() {
		line++
		code, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: group code %q is not a number", line, strings.TrimSpace(sc.Text()))
		}
		if !sc.Scan() {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: group code %d has no value line", line, code)
		}
		line++
		tags = append(tags, Tag{Code: code, Value: strings.TrimRight(sc.Text(), "\r")})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "reading tag stream")
	}
	return tags, nil
}

// WriteTags emits the stream in the conventional ASCII form: group codes
// right-aligned in three columns, CRLF line endings.
func WriteTags(w io.Writer, tags []Tag) error {
	bw := bufio.NewWriter(w)
	for _, t := range tags {
		if _, err := fmt.Fprintf(bw, "%3d\r\n%s\r\n", t.Code, t.Value); err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "writing tag stream")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "writing tag stream")
	}
	return nil
}

// formatFloat renders a coordinate or length. DXF readers expect a
// decimal point even for whole numbers.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func str(code int, value string) Tag  { return Tag{Code: code, Value: value} }
func num(code int, value int) Tag     { return Tag{Code: code, Value: strconv.Itoa(value)} }
func flt(code int, value float64) Tag { return Tag{Code: code, Value: formatFloat(value)} }
