package dxf

import (
	"time"

	"faceplate/pkg/spec"
)

// Title block fields recognized in [title_block.fields]. Each maps to
// the placeholder strings the stock sheet templates carry in their TEXT
// and MTEXT entities.
const (
	FieldTitle    = "title"
	FieldType     = "type"
	FieldNumber   = "number"
	FieldDate     = "date"
	FieldMaterial = "material"
)

var placeholderFields = map[string]string{
	"ISO 5457 template": FieldTitle,
	"Component Drawing": FieldType,
	"DN":                FieldNumber,
	"DD-MM-YYYY":        FieldDate,
	"YYYY-MM-DD":        FieldDate,
	"<Material>":        FieldMaterial,
}

// SubstituteTitleBlock replaces the template's title block placeholders
// with the configured field values. Matching is by exact text value, so
// arbitrary template text is never rewritten. Fields without a value
// leave their placeholder in place. A date value of the well-known
// placeholder is filled from the clock, which keeps repeated renders of
// one spec byte-identical under an injected time.
func (t *Template) SubstituteTitleBlock(fields map[string]string, now time.Time) int {
	replaced := 0
	inText := false
	for i := range t.tags {
		switch t.tags[i].Code {
		case 0:
			inText = t.tags[i].Value == "TEXT" || t.tags[i].Value == "MTEXT"
		case 1, 3:
			if !inText {
				continue
			}
			field, ok := placeholderFields[t.tags[i].Value]
			if !ok {
				continue
			}
			value := fields[field]
			if value == "" {
				continue
			}
			if field == FieldDate && value == spec.IssueDatePlaceholder {
				value = now.Format("02.01.2006")
			}
			t.tags[i].Value = value
			replaced++
		}
	}
	return replaced
}
