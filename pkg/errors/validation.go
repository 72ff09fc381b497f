package errors

import (
	"strings"
	"unicode"
)

// ValidateOpeningID validates an opening identifier from a panel spec.
// IDs become cache keys, DXF-adjacent labels and reference expressions, so
// the rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No '.' (reserved for reference expressions like "hole1.center.x")
//   - Maximum length of 64 characters
func ValidateOpeningID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidOpening, "opening id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidOpening, "opening id too long (max 64 characters): %q", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidOpening, "opening id contains whitespace or control characters: %q", id)
		}
	}

	if strings.Contains(id, ".") {
		return New(ErrCodeInvalidOpening, "opening id cannot contain '.': %q", id)
	}

	return nil
}

// ValidateLayerName validates a DXF layer name.
// The rules follow the DXF symbol table restrictions:
//   - No empty names
//   - Maximum length of 255 characters
//   - None of the reserved characters <>/\":;?*|=`
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSpec, "layer name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidSpec, "layer name too long (max 255 characters)")
	}

	if strings.ContainsAny(name, "<>/\\\":;?*|=`") {
		return New(ErrCodeInvalidSpec, "layer name contains reserved characters: %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "layer name contains control characters")
		}
	}

	return nil
}

// ValidateReference validates the shape of a reference expression
// ("<id>.center.x", "<id>.left", ...). It checks syntax only; resolution
// against the opening table happens later and reports ErrCodeUnknownReference.
func ValidateReference(expr string) error {
	if expr == "" {
		return New(ErrCodeInvalidPosition, "reference expression cannot be empty")
	}

	parts := strings.Split(expr, ".")
	if len(parts) < 2 {
		return New(ErrCodeInvalidPosition, "reference %q must have the form <id>.<field>", expr)
	}
	if parts[0] == "" {
		return New(ErrCodeInvalidPosition, "reference %q is missing the opening id", expr)
	}

	field := strings.Join(parts[1:], ".")
	switch field {
	case "center.x", "center.y", "left", "right", "top", "bottom":
		return nil
	}
	return New(ErrCodeInvalidPosition, "reference %q has unknown field %q", expr, field)
}
