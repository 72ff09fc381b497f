package drawing

import (
	"testing"

	"faceplate/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "hex", input: "#1A2B3C", want: RGB{R: 0x1A, G: 0x2B, B: 0x3C}},
		{name: "hex lowercase", input: "#ffcc00", want: RGB{R: 255, G: 204, B: 0}},
		{name: "triple", input: "255, 204, 0", want: RGB{R: 255, G: 204, B: 0}},
		{name: "triple no spaces", input: "0,0,0", want: RGB{}},
		{name: "empty", input: "", wantErr: true},
		{name: "short hex", input: "#fff", wantErr: true},
		{name: "bad hex", input: "#zzzzzz", wantErr: true},
		{name: "two components", input: "1,2", wantErr: true},
		{name: "component out of range", input: "0,0,300", wantErr: true},
		{name: "negative component", input: "-1,0,0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidColor)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrueColor(t *testing.T) {
	c := RGB{R: 0x12, G: 0x34, B: 0x56}
	if got, want := c.TrueColor(), 0x123456; got != want {
		t.Errorf("TrueColor() = %#x, want %#x", got, want)
	}
	if got, want := c.Hex(), "#123456"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
}
