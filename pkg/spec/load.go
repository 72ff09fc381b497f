package spec

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"faceplate/pkg/errors"
)

// Load reads and parses a panel spec from a TOML file. The returned spec
// is validated and has generated ids assigned to anonymous openings.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSpecNotFound, err, "spec %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "read spec %s", path)
	}
	return Parse(data)
}

// Parse decodes a panel spec from TOML bytes. Unknown keys are rejected
// so typos surface as errors instead of silently ignored settings.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode spec")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown keys: %s", strings.Join(keys, ", "))
	}

	assignIDs(&s)
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// assignIDs gives anonymous openings a stable-for-this-run generated id
// so dimension targets and references always have something to name.
func assignIDs(s *Spec) {
	for i := range s.Openings {
		if s.Openings[i].ID == "" {
			s.Openings[i].ID = fmt.Sprintf("opening-%s", uuid.NewString()[:8])
		}
	}
}
