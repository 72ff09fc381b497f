package svgimport

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Report describes how the template's structure was mapped.
type Report struct {
	Source      string
	Groups      []GroupMapping
	Unsupported []string // skipped path commands
}

// GroupMapping is one SVG group (or bare element) and its target layer.
type GroupMapping struct {
	Name     string
	Counts   map[string]int // element tag -> count
	Layer    string
	Unmapped bool
}

func (c *converter) report() Report {
	r := Report{}
	for _, name := range c.groups {
		r.Groups = append(r.Groups, GroupMapping{
			Name:     name,
			Counts:   c.counts[name],
			Layer:    c.layerFor[name],
			Unmapped: c.unmapped[name],
		})
	}
	sort.Slice(r.Groups, func(i, j int) bool { return r.Groups[i].Name < r.Groups[j].Name })
	for cmd := range c.unsupported {
		r.Unsupported = append(r.Unsupported, cmd)
	}
	sort.Strings(r.Unsupported)
	return r
}

// Markdown renders the mapping report.
func (r Report) Markdown() string {
	var b strings.Builder
	name := filepath.Base(r.Source)
	if name == "." {
		name = "template.svg"
	}
	fmt.Fprintf(&b, "# %s mapping notes\n\n", name)
	if r.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", r.Source)
	}

	b.WriteString("## SVG groups and elements\n")
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "\n### %s\n", g.Name)
		var kinds []string
		for kind := range g.Counts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		parts := make([]string, len(kinds))
		for i, kind := range kinds {
			parts[i] = fmt.Sprintf("%s:%d", kind, g.Counts[kind])
		}
		fmt.Fprintf(&b, "- Elements: %s\n", strings.Join(parts, ", "))
		fmt.Fprintf(&b, "- DXF layer: %s\n", g.Layer)
		if g.Unmapped {
			b.WriteString("- Unmapped group: kept on layer 0, reassign in CAD\n")
		}
	}

	b.WriteString("\n## Default DXF layers\n")
	for _, name := range DefaultLayers {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	if len(r.Unsupported) > 0 {
		b.WriteString("\n## Unsupported SVG path commands\n")
		b.WriteString(strings.Join(r.Unsupported, ", "))
		b.WriteString("\n")
	}
	return b.String()
}
