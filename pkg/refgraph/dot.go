package refgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"faceplate/pkg/errors"
)

// ToDOT renders the graph in Graphviz DOT format. Forward references
// come out as dashed red edges.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph refs {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node) []string {
	label := n.ID
	if n.Kind != "" && n.Kind != "panel" {
		label = fmt.Sprintf("%s\n(%s)", n.ID, n.Kind)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case "panel":
		attrs = append(attrs, "fillcolor=lightgrey", "peripheries=2")
	case "text":
		attrs = append(attrs, "shape=note")
	}
	return attrs
}

func edgeAttrs(e Edge) []string {
	attrs := []string{fmt.Sprintf("label=%q", e.Label), "fontsize=10"}
	if e.Forward {
		attrs = append(attrs, "style=dashed", "color=red", "fontcolor=red")
	}
	return attrs
}

// Render renders the graph in the given graphviz format, typically
// graphviz.SVG or graphviz.PNG.
func Render(ctx context.Context, g *Graph, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(ToDOT(g)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render graph")
	}
	return buf.Bytes(), nil
}
