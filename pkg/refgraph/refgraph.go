// Package refgraph builds the cross-reference graph of a panel spec:
// which openings, annotations and dimension call-outs refer to which
// openings. The graph renders as DOT, SVG or PNG and doubles as a
// diagnostic for forward references, which the declaration-order
// resolver rejects.
package refgraph

import (
	"fmt"
	"strings"

	"faceplate/pkg/spec"
)

// PanelNode is the graph node standing for the panel blank itself.
// Dimension call-outs measured against the panel edges attach here.
const PanelNode = "panel"

// Node is one graph participant: the panel, an opening or a text
// annotation.
type Node struct {
	ID   string
	Kind string // "panel", an opening type, or "text"
}

// Edge is one reference from From to To. Forward marks references to
// openings declared later, which the resolver cannot satisfy.
type Edge struct {
	From    string
	To      string
	Label   string
	Forward bool
}

// Graph is the assembled reference graph.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Forward returns the edges that point at openings declared after their
// source. Openings resolve in declaration order, so these are errors
// waiting to happen.
func (g *Graph) Forward() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Forward {
			out = append(out, e)
		}
	}
	return out
}

// Build assembles the reference graph for a spec. The spec is taken as
// decoded; ids must already be assigned.
func Build(s *spec.Spec) *Graph {
	g := &Graph{}
	g.Nodes = append(g.Nodes, Node{ID: PanelNode, Kind: "panel"})

	declared := make(map[string]int, len(s.Openings))
	for i, o := range s.Openings {
		declared[o.ID] = i
		g.Nodes = append(g.Nodes, Node{ID: o.ID, Kind: o.Type})
	}

	for i, o := range s.Openings {
		if o.ToXRef == "" {
			continue
		}
		target := refTarget(o.ToXRef)
		g.Edges = append(g.Edges, Edge{
			From:    o.ID,
			To:      target,
			Label:   "to_x: " + o.ToXRef,
			Forward: isForward(declared, target, i),
		})
	}

	for i, item := range s.Dimensions.Items {
		var targets []string
		switch {
		case item.Target != "":
			targets = []string{item.Target}
		case len(item.Targets) > 0:
			targets = item.Targets
		default:
			continue
		}
		for _, target := range targets {
			g.Edges = append(g.Edges, Edge{
				From:  PanelNode,
				To:    target,
				Label: fmt.Sprintf("dim %d: %s", i+1, item.Type),
			})
		}
	}

	for i, item := range s.Text.Items {
		id := fmt.Sprintf("text-%d", i+1)
		if item.At.XRef == "" && item.At.YRef == "" {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: id, Kind: "text"})
		if item.At.XRef != "" {
			g.Edges = append(g.Edges, Edge{From: id, To: refTarget(item.At.XRef), Label: "x: " + item.At.XRef})
		}
		if item.At.YRef != "" {
			g.Edges = append(g.Edges, Edge{From: id, To: refTarget(item.At.YRef), Label: "y: " + item.At.YRef})
		}
	}

	return g
}

// refTarget extracts the opening id from a reference expression like
// "hole1.center.x".
func refTarget(expr string) string {
	if i := strings.IndexByte(expr, '.'); i >= 0 {
		return expr[:i]
	}
	return expr
}

// isForward reports whether the edge from the opening at index from
// points at an opening not yet declared at that point.
func isForward(declared map[string]int, target string, from int) bool {
	to, ok := declared[target]
	if !ok {
		return true
	}
	return to >= from
}
