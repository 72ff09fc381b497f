package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"faceplate/pkg/errors"
	"faceplate/pkg/refgraph"
	"faceplate/pkg/spec"
)

// graphCommand creates the graph command: render the opening reference
// graph of a spec. The output format follows the file extension
// (.dot, .svg or .png).
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph <spec.toml>",
		Short: "Render the opening reference graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file: .dot, .svg or .png (default: spec path with .svg)")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, specPath, output string) error {
	s, err := spec.Load(specPath)
	if err != nil {
		return err
	}

	g := refgraph.Build(s)
	for _, e := range g.Forward() {
		printWarning("forward reference: %s → %s (%s)", e.From, e.To, e.Label)
	}

	out := outputPath(output, specPath, "svg")
	var data []byte
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".dot":
		data = []byte(refgraph.ToDOT(g))
	case ".svg", ".png":
		format := graphviz.SVG
		if ext == ".png" {
			format = graphviz.PNG
		}
		err = withSpinner(cmd.Context(), "Rendering reference graph", func() error {
			data, err = refgraph.Render(cmd.Context(), g, format)
			return err
		})
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "graph output %q (use .dot, .svg or .png)", ext)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", out)
	}

	printSuccess("Graphed %s (%d nodes, %d edges)", specPath, len(g.Nodes), len(g.Edges))
	printFile(out)
	return nil
}
