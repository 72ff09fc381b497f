package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"faceplate/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string // output DXF path; defaults to the spec path with .dxf
	template      string // sheet template override
	overrides     string // measurement notes with dimension overrides
	onlyRequested bool   // drop dimensions the notes never mention
}

// renderCommand creates the render command: one spec in, one DXF out.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <spec.toml>",
		Short: "Render a panel spec to a DXF drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output DXF file (default: spec path with .dxf)")
	cmd.Flags().StringVar(&opts.template, "template", "", "sheet template DXF (overrides the spec)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "measurement notes markdown with dimension overrides")
	cmd.Flags().BoolVar(&opts.onlyRequested, "only-requested", false, "keep only dimensions the notes request")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, specPath string, opts *renderOpts) error {
	runner := c.newRunner(true)
	defer runner.Close()

	p := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		SpecPath:      specPath,
		TemplatePath:  opts.template,
		OverridesPath: opts.overrides,
		OnlyRequested: opts.onlyRequested,
		OutputPath:    outputPath(opts.output, specPath, "dxf"),
		Logger:        c.Logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %s", specPath))

	printSuccess("Rendered %s", specPath)
	printStats(result.Layout.Openings.Len(), len(result.Layout.Placements), len(result.Layout.Axes))
	if !result.TemplateUsed {
		printWarning("no sheet template, wrote blank sheet")
	} else if result.TitleBlockFields > 0 {
		printDetail("Filled %d title block fields", result.TitleBlockFields)
	}
	printFile(outputPath(opts.output, specPath, "dxf"))
	return nil
}
