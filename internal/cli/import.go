package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faceplate/pkg/dxf"
	"faceplate/pkg/errors"
	"faceplate/pkg/svgimport"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	output string // output DXF path
	report string // mapping report markdown path
}

// importCommand creates the import command: convert an SVG sheet
// template into a layered DXF plus a mapping report.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import svg <template.svg>",
		Short: "Convert an SVG sheet template to a layered DXF",
		Args:  cobra.MatchAll(cobra.ExactArgs(2), matchFirstArg("svg")),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output DXF file (default: template path with .dxf)")
	cmd.Flags().StringVar(&opts.report, "report", "", "write the layer mapping report to this markdown file")

	return cmd
}

func (c *CLI) runImport(templatePath string, opts *importOpts) error {
	p := newProgress(c.Logger)
	result, err := svgimport.ConvertFile(templatePath)
	if err != nil {
		return err
	}

	data, err := dxf.Encode(result.Document)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Converted %s", templatePath))

	out := outputPath(opts.output, templatePath, "dxf")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", out)
	}

	printSuccess("Converted %s", templatePath)
	printDetail("%d groups mapped", len(result.Report.Groups))
	for _, g := range result.Report.Groups {
		if g.Unmapped {
			printWarning("group %q has no layer mapping, kept on layer 0", g.Name)
		}
	}
	if len(result.Report.Unsupported) > 0 {
		printWarning("unsupported path commands skipped: %v", result.Report.Unsupported)
	}
	printFile(out)

	if opts.report != "" {
		if err := os.WriteFile(opts.report, []byte(result.Report.Markdown()), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeExport, err, "write %s", opts.report)
		}
		printFile(opts.report)
	}
	return nil
}
