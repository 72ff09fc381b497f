package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faceplate/pkg/layout"
	"faceplate/pkg/spec"
)

// checkCommand creates the check command: validate a spec and print the
// resolved opening table without writing anything.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <spec.toml>",
		Short: "Validate a panel spec and print its resolved openings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func runCheck(path string) error {
	s, err := spec.Load(path)
	if err != nil {
		printError("Invalid spec: %v", err)
		return err
	}

	result, err := layout.Build(s)
	if err != nil {
		printError("Layout failed: %v", err)
		return err
	}

	printSuccess("Spec is valid")
	printKeyValue("Panel", fmt.Sprintf("%g × %g mm", s.Panel.Size.Length, s.Panel.Size.Width))
	printNewline()

	printOpeningTable(result)
	printStats(result.Openings.Len(), len(result.Placements), len(result.Axes))
	return nil
}

// printOpeningTable prints the resolved openings in aligned columns.
func printOpeningTable(result *layout.Result) {
	openings := result.Openings.All()
	if len(openings) == 0 {
		printInfo("No openings")
		return
	}

	idWidth := len("ID")
	for _, o := range openings {
		if len(o.ID) > idWidth {
			idWidth = len(o.ID)
		}
	}

	header := fmt.Sprintf("%s  %-8s  %-16s  %-14s  %s",
		padRight("ID", idWidth), "TYPE", "CENTER", "SIZE", "BOUNDS")
	fmt.Println("  " + StyleDim.Render(header))

	for _, o := range openings {
		size := fmt.Sprintf("%g × %g", o.Width, o.Height)
		if o.Kind == spec.OpeningCircle {
			size = fmt.Sprintf("⌀ %g", 2*o.Radius)
		}
		bounds := fmt.Sprintf("[%g..%g, %g..%g]",
			o.Bounds.Left, o.Bounds.Right, o.Bounds.Bottom, o.Bounds.Top)
		row := fmt.Sprintf("%s  %-8s  %-16s  %-14s  %s",
			padRight(o.ID, idWidth), o.Kind,
			fmt.Sprintf("(%g, %g)", o.Center.X, o.Center.Y),
			size, bounds)
		fmt.Println("  " + StyleValue.Render(row))
	}
	fmt.Println("  " + StyleDim.Render(strings.Repeat("─", len(header))))
}
