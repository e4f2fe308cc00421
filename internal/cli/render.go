package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grapheq/grapheq/pkg/render"
)

// renderCommand creates the 'render' command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Export a graph as DOT or SVG",
		Long:  `Render a graph file for visual inspection. The output format follows the output file extension: .dot writes Graphviz source, .svg renders the graph through Graphviz.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if output == "" {
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				output = base + ".svg"
			}

			g, err := loadGraph(path, format)
			if err != nil {
				return err
			}

			c.Logger.Debug("rendering graph", "path", path, "output", output)

			var data []byte
			switch strings.ToLower(filepath.Ext(output)) {
			case ".dot":
				data = []byte(render.ToDOT(g))
			case ".svg":
				data, err = render.RenderSVG(cmd.Context(), render.ToDOT(g))
				if err != nil {
					return fmt.Errorf("rendering SVG: %w", err)
				}
			default:
				return fmt.Errorf("unsupported output extension %s (expected .dot or .svg)", filepath.Ext(output))
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			printSuccess("Rendered %s", path)
			printFile(output)
			printStats(g.NodeCount(), g.RelationshipCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: gdl or json (default: by extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .svg)")

	return cmd
}
