package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercake/pkg/render/linkgraph"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/sceneio"
)

// linksOpts holds the command-line flags for the links command.
type linksOpts struct {
	format   string // output format: svg, png, pdf, or dot
	output   string // output file path
	detailed bool   // include kind and z-index in node labels
}

// linksCommand creates the links command for visualizing link dependencies.
func (c *CLI) linksCommand() *cobra.Command {
	opts := linksOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "links [file]",
		Short: "Render a scene's link dependency graph",
		Long: `Links draws the geometry link graph of a scene: every layer is a node,
solid arrows point at the layer a geometry component reads from, and dashed
arrows mark group membership.

A scene whose links form a cycle cannot be resolved; the command reports
the cycle path instead of producing a diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLinks(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, pdf, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include kind and z-index in node labels")

	return cmd
}

func (c *CLI) runLinks(cmd *cobra.Command, input string, opts *linksOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := sceneio.ReadFile(input)
	if err != nil {
		return err
	}
	cv, err := sceneio.Build(doc)
	if err != nil {
		return err
	}

	// Resolve up front so cyclic and dangling links surface as
	// diagnostics alongside the diagram.
	roots := cv.Layers().Roots()
	if _, err := resolve.Resolve(roots, float64(cv.Width()), float64(cv.Height())); err != nil {
		var cycle *resolve.CycleError
		if errors.As(err, &cycle) {
			printWarning("Link cycle: %s", strings.Join(cycle.Path, " → "))
		} else {
			printWarning("%v", err)
		}
	}

	dot := linkgraph.ToDOT(roots, linkgraph.Options{Detailed: opts.detailed})
	logger.Debugf("Generated DOT: %d bytes", len(dot))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering link graph as %s...", opts.format))
	spinner.Start()
	data, err := renderLinkGraph(dot, opts.format)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "_links." + opts.format
	}
	spinner.SetMessage(fmt.Sprintf("Writing %s...", path))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		spinner.StopWithError("Writing failed")
		return err
	}
	spinner.Stop()

	printSuccess("Generated link graph")
	printFile(path)
	return nil
}

// renderLinkGraph converts DOT source into the requested output format.
func renderLinkGraph(dot, format string) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return linkgraph.RenderSVG(dot)
	case "pdf":
		return linkgraph.RenderPDF(dot)
	case "png":
		return linkgraph.RenderPNG(dot, 2.0)
	default:
		return nil, fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', or 'dot')", format)
	}
}
