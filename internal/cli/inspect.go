package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
	"github.com/matzehuels/layercake/pkg/sceneio"
)

// inspectCommand creates the inspect command for examining scene documents.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show a scene's layers and resolved geometry",
		Long: `Inspect loads a scene document, builds the canvas, resolves every
layer's geometry to pixels, and prints the result as a table.

With --interactive, an arrow-key browser shows per-layer details instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse layers interactively")

	return cmd
}

// layerRow is one layer's inspection summary: identity, stacking, and
// resolved pixel geometry.
type layerRow struct {
	ID      string
	Kind    scene.Kind
	ZIndex  int
	Visible bool
	Rect    string
	Opacity float64
	Deps    []string
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, interactive bool) error {
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
	logger.Debugf("Built canvas %s (%dx%d)", cv.ID(), cv.Width(), cv.Height())

	resolved, err := resolve.Resolve(cv.Layers().Roots(), float64(cv.Width()), float64(cv.Height()))
	if err != nil {
		return err
	}

	rows := collectRows(cv.Layers().Roots(), resolved)

	if interactive {
		model := NewLayerListModel(cv.ID(), cv.Width(), cv.Height(), rows)
		_, err := tea.NewProgram(model).Run()
		return err
	}

	printInfo("%s (%dx%d, %d layers)", cv.ID(), cv.Width(), cv.Height(), len(rows))
	fmt.Println(layerTable(rows))
	return nil
}

// collectRows flattens the layer tree into inspection rows, parents
// before children.
func collectRows(layers []scene.Layer, resolved *resolve.Result) []layerRow {
	var rows []layerRow
	for _, l := range layers {
		row := layerRow{
			ID:      l.ID(),
			Kind:    l.Kind(),
			ZIndex:  l.ZIndex(),
			Visible: l.Visible(),
			Rect:    "—",
			Opacity: l.Opacity(),
			Deps:    resolve.Dependencies(l),
		}
		if r, ok := resolved.Get(l.ID()); ok {
			rect := r.Rect()
			row.Rect = fmt.Sprintf("(%.0f, %.0f) %.0fx%.0f", rect.X, rect.Y, rect.W, rect.H)
		}
		rows = append(rows, row)

		if cont, ok := l.(scene.Container); ok {
			rows = append(rows, collectRows(cont.Children(), resolved)...)
		}
	}
	return rows
}

// layerTable renders inspection rows as a bordered table.
func layerTable(rows []layerRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		visible := "yes"
		if !r.Visible {
			visible = "no"
		}
		deps := "—"
		if len(r.Deps) > 0 {
			deps = strings.Join(r.Deps, ", ")
		}
		data = append(data, []string{
			r.ID,
			string(r.Kind),
			fmt.Sprintf("%d", r.ZIndex),
			visible,
			r.Rect,
			deps,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Kind", "Z", "Visible", "Resolved", "Links").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
