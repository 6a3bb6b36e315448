package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayerListModel - Interactive layer browser
// =============================================================================

// LayerListModel is the bubbletea model for browsing a scene's layers.
// The list shows one row per layer; the pane below shows the selection's
// resolved geometry and link dependencies.
type LayerListModel struct {
	CanvasID string
	Width    int
	Height   int
	Rows     []layerRow

	Cursor   int
	PageSize int // visible list height
	Offset   int
}

// NewLayerListModel creates a new layer browser model.
func NewLayerListModel(canvasID string, width, height int, rows []layerRow) LayerListModel {
	return LayerListModel{
		CanvasID: canvasID,
		Width:    width,
		Height:   height,
		Rows:     rows,
		PageSize: 15,
	}
}

func (m LayerListModel) Init() tea.Cmd {
	return nil
}

func (m LayerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.PageSize {
					m.Offset = m.Cursor - m.PageSize + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.PageSize = msg.Height - 10
		if m.PageSize < 5 {
			m.PageSize = 5
		}
	}
	return m, nil
}

func (m LayerListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s (%dx%d)", m.CanvasID, m.Width, m.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.PageSize
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-20s %-10s z=%d", cursor, r.ID, r.Kind, r.ZIndex)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !r.Visible:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detailView(m.Rows[m.Cursor]))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	}

	return b.String()
}

// detailView renders the selected layer's resolved geometry and links.
func (m LayerListModel) detailView(r layerRow) string {
	var b strings.Builder

	b.WriteString(listDimStyle.Render(strings.Repeat("─", 48)))
	b.WriteString("\n")
	b.WriteString("  " + StyleHighlight.Render(r.ID) + " " + listDimStyle.Render(string(r.Kind)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  resolved  %s\n", StyleValue.Render(r.Rect)))
	b.WriteString(fmt.Sprintf("  opacity   %s\n", StyleValue.Render(fmt.Sprintf("%.2f", r.Opacity))))

	visible := "yes"
	if !r.Visible {
		visible = "no"
	}
	b.WriteString(fmt.Sprintf("  visible   %s\n", StyleValue.Render(visible)))

	links := "none"
	if len(r.Deps) > 0 {
		links = strings.Join(r.Deps, ", ")
	}
	b.WriteString(fmt.Sprintf("  links     %s\n", StyleValue.Render(links)))

	return b.String()
}
