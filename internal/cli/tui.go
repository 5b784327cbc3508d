package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/askeland/pinplace/pkg/design"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlacementListModel - Interactive placement browser
// =============================================================================

// PlacementListModel is the bubbletea model for browsing a placement report.
// Placements scroll under the cursor; diagnostics for the highlighted pin
// appear below the table.
type PlacementListModel struct {
	Report *design.Report
	Cursor int
	Height int
	Offset int
}

// NewPlacementListModel creates a browser over the report's placements.
func NewPlacementListModel(rep *design.Report) PlacementListModel {
	return PlacementListModel{
		Report: rep,
		Height: 15,
	}
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Report.Placements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Report.Placements) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlacementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Report.Design))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G jump  q quit"))
	b.WriteString("\n\n")

	placements := m.Report.Placements
	end := m.Offset + m.Height
	if end > len(placements) {
		end = len(placements)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := placements[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			p.Name,
			p.Pos.String(),
			"m" + strconv.Itoa(p.Layer),
			strconv.Itoa(p.Slot),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pin", "Position", "Layer", "Slot").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(placements) > 0 {
		b.WriteString(m.diagnosticsFor(placements[m.Cursor].Name))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(placements))))

	return b.String()
}

// diagnosticsFor lists the diagnostics recorded against the named pin.
func (m PlacementListModel) diagnosticsFor(pin string) string {
	var lines []string
	for _, d := range m.Report.Diagnostics {
		if d.Pin != pin {
			continue
		}
		style := StyleWarning
		if d.Severity.String() == "error" {
			style = StyleError
		}
		lines = append(lines, "  "+style.Render(d.Severity.String())+" "+StyleDim.Render(d.Message))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
