package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/wsp/internal/launcher"
	"github.com/dshills/wsp/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("241"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderTable lays out one row per directory. A workspace without
// directories still gets a row so it stays visible.
func renderTable(list []*types.Workspace) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WORKSPACE", "DIRECTORY", "INIT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	for _, ws := range list {
		if ws.IsEmpty() {
			t.Row(ws.Name, "-", "")
			continue
		}
		for i, d := range ws.Dirs {
			name := ""
			if i == 0 {
				name = ws.Name
			}
			t.Row(name, d.Path, d.Init)
		}
	}
	return t.String()
}

// renderReport describes the outcome of opening a workspace
func renderReport(report *launcher.Report) []string {
	lines := make([]string, 0, len(report.Results)+1)
	for _, r := range report.Results {
		if r.Err != nil {
			lines = append(lines, failStyle.Render("✗ ")+r.Dir.Path+": "+r.Err.Error())
			continue
		}
		lines = append(lines, "✓ "+r.Dir.Path)
	}
	return lines
}
