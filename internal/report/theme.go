package report

import "github.com/charmbracelet/lipgloss"

// Theme carries every style used by Render. Colors are plain ANSI indexes
// so the report respects the user's terminal palette.
type Theme struct {
	PanelBorder  lipgloss.TerminalColor
	Information  lipgloss.Style
	TableDivider lipgloss.Style
	TableHeader  lipgloss.Style
	ReportHeader lipgloss.Style
}

// Default is the stock theme: blue panels, bright blue data, yellow
// headers and dividers.
func Default() Theme {
	return Theme{
		PanelBorder:  lipgloss.Color("4"),
		Information:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		TableDivider: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		TableHeader:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
		ReportHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}
