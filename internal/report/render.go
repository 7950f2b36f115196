package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Render draws the report with the default theme.
func Render(r *Report) string { return Default().Render(r) }

// Render lays the report out as two regions: a thick-bordered panel with
// the location, local time, condition art and today's numbers, then two
// half-width panels carrying the next two days. The result is a plain
// string; printing it is the caller's business.
func (th Theme) Render(r *Report) string {
	cell := lipgloss.NewStyle().Padding(1, 2)

	blocks := []string{cell.Render(th.artBlock(r)), cell.Render(th.table(r.Current))}
	if len(r.Forecast) > 0 {
		blocks = append(blocks, cell.Render(th.table(r.Forecast[0])))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Center, blocks...)

	width := lipgloss.Width(body)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	rule := lipgloss.NewStyle().Foreground(th.PanelBorder).Render(strings.Repeat("─", width))

	panel := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(th.PanelBorder)

	upper := panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		center.Render(th.ReportHeader.Render(r.Header())),
		center.Render(th.ReportHeader.Render(r.LocaltimeHeader())),
		rule,
		body,
	))

	total := lipgloss.Width(upper)

	switch {
	case len(r.Forecast) >= 3:
		// Halves share the upper panel's width; borders cost two columns each.
		leftTotal := total / 2
		left := panel.Width(leftTotal - 2).Align(lipgloss.Center).Render(th.table(r.Forecast[1]))
		right := panel.Width(total - leftTotal - 2).Align(lipgloss.Center).Render(th.table(r.Forecast[2]))
		lower := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
		return lipgloss.JoinVertical(lipgloss.Left, upper, lower) + "\n"
	case len(r.Forecast) == 2:
		lower := panel.Width(total - 2).Align(lipgloss.Center).Render(th.table(r.Forecast[1]))
		return lipgloss.JoinVertical(lipgloss.Left, upper, lower) + "\n"
	default:
		return upper + "\n"
	}
}

func (th Theme) artBlock(r *Report) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		Art(r.Condition, r.IsDay),
		"",
		th.Information.Render(r.Condition),
	)
}

// table renders a titled two-column table: no outer edges, a single
// divider between labels and values.
func (th Theme) table(t Table) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(true).
		BorderStyle(th.TableDivider).
		StyleFunc(func(int, int) lipgloss.Style { return th.Information.Padding(0, 1) })

	for _, row := range t.Rows {
		tbl.Row(row.Label, row.Value)
	}

	body := tbl.Render()
	title := th.TableHeader.
		Width(lipgloss.Width(body)).
		Align(lipgloss.Center).
		Render(t.Title)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}
