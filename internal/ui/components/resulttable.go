package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// maxCellWidth truncates long values so wide rows still fit a terminal.
const maxCellWidth = 28

// FormatCell renders one result value for display.
func FormatCell(v any) string {
	var s string
	switch v := v.(type) {
	case nil:
		s = "NULL"
	case float64:
		s = fmt.Sprintf("%g", v)
	default:
		s = fmt.Sprint(v)
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-1]) + "…"
	}
	return s
}

// ResultTable renders a tabular result. maxRows caps the rows drawn; a
// trailing line reports how many were left out.
func ResultTable(res sqlexec.Result, width, maxRows int) string {
	rows := make([][]string, 0, len(res.Rows))
	for i, r := range res.Rows {
		if maxRows > 0 && i >= maxRows {
			break
		}
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = FormatCell(v)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(res.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
	if width > 0 {
		t = t.Width(width)
	}

	out := t.Render()
	if hidden := len(res.Rows) - len(rows); hidden > 0 {
		out += "\n" + theme.Hint.Render(fmt.Sprintf("… %d more row(s)", hidden))
	}
	return out
}

// ResultView renders any query result: a table, an acknowledgement, an
// empty-result notice or an error.
func ResultView(res sqlexec.Result, width, maxRows int) string {
	switch res.Kind {
	case sqlexec.KindTabular:
		if !res.HasRows() {
			return theme.Warning.Render("Query ran fine but returned no rows.")
		}
		summary := theme.Subtitle.Render(fmt.Sprintf("%d row(s)", len(res.Rows)))
		return summary + "\n" + ResultTable(res, width, maxRows)
	case sqlexec.KindNonTabular:
		msg := res.Message
		if res.RowsAffected > 0 {
			msg = fmt.Sprintf("%s (%d row(s) affected)", msg, res.RowsAffected)
		}
		return theme.Correct.Render(msg)
	default:
		return theme.Incorrect.Render("Error: ") +
			lipgloss.NewStyle().Foreground(theme.Text).Width(max(width, 20)).Render(res.ErrorText)
	}
}
