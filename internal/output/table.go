package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zendframework/maintainers/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders rows below headers inside a normal border.
func Table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Table writes a bordered table.
func (p *Printer) Table(headers []string, rows [][]string) {
	fmt.Fprintln(p.out, Table(headers, rows))
}

// ReportHeaders are the columns of ReportRows.
var ReportHeaders = []string{"Component", "Status", "Detected", "Released", "Base", "Error"}

// ReportRows returns one row per component of a run report.
func ReportRows(report *domain.RunReport) [][]string {
	rows := make([][]string, 0, len(report.Components))
	for _, c := range report.Components {
		message := c.Error
		if message == "" && len(c.Warnings) > 0 {
			message = "warning: " + c.Warnings[0]
		}
		rows = append(rows, []string{
			c.Component,
			string(c.Status),
			c.DetectedVersion,
			c.NewVersion,
			c.BaseRef,
			message,
		})
	}
	return rows
}
