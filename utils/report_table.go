package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawRunSummaryTable displays one row per executed report with its final
// status and savings estimate.
func DrawRunSummaryTable(completed, failed []service.Report) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💰 COST ADVISOR RUN SUMMARY"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Provider", "Report", "Domain", "Status", "Est. Savings"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})

	var total float64
	for _, report := range completed {
		savings := report.EstimatedSavings(true)
		total += savings
		tw.AppendRow(table.Row{
			text.FgHiCyan.Sprint(strings.ToUpper(report.ReportProvider())),
			report.CommonName(),
			string(report.DomainName()),
			text.FgHiGreen.Sprint(report.Status().String()),
			formatSavings(savings),
		})
	}
	for _, report := range failed {
		tw.AppendRow(table.Row{
			text.FgHiCyan.Sprint(strings.ToUpper(report.ReportProvider())),
			report.CommonName(),
			string(report.DomainName()),
			text.FgHiRed.Sprint(report.Status().String()),
			"-",
		})
	}

	if len(completed)+len(failed) > 1 {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{text.FgHiWhite.Sprint("TOTAL"), "", "", "", formatSavings(total)})
	}

	tw.Render()
}

// DrawReportTable displays one completed report's result payload.
func DrawReportTable(report service.Report) {
	data := report.Report()
	if data.RowCount() == 0 {
		return
	}

	fmt.Printf("\n %s\n", text.FgHiCyan.Sprintf("📊 %s (%s)", report.CommonName(), report.ReportProvider()))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)

	header := make(table.Row, len(data.Columns))
	for i, column := range data.Columns {
		header[i] = column
	}
	tw.AppendHeader(header)

	for _, row := range data.Rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		tw.AppendRow(tableRow)
	}

	tw.SetStyle(table.StyleRounded)
	tw.Render()
}

// DrawAlerts prints the accumulated run alerts.
func DrawAlerts(alerts []model.Alert) {
	for _, alert := range alerts {
		label := text.FgHiYellow.Sprint("⚠")
		if alert.Level == model.AlertError {
			label = text.FgHiRed.Sprint("✗")
		}
		fmt.Printf(" %s %s: %s\n", label, strings.ToUpper(alert.Provider), alert.Message)
	}
}

func formatSavings(savings float64) string {
	if savings <= 0 {
		return text.FgGreen.Sprint("0.00 USD")
	}
	return text.FgHiGreen.Sprintf("%.2f USD", savings)
}
