package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	svc "github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/configstore"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
	"github.com/elC0mpa/cost-advisor/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

func NewService(rc *runcontext.Context, store configstore.ConfigStore) *service {
	return &service{rc: rc, store: store}
}

// Render produces the full run output: terminal summary, per-report
// tables, the savings chart, CSV and JSON exports, and the persisted run
// record. The run itself already finished; render errors no longer affect
// report statuses.
func (s *service) Render(ctx context.Context, result *controller.RunResult) error {
	utils.DrawRunSummaryTable(result.Completed, result.Failed)

	for _, report := range result.Completed {
		utils.DrawReportTable(report)
	}

	if !s.rc.Flags.NoChart {
		utils.DrawSavingsChart(providerSavings(result.Completed))
	}

	utils.DrawAlerts(s.rc.Alerts())

	if err := s.export(result); err != nil {
		return err
	}
	return s.recordRun(ctx, result)
}

// providerSavings folds completed reports into one bar per provider.
func providerSavings(completed []svc.Report) []utils.ProviderSavings {
	totals := map[string]float64{}
	var order []string
	for _, report := range completed {
		provider := report.ReportProvider()
		if _, seen := totals[provider]; !seen {
			order = append(order, provider)
		}
		totals[provider] += report.EstimatedSavings(true)
	}

	var out []utils.ProviderSavings
	for _, provider := range order {
		if totals[provider] > 0 {
			out = append(out, utils.ProviderSavings{Provider: provider, Savings: totals[provider]})
		}
	}
	return out
}

// export writes one CSV per completed report plus the run metadata JSON.
func (s *service) export(result *controller.RunResult) error {
	dir := s.rc.Flags.OutputDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, report := range result.Completed {
		if err := s.exportCSV(dir, report); err != nil {
			return err
		}
	}
	return s.exportMetadata(dir, result)
}

func (s *service) exportCSV(dir string, report svc.Report) error {
	data := report.Report()
	if data.RowCount() == 0 {
		return nil
	}

	tw := table.NewWriter()
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

	name := fmt.Sprintf("%s_%s.csv", report.ReportProvider(), report.Name())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(tw.RenderCSV()+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing report export %s: %w", name, err)
	}
	s.rc.Logger.Info("exported report", "path", path, "rows", data.RowCount())
	return nil
}

func (s *service) exportMetadata(dir string, result *controller.RunResult) error {
	meta := runMetadata{
		StartedAt:     result.StartTime.Format(time.RFC3339),
		CompletedAt:   result.CompletionTime.Format(time.RFC3339),
		Mode:          string(s.rc.Mode),
		SchemaVariant: string(s.rc.Facts().SchemaVariant),
	}

	for _, report := range result.Completed {
		meta.TotalSavings += report.EstimatedSavings(true)
		meta.Reports = append(meta.Reports, summarize(report))
	}
	for _, report := range result.Failed {
		meta.Reports = append(meta.Reports, summarize(report))
	}

	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run metadata: %w", err)
	}

	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing run metadata: %w", err)
	}
	return nil
}

func summarize(report svc.Report) reportSummary {
	result := report.Result()
	summary := reportSummary{
		Provider:     report.ReportProvider(),
		Report:       report.Name(),
		Status:       report.Status().String(),
		Rows:         result.Data.RowCount(),
		Savings:      result.SavingsOrZero(),
		ExecutionIDs: result.ExecutionIDs,
	}
	if result.Failure != nil {
		summary.Failure = result.Failure.Message
	}
	return summary
}

func (s *service) recordRun(ctx context.Context, result *controller.RunResult) error {
	if s.store == nil {
		return nil
	}

	total := 0.0
	for _, report := range result.Completed {
		total += report.EstimatedSavings(true)
	}

	record := configstore.RunRecord{
		StartedAt:     result.StartTime,
		CompletedAt:   result.CompletionTime,
		Mode:          string(s.rc.Mode),
		Completed:     len(result.Completed),
		Failed:        len(result.Failed),
		TotalSavings:  total,
		SchemaVariant: string(s.rc.Facts().SchemaVariant),
	}
	if _, err := s.store.RecordRun(ctx, record); err != nil {
		return fmt.Errorf("persisting run record: %w", err)
	}
	return nil
}
