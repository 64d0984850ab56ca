package response

import (
	"time"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/configstore"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/registry"
)

// ConvertDescriptor converts a registry descriptor to a provider listing.
func ConvertDescriptor(desc registry.Descriptor) ProviderInfo {
	return ProviderInfo{
		Name:           desc.Name,
		LongName:       desc.LongName,
		RequiresRegion: desc.RequiresRegion,
		Reports:        append([]string(nil), desc.Reports...),
	}
}

// ConvertReport converts an executed report, including its result payload.
func ConvertReport(report service.Report) ReportOutcome {
	result := report.Result()
	outcome := ReportOutcome{
		Provider:     report.ReportProvider(),
		Report:       report.Name(),
		CommonName:   report.CommonName(),
		Domain:       string(report.DomainName()),
		Status:       report.Status().String(),
		Savings:      result.SavingsOrZero(),
		Columns:      result.Data.Columns,
		Rows:         result.Data.Rows,
		ExecutionIDs: result.ExecutionIDs,
	}
	if result.Failure != nil {
		outcome.Failure = result.Failure.Message
	}
	return outcome
}

// ConvertRun converts a run result plus its alerts to the tool response.
func ConvertRun(result *controller.RunResult, alerts []model.Alert) *RunSummary {
	summary := &RunSummary{}
	for _, report := range result.Completed {
		outcome := ConvertReport(report)
		summary.TotalSavings += outcome.Savings
		summary.Completed = append(summary.Completed, outcome)
	}
	for _, report := range result.Failed {
		summary.Failed = append(summary.Failed, ConvertReport(report))
	}
	for _, alert := range alerts {
		summary.Alerts = append(summary.Alerts, Alert{
			Level:    string(alert.Level),
			Provider: alert.Provider,
			Report:   alert.Report,
			Message:  alert.Message,
		})
	}
	return summary
}

// ConvertRunRecord converts a persisted run record.
func ConvertRunRecord(record configstore.RunRecord) RunRecord {
	return RunRecord{
		ID:            record.ID,
		StartedAt:     record.StartedAt.Format(time.RFC3339),
		CompletedAt:   record.CompletedAt.Format(time.RFC3339),
		Mode:          record.Mode,
		Completed:     record.Completed,
		Failed:        record.Failed,
		TotalSavings:  record.TotalSavings,
		SchemaVariant: record.SchemaVariant,
	}
}
