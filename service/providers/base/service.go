package base

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

// New builds the embedded provider core.
func New(rc *runcontext.Context, name, longName string, requiresRegion bool) Provider {
	return Provider{
		ProviderName:   name,
		ProviderLong:   longName,
		RequiresRegion: requiresRegion,
		RC:             rc,
		state:          model.ProviderDiscovered,
		enrolled:       true, // providers without an eligibility gate are always enrolled
	}
}

func (p *Provider) Name() string                     { return p.ProviderName }
func (p *Provider) LongName() string                 { return p.ProviderLong }
func (p *Provider) RequiresUserProvidedRegion() bool { return p.RequiresRegion }

func (p *Provider) State() model.ProviderState         { return p.state }
func (p *Provider) SetState(state model.ProviderState) { p.state = state }

func (p *Provider) Enrolled() bool             { return p.enrolled }
func (p *Provider) SetEnrolled(enrolled bool)  { p.enrolled = enrolled }

// AddCheck registers a check with the provider. Reports are created once
// per run and owned by exactly this provider.
func (p *Provider) AddCheck(check Check) *Report {
	report := &Report{check: check, provider: p.ProviderName}
	p.reports = append(p.reports, report)
	return report
}

// Reports returns every report owned by the provider.
func (p *Provider) Reports() []service.Report {
	out := make([]service.Report, len(p.reports))
	for i, r := range p.reports {
		out[i] = r
	}
	return out
}

// enabledReports returns the reports the current request asks for, plus
// mandatory ones, excluding disabled checks.
func (p *Provider) enabledReports(mandatoryOnly bool) []*Report {
	var out []*Report
	for _, report := range p.reports {
		if report.check.Disabled() {
			continue
		}
		if mandatoryOnly {
			if report.check.Mandatory() {
				out = append(out, report)
			}
			continue
		}
		if report.check.Mandatory() || p.RC.Request.Enabled(report.check.Name(), p.ProviderName) {
			out = append(out, report)
		}
	}
	return out
}

// MandatoryReports executes the fixed subset of reports required for
// downstream output regardless of what the user requested.
func (p *Provider) MandatoryReports(ctx context.Context, kind model.ReportKind) error {
	return p.runReports(ctx, p.enabledReports(true))
}

// Run executes the full enabled report set and returns the in-flight
// handle. Under sync execution the handle is already resolved when Run
// returns; the signature still allows deferred resolution later.
func (p *Provider) Run(ctx context.Context, kind model.ReportKind, mode model.ExecutionMode) ([]service.Report, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid execution mode %q for provider %s", mode, p.ProviderName)
	}

	if err := p.runReports(ctx, p.enabledReports(false)); err != nil {
		return nil, err
	}

	handles := make([]service.Report, len(p.inProgress))
	for i, r := range p.inProgress {
		handles[i] = r
	}
	return handles, nil
}

// RunPrecondition executes only the precondition reports of this provider.
func (p *Provider) RunPrecondition(ctx context.Context) error {
	var preconditions []*Report
	for _, report := range p.reports {
		if report.check.Precondition() && !report.check.Disabled() {
			preconditions = append(preconditions, report)
		}
	}
	return p.runReports(ctx, preconditions)
}

// runReports drives each report Pending -> InProgress and executes its
// check. A check error fails only that report; siblings keep running.
func (p *Provider) runReports(ctx context.Context, reports []*Report) error {
	for _, report := range reports {
		if report.result.Status != model.ReportPending {
			continue // already run as a mandatory or precondition report
		}
		report.result.Status = model.ReportInProgress
		p.inProgress = append(p.inProgress, report)

		name := report.check.Name()
		p.RC.Logger.Info("running report", "provider", p.ProviderName, "report", name)

		if err := report.check.Run(ctx, &report.result); err != nil {
			p.RC.Logger.Error("report execution failed", "provider", p.ProviderName, "report", name, "error", err)
			report.result.Fail(err, fmt.Sprintf("provider=%s report=%s phase=run", p.ProviderName, name))
			p.RC.AddAlert(model.AlertError, p.ProviderName, name, err.Error())
		}
	}
	return nil
}

// FetchData finalizes every in-progress report of this provider: reports
// that executed move to Completed, already-failed ones stay Failed.
func (p *Provider) FetchData(ctx context.Context, inProgress []service.Report, kind model.ReportKind) error {
	for _, handle := range inProgress {
		report, ok := handle.(*Report)
		if !ok || report.provider != p.ProviderName {
			continue
		}
		if report.result.Status != model.ReportInProgress {
			continue
		}
		if err := report.result.Advance(model.ReportCompleted); err != nil {
			return fmt.Errorf("finalizing report %s: %w", report.check.Name(), err)
		}
	}
	return nil
}

// CalculateSavings computes the savings estimate for every completed
// report. A failing estimate marks only that report Failed.
func (p *Provider) CalculateSavings(ctx context.Context) error {
	for _, report := range p.inProgress {
		if report.result.Status != model.ReportCompleted {
			continue
		}
		savings, err := report.check.Savings(&report.result)
		if err != nil {
			p.RC.Logger.Error("savings calculation failed", "provider", p.ProviderName, "report", report.check.Name(), "error", err)
			report.result.Fail(err, fmt.Sprintf("provider=%s report=%s phase=savings", p.ProviderName, report.check.Name()))
			p.RC.AddAlert(model.AlertError, p.ProviderName, report.check.Name(), err.Error())
			continue
		}
		report.result.Savings = savings
	}
	return nil
}

// CompletedReports partitions this provider's executed reports by final
// status. Partitioning is idempotent: recomputing yields the same split.
func (p *Provider) CompletedReports() (completed, failed []service.Report) {
	p.completed = p.completed[:0]
	p.failed = p.failed[:0]
	for _, report := range p.inProgress {
		switch report.result.Status {
		case model.ReportCompleted:
			p.completed = append(p.completed, report)
		case model.ReportFailed:
			p.failed = append(p.failed, report)
		}
	}
	return p.completed, p.failed
}

// TotalSavings sums savings over completed reports; reports without an
// estimate contribute zero.
func (p *Provider) TotalSavings() float64 {
	total := 0.0
	for _, report := range p.inProgress {
		if report.result.Status == model.ReportCompleted {
			total += report.result.SavingsOrZero()
		}
	}
	return total
}
