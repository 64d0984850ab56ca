package base

import "github.com/elC0mpa/cost-advisor/model"

func (r *Report) Name() string             { return r.check.Name() }
func (r *Report) CommonName() string       { return r.check.CommonName() }
func (r *Report) ServiceName() string      { return r.check.ServiceName() }
func (r *Report) DomainName() model.Domain { return r.check.DomainName() }
func (r *Report) Description() string      { return r.check.Description() }
func (r *Report) ReportProvider() string   { return r.provider }
func (r *Report) ReportType() string       { return r.check.ReportType() }
func (r *Report) Disabled() bool           { return r.check.Disabled() }
func (r *Report) Disable()                 { r.check.Disable() }

func (r *Report) Status() model.ReportStatus { return r.result.Status }
func (r *Report) Report() *model.ResultTable { return &r.result.Data }
func (r *Report) Result() *model.ReportResult {
	return &r.result
}

// EstimatedSavings returns the numeric estimate. With sum true a missing
// estimate reads as zero so run-wide totals stay well defined.
func (r *Report) EstimatedSavings(sum bool) float64 {
	if sum {
		return r.result.SavingsOrZero()
	}
	if r.result.Savings == nil {
		return 0
	}
	return *r.result.Savings
}
