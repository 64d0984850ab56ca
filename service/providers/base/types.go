// Package base carries the report bookkeeping shared by every provider:
// check registration, status tracking, the run/fetch/savings phases and the
// completed/failed partition. Concrete providers embed Provider and supply
// their checks plus auth/setup logic.
package base

import (
	"context"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

// Check is one leaf analysis unit owned by a provider. Checks hold no
// orchestration logic; they fill a result and optionally estimate savings.
type Check interface {
	Name() string
	CommonName() string
	ServiceName() string
	DomainName() model.Domain
	Description() string
	ReportType() string
	Disabled() bool
	// Disable turns the check off for the rest of the run.
	Disable()

	// Mandatory checks run regardless of the request, because downstream
	// cross-cutting output needs them.
	Mandatory() bool
	// Precondition checks run before the main provider loop.
	Precondition() bool

	// Run executes the check and stages data/execution ids on the result.
	Run(ctx context.Context, result *model.ReportResult) error
	// Savings returns the estimated savings, or nil if the check does not
	// estimate any.
	Savings(result *model.ReportResult) (*float64, error)
}

// Report pairs a check with its per-run result, satisfying the report
// contract consumed by the controller and output generation.
type Report struct {
	check    Check
	provider string
	result   model.ReportResult
}

var _ service.Report = (*Report)(nil)

// Provider implements the bookkeeping half of the provider contract.
type Provider struct {
	ProviderName   string
	ProviderLong   string
	RequiresRegion bool

	RC *runcontext.Context

	state    model.ProviderState
	enrolled bool

	reports    []*Report
	inProgress []*Report
	completed  []service.Report
	failed     []service.Report
}
