package service

import (
	"context"

	"github.com/elC0mpa/cost-advisor/model"
)

// Report is one named check of a provider, as seen by the controller and
// the output generation layer. Disable is the only mutation callers get;
// everything else is written by the owning provider during its lifecycle.
type Report interface {
	Name() string
	CommonName() string
	ServiceName() string
	DomainName() model.Domain
	Description() string
	ReportProvider() string
	ReportType() string
	Disabled() bool
	Disable()
	Status() model.ReportStatus
	Report() *model.ResultTable
	Result() *model.ReportResult
	EstimatedSavings(sum bool) float64
}

// Provider is a pluggable integration source owning a set of reports. The
// execution controller drives every enabled provider through this contract;
// providers never call each other.
type Provider interface {
	Name() string
	LongName() string
	RequiresUserProvidedRegion() bool

	// Lifecycle steps, in controller order.
	Auth(ctx context.Context) error
	Setup(ctx context.Context, runValidation bool) error
	Enrolled() bool
	MandatoryReports(ctx context.Context, kind model.ReportKind) error
	Run(ctx context.Context, kind model.ReportKind, mode model.ExecutionMode) ([]Report, error)

	// Post-lifecycle phases.
	FetchData(ctx context.Context, inProgress []Report, kind model.ReportKind) error
	CalculateSavings(ctx context.Context) error
	CompletedReports() (completed, failed []Report)

	Reports() []Report
	State() model.ProviderState
	SetState(state model.ProviderState)
}
