package precondition

import (
	"context"
	"errors"

	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

// ErrPreconditionFatal aborts the run: precondition resolution failed and
// the billing-export provider was the only one requested.
var ErrPreconditionFatal = errors.New("billing export precondition failed")

// BillingExportName is the provider owning the precondition reports.
const BillingExportName = "cur"

// BillingExportProvider is the extra surface the precondition resolver
// needs from the billing-export provider beyond the standard contract.
type BillingExportProvider interface {
	service.Provider
	ShowColumns(ctx context.Context) ([]string, error)
	RunPrecondition(ctx context.Context) error
}

// Loader is the subset of the registry the resolver uses.
type Loader interface {
	Discover() ([]string, error)
	Load(providerID string) (service.Provider, error)
}

type resolverService struct {
	rc     *runcontext.Context
	loader Loader
}

// Resolver runs the bootstrap reports before the main provider loop and
// records the derived facts on the run context.
type Resolver interface {
	Run(ctx context.Context) error
}
