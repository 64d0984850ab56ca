package precondition

import (
	"context"
	"fmt"
	"slices"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

func NewService(rc *runcontext.Context, loader Loader) *resolverService {
	return &resolverService{rc: rc, loader: loader}
}

// Run resolves the billing-export preconditions. An unsupported execution
// mode is rejected before any provider work starts. It is a no-op when the
// billing-export provider is not installed. A resolution failure is fatal
// only when that provider is the sole one requested; otherwise the run
// degrades to default facts and continues.
func (r *resolverService) Run(ctx context.Context) error {
	if !r.rc.Mode.Valid() {
		return fmt.Errorf("%w: %q (only %q is supported)", model.ErrInvalidExecutionType, r.rc.Mode, model.ExecutionSync)
	}

	discovered, err := r.loader.Discover()
	if err != nil {
		return err
	}
	if !slices.Contains(discovered, BillingExportName) {
		return nil
	}

	if err := r.resolve(ctx); err != nil {
		return r.applyFailurePolicy(err)
	}
	return nil
}

func (r *resolverService) resolve(ctx context.Context) error {
	provider, err := r.loader.Load(BillingExportName)
	if err != nil {
		return err
	}

	billing, ok := provider.(BillingExportProvider)
	if !ok {
		return fmt.Errorf("provider %s does not expose schema inspection", BillingExportName)
	}

	r.rc.Logger.Info("running billing export precondition reports")

	if err := billing.Setup(ctx, false); err != nil {
		return fmt.Errorf("billing export setup: %w", err)
	}

	columns, err := billing.ShowColumns(ctx)
	if err != nil {
		return fmt.Errorf("unable to determine billing export schema: %w", err)
	}

	facts := model.DerivedFacts{
		SchemaVariant:    model.ClassifySchema(columns),
		ResourceIDExists: slices.Contains(columns, model.ResourceIDColumn),
	}
	r.rc.SetDerivedFacts(facts)
	r.rc.Logger.Info("billing export schema classified",
		"variant", facts.SchemaVariant, "resource_id_column", facts.ResourceIDExists)

	if err := billing.RunPrecondition(ctx); err != nil {
		return fmt.Errorf("precondition report: %w", err)
	}
	return nil
}

// applyFailurePolicy decides fatal-vs-degrade after a resolution failure.
func (r *resolverService) applyFailurePolicy(cause error) error {
	if r.rc.Request.SoleProvider() == BillingExportName {
		return fmt.Errorf("%w: %v (verify the billing export configuration)", ErrPreconditionFatal, cause)
	}

	r.rc.Logger.Warn("skipping billing export precondition, continuing with other providers", "error", cause)
	r.rc.AddAlert(model.AlertWarning, BillingExportName, "",
		fmt.Sprintf("precondition resolution failed, derived facts unavailable: %v", cause))
	r.rc.SetDerivedFacts(model.DefaultFacts())
	return nil
}
