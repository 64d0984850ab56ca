package precondition_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/precondition"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type fakeBillingProvider struct {
	base.Provider

	columns         []string
	columnsErr      error
	setupErr        error
	preconditionErr error
	setupRan        bool
	preconditionRan bool
}

func (p *fakeBillingProvider) Auth(ctx context.Context) error { return nil }

func (p *fakeBillingProvider) Setup(ctx context.Context, runValidation bool) error {
	p.setupRan = true
	return p.setupErr
}

func (p *fakeBillingProvider) ShowColumns(ctx context.Context) ([]string, error) {
	return p.columns, p.columnsErr
}

func (p *fakeBillingProvider) RunPrecondition(ctx context.Context) error {
	p.preconditionRan = true
	return p.preconditionErr
}

type fakeLoader struct {
	discovered []string
	provider   service.Provider
}

func (l *fakeLoader) Discover() ([]string, error) { return l.discovered, nil }

func (l *fakeLoader) Load(providerID string) (service.Provider, error) {
	if l.provider == nil {
		return nil, errors.New("not registered")
	}
	return l.provider, nil
}

func newTestContext(t *testing.T, request model.ReportRequest) *runcontext.Context {
	t.Helper()
	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = request
	return rc
}

func TestRunRejectsInvalidExecutionModeBeforeAnyWork(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"graviton_savings.cur": true})
	rc.Mode = model.ExecutionMode("async")
	billing := &fakeBillingProvider{
		Provider: base.New(rc, "cur", "Billing Export", false),
		columns:  []string{"product"},
	}
	loader := &fakeLoader{discovered: []string{"cur"}, provider: billing}

	err := precondition.NewService(rc, loader).Run(context.Background())
	require.ErrorIs(t, err, model.ErrInvalidExecutionType)
	assert.False(t, billing.setupRan)
	assert.False(t, billing.preconditionRan)
}

func TestRunClassifiesSchemaAndRecordsFacts(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"graviton_savings.cur": true})
	billing := &fakeBillingProvider{
		Provider: base.New(rc, "cur", "Billing Export", false),
		columns:  []string{"product_instance_type_family", "line_item_resource_id"},
	}
	loader := &fakeLoader{discovered: []string{"ce", "cur"}, provider: billing}

	require.NoError(t, precondition.NewService(rc, loader).Run(context.Background()))

	facts := rc.Facts()
	assert.Equal(t, model.SchemaLegacy, facts.SchemaVariant)
	assert.True(t, facts.ResourceIDExists)
	assert.True(t, billing.preconditionRan)
}

func TestRunDetectsMissingResourceIDColumn(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"graviton_savings.cur": true, "monthly_costs.ce": true})
	billing := &fakeBillingProvider{
		Provider: base.New(rc, "cur", "Billing Export", false),
		columns:  []string{"product"},
	}
	loader := &fakeLoader{discovered: []string{"cur"}, provider: billing}

	require.NoError(t, precondition.NewService(rc, loader).Run(context.Background()))

	facts := rc.Facts()
	assert.Equal(t, model.SchemaV2, facts.SchemaVariant)
	assert.False(t, facts.ResourceIDExists)
}

func TestRunIsNoOpWhenBillingProviderNotInstalled(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"monthly_costs.ce": true})
	loader := &fakeLoader{discovered: []string{"ce", "ec2"}}

	require.NoError(t, precondition.NewService(rc, loader).Run(context.Background()))
	assert.Equal(t, model.DefaultFacts(), rc.Facts())
}

func TestRunFailureIsFatalForSoleBillingRequest(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"graviton_savings.cur": true})
	billing := &fakeBillingProvider{
		Provider:   base.New(rc, "cur", "Billing Export", false),
		columnsErr: errors.New("table not found"),
	}
	loader := &fakeLoader{discovered: []string{"cur"}, provider: billing}

	err := precondition.NewService(rc, loader).Run(context.Background())
	require.ErrorIs(t, err, precondition.ErrPreconditionFatal)
}

func TestRunFailureDegradesWhenOtherProvidersRequested(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{
		"graviton_savings.cur": true,
		"monthly_costs.ce":     true,
	})
	billing := &fakeBillingProvider{
		Provider: base.New(rc, "cur", "Billing Export", false),
		setupErr: errors.New("database not configured"),
	}
	loader := &fakeLoader{discovered: []string{"cur", "ce"}, provider: billing}

	require.NoError(t, precondition.NewService(rc, loader).Run(context.Background()))

	assert.Equal(t, model.DefaultFacts(), rc.Facts())

	alerts := rc.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertWarning, alerts[0].Level)
	assert.Equal(t, "cur", alerts[0].Provider)
}
