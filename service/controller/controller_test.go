package controller_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type stubCheck struct {
	base.CheckInfo
	savings *float64
}

func (c *stubCheck) Run(ctx context.Context, result *model.ReportResult) error {
	result.Data = model.ResultTable{Columns: []string{"v"}, Rows: [][]string{{"1"}}}
	return nil
}

func (c *stubCheck) Savings(result *model.ReportResult) (*float64, error) {
	return c.savings, nil
}

type fakeProvider struct {
	base.Provider

	authErr  error
	setupErr error
	fetchErr error
}

func (p *fakeProvider) Auth(ctx context.Context) error { return p.authErr }

func (p *fakeProvider) Setup(ctx context.Context, runValidation bool) error { return p.setupErr }

func (p *fakeProvider) FetchData(ctx context.Context, inProgress []service.Report, kind model.ReportKind) error {
	if p.fetchErr != nil {
		return p.fetchErr
	}
	return p.Provider.FetchData(ctx, inProgress, kind)
}

type fakeLoader struct {
	providers []service.Provider
}

func (l *fakeLoader) EnabledProviders() ([]service.Provider, error) { return l.providers, nil }

func newTestContext(t *testing.T, request model.ReportRequest) *runcontext.Context {
	t.Helper()
	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = request
	return rc
}

func newFakeProvider(rc *runcontext.Context, name string, checks ...string) *fakeProvider {
	p := &fakeProvider{Provider: base.New(rc, name, "Fake "+name, false)}
	for _, check := range checks {
		savings := 10.0
		p.AddCheck(&stubCheck{
			CheckInfo: base.CheckInfo{CheckName: check},
			savings:   &savings,
		})
	}
	return p
}

func enableAll(providers ...*fakeProvider) model.ReportRequest {
	request := model.ReportRequest{}
	for _, provider := range providers {
		for _, report := range provider.Reports() {
			request[model.RequestKey(report.Name(), provider.Name())] = true
		}
	}
	return request
}

func TestRunRejectsInvalidExecutionMode(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{})
	rc.Mode = model.ExecutionMode("batch")

	_, err := controller.NewService(rc, &fakeLoader{}).Run(context.Background())
	require.ErrorIs(t, err, controller.ErrInvalidExecutionType)
}

func TestRunAggregatesAcrossProviders(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	first := newFakeProvider(rc, "p1", "a", "b")
	second := newFakeProvider(rc, "p2", "c")
	rc.Request = enableAll(first, second)

	result, err := controller.NewService(rc, &fakeLoader{providers: []service.Provider{first, second}}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Completed, 3)
	assert.Empty(t, result.Failed)
	assert.Equal(t, model.ProviderFetched, first.State())
	assert.Equal(t, model.ProviderFetched, second.State())

	// provider order is preserved in the aggregate
	assert.Equal(t, "p1", result.Completed[0].ReportProvider())
	assert.Equal(t, "p2", result.Completed[2].ReportProvider())
	assert.False(t, result.CompletionTime.IsZero())
}

func TestAuthFailureSkipsOnlyThatProvider(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	broken := newFakeProvider(rc, "broken", "a")
	broken.authErr = errors.New("no credentials")
	healthy := newFakeProvider(rc, "healthy", "b")
	rc.Request = enableAll(broken, healthy)

	result, err := controller.NewService(rc, &fakeLoader{providers: []service.Provider{broken, healthy}}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ProviderFailed, broken.State())
	assert.Equal(t, model.ProviderFetched, healthy.State())
	require.Len(t, result.Completed, 1)
	assert.Equal(t, "healthy", result.Completed[0].ReportProvider())

	alerts := rc.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertWarning, alerts[0].Level)
}

func TestSetupFailureSkipsProvider(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	broken := newFakeProvider(rc, "misconfigured", "a")
	broken.setupErr = errors.New("missing table")
	rc.Request = enableAll(broken)

	result, err := controller.NewService(rc, &fakeLoader{providers: []service.Provider{broken}}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ProviderFailed, broken.State())
	assert.Empty(t, result.Completed)
}

func TestNotEnrolledProviderIsSkippedWithoutAlert(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	skipped := newFakeProvider(rc, "optin", "a")
	skipped.SetEnrolled(false)
	rc.Request = enableAll(skipped)

	result, err := controller.NewService(rc, &fakeLoader{providers: []service.Provider{skipped}}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ProviderSkippedNotEnrolled, skipped.State())
	assert.Empty(t, result.Completed)
	assert.Empty(t, result.Failed)
	assert.Empty(t, rc.Alerts(), "a normal skip is not an alert")
}

func TestFetchFailureLeavesNoReportInProgress(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	flaky := newFakeProvider(rc, "flaky", "a", "b")
	flaky.fetchErr = errors.New("connection reset")
	rc.Request = enableAll(flaky)

	result, err := controller.NewService(rc, &fakeLoader{providers: []service.Provider{flaky}}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ProviderFailed, flaky.State())
	assert.Empty(t, result.Completed)
	require.Len(t, result.Failed, 2)
	for _, report := range result.Failed {
		assert.Equal(t, model.ReportFailed, report.Status())
	}
}

func TestRunningProviders(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, nil)
	provider := newFakeProvider(rc, "solo", "a")
	rc.Request = enableAll(provider)

	ctrl := controller.NewService(rc, &fakeLoader{providers: []service.Provider{provider}})
	_, err := ctrl.Run(context.Background())
	require.NoError(t, err)

	running := ctrl.RunningProviders()
	require.Len(t, running, 1)
	assert.Equal(t, "solo", running[0].Name())
}
