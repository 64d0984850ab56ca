package base_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type stubCheck struct {
	base.CheckInfo

	runErr     error
	savings    *float64
	savingsErr error
	runs       int
}

func (c *stubCheck) Run(ctx context.Context, result *model.ReportResult) error {
	c.runs++
	if c.runErr != nil {
		return c.runErr
	}
	result.Data = model.ResultTable{Columns: []string{"value"}, Rows: [][]string{{"1"}}}
	return nil
}

func (c *stubCheck) Savings(result *model.ReportResult) (*float64, error) {
	return c.savings, c.savingsErr
}

func newTestContext(t *testing.T, request model.ReportRequest) *runcontext.Context {
	t.Helper()
	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = request
	return rc
}

func savingsOf(v float64) *float64 { return &v }

func TestRunExecutesOnlyRequestedChecks(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"wanted.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	wanted := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "wanted"}}
	ignored := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "ignored"}}
	provider.AddCheck(wanted)
	provider.AddCheck(ignored)

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	require.Len(t, handles, 1)
	assert.Equal(t, "wanted", handles[0].Name())
	assert.Equal(t, 1, wanted.runs)
	assert.Zero(t, ignored.runs)
}

func TestRunRejectsInvalidMode(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{})
	provider := base.New(rc, "test", "Test Provider", false)

	_, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionMode("batch"))
	require.Error(t, err)
}

func TestMandatoryChecksRunWithoutBeingRequested(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{})
	provider := base.New(rc, "test", "Test Provider", false)

	mandatory := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "baseline", CheckMandatory: true}}
	optional := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "optional"}}
	provider.AddCheck(mandatory)
	provider.AddCheck(optional)

	require.NoError(t, provider.MandatoryReports(context.Background(), model.ReportKindBase))
	assert.Equal(t, 1, mandatory.runs)
	assert.Zero(t, optional.runs)

	// the later full run must not execute the mandatory check twice
	_, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	assert.Equal(t, 1, mandatory.runs)
}

func TestFailedCheckDoesNotStopSiblings(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"bad.test": true, "good.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	bad := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "bad"}, runErr: errors.New("api unreachable")}
	good := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "good"}, savings: savingsOf(10)}
	provider.AddCheck(bad)
	provider.AddCheck(good)

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	require.NoError(t, provider.FetchData(context.Background(), handles, model.ReportKindBase))
	require.NoError(t, provider.CalculateSavings(context.Background()))

	completed, failed := provider.CompletedReports()
	require.Len(t, completed, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, "good", completed[0].Name())
	assert.Equal(t, "bad", failed[0].Name())
	assert.Equal(t, model.ReportFailed, failed[0].Status())

	// the failure produced an alert
	alerts := rc.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertError, alerts[0].Level)
}

func TestSavingsFailureMarksReportFailedAfterCompletion(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"broken_estimate.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	check := &stubCheck{
		CheckInfo:  base.CheckInfo{CheckName: "broken_estimate"},
		savingsErr: errors.New("pricing data missing"),
	}
	provider.AddCheck(check)

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	require.NoError(t, provider.FetchData(context.Background(), handles, model.ReportKindBase))
	require.NoError(t, provider.CalculateSavings(context.Background()))

	completed, failed := provider.CompletedReports()
	assert.Empty(t, completed)
	require.Len(t, failed, 1)
	assert.Equal(t, model.ReportFailed, failed[0].Status())
}

func TestCompletedReportsIsIdempotent(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"a.test": true, "b.test": true})
	provider := base.New(rc, "test", "Test Provider", false)
	provider.AddCheck(&stubCheck{CheckInfo: base.CheckInfo{CheckName: "a"}, savings: savingsOf(5)})
	provider.AddCheck(&stubCheck{CheckInfo: base.CheckInfo{CheckName: "b"}})

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	require.NoError(t, provider.FetchData(context.Background(), handles, model.ReportKindBase))
	require.NoError(t, provider.CalculateSavings(context.Background()))

	first, _ := provider.CompletedReports()
	second, _ := provider.CompletedReports()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name(), second[i].Name())
	}

	assert.Equal(t, 5.0, provider.TotalSavings())
}

func TestRunPreconditionExecutesOnlyPreconditionChecks(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"regular.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	pre := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "bootstrap", Precheck: true}}
	regular := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "regular"}}
	provider.AddCheck(pre)
	provider.AddCheck(regular)

	require.NoError(t, provider.RunPrecondition(context.Background()))
	assert.Equal(t, 1, pre.runs)
	assert.Zero(t, regular.runs)
}

func TestDisabledChecksNeverRun(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"off.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	off := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "off", CheckDisabled: true}}
	provider.AddCheck(off)

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	assert.Empty(t, handles)
	assert.Zero(t, off.runs)
}

func TestDisableTurnsOffAnEnabledReport(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, model.ReportRequest{"tunable.test": true})
	provider := base.New(rc, "test", "Test Provider", false)

	check := &stubCheck{CheckInfo: base.CheckInfo{CheckName: "tunable"}}
	report := provider.AddCheck(check)
	require.False(t, report.Disabled())

	report.Disable()
	assert.True(t, report.Disabled())

	handles, err := provider.Run(context.Background(), model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	assert.Empty(t, handles)
	assert.Zero(t, check.runs)
}
