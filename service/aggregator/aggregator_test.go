package aggregator_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/aggregator"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type stubCheck struct {
	base.CheckInfo
	fail bool
}

func (c *stubCheck) Run(ctx context.Context, result *model.ReportResult) error {
	if c.fail {
		return assert.AnError
	}
	return nil
}

func (c *stubCheck) Savings(result *model.ReportResult) (*float64, error) { return nil, nil }

type testProvider struct {
	base.Provider
}

func (p *testProvider) Auth(ctx context.Context) error                      { return nil }
func (p *testProvider) Setup(ctx context.Context, runValidation bool) error { return nil }

func runProvider(t *testing.T, rc *runcontext.Context, name string, checks map[string]bool) service.Provider {
	t.Helper()

	p := &testProvider{Provider: base.New(rc, name, name, false)}
	for check, fail := range checks {
		p.AddCheck(&stubCheck{CheckInfo: base.CheckInfo{CheckName: check}, fail: fail})
		rc.Request[model.RequestKey(check, name)] = true
	}

	ctx := context.Background()
	handles, err := p.Run(ctx, model.ReportKindBase, model.ExecutionSync)
	require.NoError(t, err)
	require.NoError(t, p.FetchData(ctx, handles, model.ReportKindBase))
	return p
}

func TestCollectMergesWithoutDuplicationOrOmission(t *testing.T) {
	t.Parallel()

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = model.ReportRequest{}

	first := runProvider(t, rc, "p1", map[string]bool{"ok1": false, "bad1": true})
	second := runProvider(t, rc, "p2", map[string]bool{"ok2": false})

	agg := aggregator.NewService()
	completed, failed := agg.Collect([]service.Provider{first, second})

	assert.Len(t, completed, 2)
	assert.Len(t, failed, 1)
	assert.Equal(t, "bad1", failed[0].Name())

	names := map[string]int{}
	for _, report := range append(append([]service.Report{}, completed...), failed...) {
		names[report.Name()]++
	}
	for name, count := range names {
		assert.Equal(t, 1, count, "report %s collected more than once", name)
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	t.Parallel()

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = model.ReportRequest{}

	provider := runProvider(t, rc, "p1", map[string]bool{"ok": false})

	agg := aggregator.NewService()
	firstCompleted, _ := agg.Collect([]service.Provider{provider})
	secondCompleted, _ := agg.Collect([]service.Provider{provider})

	assert.Equal(t, len(firstCompleted), len(secondCompleted))
	assert.Len(t, agg.CompletedReports(), len(firstCompleted), "accessors reflect the latest collection")
}

func TestCollectPreservesProviderOrder(t *testing.T) {
	t.Parallel()

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.Request = model.ReportRequest{}

	first := runProvider(t, rc, "alpha", map[string]bool{"a": false})
	second := runProvider(t, rc, "beta", map[string]bool{"b": false})

	completed, _ := aggregator.NewService().Collect([]service.Provider{first, second})
	require.Len(t, completed, 2)
	assert.Equal(t, "alpha", completed[0].ReportProvider())
	assert.Equal(t, "beta", completed[1].ReportProvider())
}
