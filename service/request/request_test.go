package request_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/request"
)

type fakeFetcher struct {
	document string
	err      error
	fetched  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string) (string, error) {
	f.fetched = append(f.fetched, name)
	return f.document, f.err
}

type fakeCatalog struct {
	names map[string][]string
}

func (c fakeCatalog) ReportNames() map[string][]string { return c.names }

var testCatalog = fakeCatalog{names: map[string][]string{
	"cur": {"graviton_savings", "idle_nat_gateways"},
	"ce":  {"monthly_costs"},
}}

const requestDoc = `reports:
  graviton_savings.cur: true
  monthly_costs.ce: false
`

func writeRequestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveFromParameterWinsOverEverything(t *testing.T) {
	t.Parallel()

	workdir := t.TempDir()
	writeRequestFile(t, workdir, request.DefaultRequestFile, `reports: {ignored.ce: true}`)
	explicit := writeRequestFile(t, workdir, "explicit.yaml", `reports: {ignored.cur: true}`)

	fetcher := &fakeFetcher{document: requestDoc}
	parser := request.NewService(workdir, fetcher, testCatalog)

	resolved, err := parser.Resolve(context.Background(), model.Flags{
		SSMParameter: "/cost-advisor/request",
		RequestFile:  explicit,
		Checks:       []string{"monthly_costs"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/cost-advisor/request"}, fetcher.fetched)
	assert.True(t, resolved.Enabled("graviton_savings", "cur"))
	assert.False(t, resolved.Enabled("monthly_costs", "ce"))
	assert.False(t, resolved.Enabled("ignored", "cur"))
}

func TestResolveFromExplicitFile(t *testing.T) {
	t.Parallel()

	workdir := t.TempDir()
	explicit := writeRequestFile(t, workdir, "explicit.yaml", requestDoc)

	parser := request.NewService(workdir, nil, testCatalog)
	resolved, err := parser.Resolve(context.Background(), model.Flags{RequestFile: explicit})
	require.NoError(t, err)
	assert.True(t, resolved.Enabled("graviton_savings", "cur"))
}

func TestResolveFromChecksList(t *testing.T) {
	t.Parallel()

	parser := request.NewService(t.TempDir(), nil, testCatalog)
	resolved, err := parser.Resolve(context.Background(), model.Flags{
		Checks: []string{"graviton_savings", " monthly_costs "},
	})
	require.NoError(t, err)
	assert.True(t, resolved.Enabled("graviton_savings", "cur"))
	assert.True(t, resolved.Enabled("monthly_costs", "ce"))
	assert.Equal(t, 2, resolved.EnabledCount())
}

func TestResolveExpandsAll(t *testing.T) {
	t.Parallel()

	parser := request.NewService(t.TempDir(), nil, testCatalog)
	resolved, err := parser.Resolve(context.Background(), model.Flags{Checks: []string{"all"}})
	require.NoError(t, err)
	assert.Equal(t, 3, resolved.EnabledCount())
	assert.True(t, resolved.Enabled("idle_nat_gateways", "cur"))
}

func TestResolveUnknownCheck(t *testing.T) {
	t.Parallel()

	parser := request.NewService(t.TempDir(), nil, testCatalog)
	_, err := parser.Resolve(context.Background(), model.Flags{Checks: []string{"nosuch"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuch")
}

func TestResolveFallsBackToDefaultFile(t *testing.T) {
	t.Parallel()

	workdir := t.TempDir()
	writeRequestFile(t, workdir, request.DefaultRequestFile, requestDoc)

	parser := request.NewService(workdir, nil, testCatalog)
	resolved, err := parser.Resolve(context.Background(), model.Flags{})
	require.NoError(t, err)
	assert.True(t, resolved.Enabled("graviton_savings", "cur"))
}

func TestResolveWithoutAnySource(t *testing.T) {
	t.Parallel()

	parser := request.NewService(t.TempDir(), nil, testCatalog)
	_, err := parser.Resolve(context.Background(), model.Flags{})
	require.ErrorIs(t, err, request.ErrNoRequestSource)
}

func TestResolveRejectsMalformedKeys(t *testing.T) {
	t.Parallel()

	workdir := t.TempDir()
	bad := writeRequestFile(t, workdir, "bad.yaml", `reports: {nodot: true}`)

	parser := request.NewService(workdir, nil, testCatalog)
	_, err := parser.Resolve(context.Background(), model.Flags{RequestFile: bad})
	require.Error(t, err)
}

func TestResolveFetcherFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("access denied")}
	parser := request.NewService(t.TempDir(), fetcher, testCatalog)
	_, err := parser.Resolve(context.Background(), model.Flags{SSMParameter: "/x"})
	require.Error(t, err)
}
