package registry_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type fakeProvider struct {
	base.Provider
}

func (p *fakeProvider) Auth(ctx context.Context) error                      { return nil }
func (p *fakeProvider) Setup(ctx context.Context, runValidation bool) error { return nil }

func registerFake(t *testing.T, name string) {
	t.Helper()
	registry.Register(registry.Descriptor{
		Name:     name,
		LongName: "Fake " + name,
		Reports:  []string{"noop"},
		New: func(rc *runcontext.Context) (service.Provider, error) {
			return &fakeProvider{Provider: base.New(rc, name, "Fake "+name, false)}, nil
		},
	})
}

func newTestContext(t *testing.T) *runcontext.Context {
	t.Helper()
	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	return rc
}

func makeReportDirs(t *testing.T, names ...string) string {
	t.Helper()
	workdir := t.TempDir()
	root := filepath.Join(workdir, "reports")
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
	}
	return workdir
}

func TestDiscoverFindsProviderDirectories(t *testing.T) {
	workdir := makeReportDirs(t, "zz1_reports", "aa1_reports", ".hidden_reports", "notaprovider")

	// stray files must be ignored too
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "reports", "stray_reports"), []byte("x"), 0o644))

	loader := registry.NewLoader(workdir, newTestContext(t))
	ids, err := loader.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"aa1", "zz1"}, ids, "sorted, suffix trimmed, non-directories skipped")
}

func TestDiscoverUsesSrcFallback(t *testing.T) {
	workdir := t.TempDir()
	fallback := filepath.Join(workdir, "src", "cost-advisor", "reports", "fb1_reports")
	require.NoError(t, os.MkdirAll(fallback, 0o755))

	loader := registry.NewLoader(workdir, newTestContext(t))
	ids, err := loader.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"fb1"}, ids)
}

func TestDiscoverFailsWithoutReportsRoot(t *testing.T) {
	loader := registry.NewLoader(t.TempDir(), newTestContext(t))
	_, err := loader.Discover()
	require.ErrorIs(t, err, registry.ErrDiscovery)
}

func TestLoadUnknownProvider(t *testing.T) {
	loader := registry.NewLoader(t.TempDir(), newTestContext(t))
	_, err := loader.Load("nosuch")
	require.ErrorIs(t, err, registry.ErrProviderLoad)
}

func TestLoadIsLazyAndIdempotent(t *testing.T) {
	registerFake(t, "lazy1")

	loader := registry.NewLoader(t.TempDir(), newTestContext(t))
	first, err := loader.Load("lazy1")
	require.NoError(t, err)
	assert.Equal(t, model.ProviderInstantiated, first.State())

	second, err := loader.Load("lazy1")
	require.NoError(t, err)
	assert.Same(t, first, second, "repeated loads must return the same instance")
}

func TestEnabledProvidersFiltersAndPreservesOrder(t *testing.T) {
	registerFake(t, "en1")
	registerFake(t, "en2")
	registerFake(t, "en3")

	workdir := makeReportDirs(t, "en1_reports", "en2_reports", "en3_reports")

	rc := newTestContext(t)
	rc.Request = model.ReportRequest{
		"noop.en3": true,
		"noop.en1": true,
		"noop.en2": false,
	}

	loader := registry.NewLoader(workdir, rc)
	enabled, err := loader.EnabledProviders()
	require.NoError(t, err)

	var names []string
	for _, provider := range enabled {
		names = append(names, provider.Name())
	}
	assert.Equal(t, []string{"en1", "en3"}, names, "discovery order, disabled providers dropped")
}

func TestCatalogListsRegisteredReports(t *testing.T) {
	registerFake(t, "cat1")

	names := registry.NewCatalog().ReportNames()
	assert.Equal(t, []string{"noop"}, names["cat1"])
}
