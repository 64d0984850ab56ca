package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	// reportsDir is the directory-per-provider convention root: every
	// provider package owns a `<name>_reports` subdirectory holding its
	// check definitions.
	reportsDir = "reports"
	dirSuffix  = "_reports"
	// srcFallback is checked when the tool runs from a source checkout.
	srcFallback = "src/cost-advisor"
)

var registrations = map[string]Descriptor{}

// Register adds a provider to the registration table. Called from provider
// package init; duplicate names are a programming error.
func Register(desc Descriptor) {
	if desc.Name == "" || desc.New == nil {
		panic("registry: descriptor needs a name and a constructor")
	}
	if _, exists := registrations[desc.Name]; exists {
		panic(fmt.Sprintf("registry: provider %q already registered", desc.Name))
	}
	registrations[desc.Name] = desc
}

// Registered returns the registered descriptors sorted by name.
func Registered() []Descriptor {
	out := make([]Descriptor, 0, len(registrations))
	for _, desc := range registrations {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the descriptor for a provider id.
func Lookup(name string) (Descriptor, bool) {
	desc, ok := registrations[name]
	return desc, ok
}

type catalogService struct{}

// NewCatalog exposes the registration table as a report catalog for the
// request parser.
func NewCatalog() catalogService { return catalogService{} }

// ReportNames returns provider -> report names for every registration.
func (catalogService) ReportNames() map[string][]string {
	out := make(map[string][]string, len(registrations))
	for name, desc := range registrations {
		out[name] = append([]string(nil), desc.Reports...)
	}
	return out
}

// NewLoader returns a loader rooted at workdir, using the process-wide
// registration table.
func NewLoader(workdir string, rc *runcontext.Context) *loader {
	return &loader{
		workdir:   workdir,
		table:     registrations,
		instances: map[string]service.Provider{},
		rc:        rc,
	}
}

// Discover enumerates `<name>_reports` directories under the reports root,
// checking the working directory first and a src checkout second. The
// result is sorted so runs stay reproducible regardless of directory
// enumeration order.
func (l *loader) Discover() ([]string, error) {
	root, err := l.reportsRoot()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDiscovery, root)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !strings.HasSuffix(entry.Name(), dirSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), dirSuffix))
	}
	sort.Strings(ids)

	l.rc.Logger.Info("discovered report providers", "root", root, "providers", ids)
	return ids, nil
}

func (l *loader) reportsRoot() (string, error) {
	candidates := []string{
		filepath.Join(l.workdir, reportsDir),
		filepath.Join(l.workdir, srcFallback, reportsDir),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: looked under %s and %s/%s", ErrDiscovery, l.workdir, l.workdir, srcFallback)
}

// Load resolves the provider constructor for an id. Loading is lazy and
// idempotent: the same instance is returned for repeated calls in one run.
func (l *loader) Load(providerID string) (service.Provider, error) {
	if instance, ok := l.instances[providerID]; ok {
		return instance, nil
	}

	desc, ok := l.table[providerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderLoad, providerID)
	}

	instance, err := desc.New(l.rc)
	if err != nil {
		return nil, fmt.Errorf("constructing provider %s: %w", providerID, err)
	}
	instance.SetState(model.ProviderInstantiated)
	l.instances[providerID] = instance
	return instance, nil
}

// EnabledProviders filters discovered providers to those with at least one
// enabled report in the run request, preserving discovery order.
func (l *loader) EnabledProviders() ([]service.Provider, error) {
	discovered, err := l.Discover()
	if err != nil {
		return nil, err
	}

	var enabled []service.Provider
	for _, id := range discovered {
		if !l.rc.Request.ProviderEnabled(id) {
			l.rc.Logger.Info("skipping report provider, no reports selected", "provider", id)
			continue
		}
		provider, err := l.Load(id)
		if err != nil {
			return nil, err
		}
		enabled = append(enabled, provider)
	}
	return enabled, nil
}
