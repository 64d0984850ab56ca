package registry

import (
	"errors"

	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

var (
	// ErrDiscovery means neither provider search root was accessible.
	ErrDiscovery = errors.New("provider reports directory not found")
	// ErrProviderLoad means a discovered provider has no registered constructor.
	ErrProviderLoad = errors.New("provider constructor not registered")
)

// Factory constructs a provider against the shared run context.
type Factory func(rc *runcontext.Context) (service.Provider, error)

// Descriptor is one entry of the provider registration table. Provider
// packages register themselves at init time; there is no reflection-based
// class lookup.
type Descriptor struct {
	Name           string
	LongName       string
	RequiresRegion bool
	// Reports lists the check names the provider ships, for request
	// expansion and the interactive catalog.
	Reports []string
	New     Factory
}

type loader struct {
	workdir   string
	table     map[string]Descriptor
	instances map[string]service.Provider
	rc        *runcontext.Context
}

// Loader discovers installed providers and lazily loads the subset the
// current request enables.
type Loader interface {
	Discover() ([]string, error)
	Load(providerID string) (service.Provider, error)
	EnabledProviders() ([]service.Provider, error)
}
