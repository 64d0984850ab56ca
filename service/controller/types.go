package controller

import (
	"context"
	"sync"
	"time"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/aggregator"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

// ErrInvalidExecutionType aborts the run before any provider lifecycle
// step executes.
var ErrInvalidExecutionType = model.ErrInvalidExecutionType

// step identifies one provider lifecycle or phase step for the error
// policy table.
type step int

const (
	stepAuth step = iota
	stepSetup
	stepMandatory
	stepRun
	stepFetch
	stepSavings
)

func (s step) String() string {
	switch s {
	case stepAuth:
		return "auth"
	case stepSetup:
		return "setup"
	case stepMandatory:
		return "mandatory-reports"
	case stepRun:
		return "run"
	case stepFetch:
		return "fetch"
	case stepSavings:
		return "calculate-savings"
	}
	return "unknown"
}

// action is what the controller does when a step fails.
type action int

const (
	actionSkipProvider action = iota
	actionAbortRun
)

// policy maps a failed step to the controller's reaction. Every provider
// step is recoverable at provider scope: the failing provider is skipped
// and the run continues. Abort is reserved for failures that would leave
// the whole run meaningless (none today; the mode gate and discovery
// errors abort before the loop starts).
var policy = map[step]action{
	stepAuth:      actionSkipProvider,
	stepSetup:     actionSkipProvider,
	stepMandatory: actionSkipProvider,
	stepRun:       actionSkipProvider,
	stepFetch:     actionSkipProvider,
	stepSavings:   actionSkipProvider,
}

// RunResult is the run-wide outcome handed to output generation: the two
// report partitions and the completion timestamp, nothing else.
type RunResult struct {
	Completed      []service.Report
	Failed         []service.Report
	StartTime      time.Time
	CompletionTime time.Time
}

type controllerService struct {
	rc         *runcontext.Context
	loader     Loader
	aggregator aggregator.Aggregator
	runner     taskRunner

	mu         sync.Mutex
	running    []service.Provider
	inProgress map[string][]service.Report
}

// Loader is the registry surface the controller depends on.
type Loader interface {
	EnabledProviders() ([]service.Provider, error)
}

// Controller drives every enabled provider through its lifecycle and the
// fetch, savings and collect phases.
type Controller interface {
	Run(ctx context.Context) (*RunResult, error)
	RunningProviders() []service.Provider
}
