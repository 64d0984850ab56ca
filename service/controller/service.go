package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	"github.com/elC0mpa/cost-advisor/service/aggregator"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

func NewService(rc *runcontext.Context, loader Loader) *controllerService {
	return &controllerService{
		rc:         rc,
		loader:     loader,
		aggregator: aggregator.NewService(),
		runner:     taskRunner{width: 1},
		inProgress: map[string][]service.Report{},
	}
}

// Run executes the whole orchestration: mode gate, per-provider lifecycle,
// then the fetch, savings and collect phases. Individual provider failures
// never abort the run; they surface as alerts and a Failed provider state.
func (c *controllerService) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()
	if !c.rc.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q (only %q is supported)", ErrInvalidExecutionType, c.rc.Mode, model.ExecutionSync)
	}

	providers, err := c.loader.EnabledProviders()
	if err != nil {
		return nil, err
	}

	c.runner.run(providerTasks(providers, func(p service.Provider) {
		c.runLifecycle(ctx, p)
	}))

	c.fetch(ctx)
	c.calculateSavings(ctx)

	completed, failed := c.aggregator.Collect(c.RunningProviders())
	return &RunResult{
		Completed:      completed,
		Failed:         failed,
		StartTime:      started,
		CompletionTime: time.Now(),
	}, nil
}

// runLifecycle drives one provider Instantiated -> Running, applying the
// failure policy at each step.
func (c *controllerService) runLifecycle(ctx context.Context, provider service.Provider) {
	log := c.rc.Logger.With("provider", provider.Name())
	log.Info("running report provider", "long_name", provider.LongName())

	start := time.Now()
	if err := provider.Auth(ctx); err != nil {
		c.stepFailed(provider, stepAuth, err)
		return
	}
	provider.SetState(model.ProviderAuthenticated)
	log.Debug("auth finished", "elapsed", time.Since(start))

	start = time.Now()
	if err := provider.Setup(ctx, true); err != nil {
		c.stepFailed(provider, stepSetup, err)
		return
	}
	provider.SetState(model.ProviderConfiguredChecked)
	log.Debug("setup finished", "elapsed", time.Since(start))

	if !provider.Enrolled() {
		// A normal skip, not an error: the account is simply not eligible.
		log.Info("skipping report provider, not enrolled")
		provider.SetState(model.ProviderSkippedNotEnrolled)
		return
	}

	if err := provider.MandatoryReports(ctx, model.ReportKindBase); err != nil {
		c.stepFailed(provider, stepMandatory, err)
		return
	}
	provider.SetState(model.ProviderMandatoryReportsRun)

	start = time.Now()
	handles, err := provider.Run(ctx, model.ReportKindBase, c.rc.Mode)
	if err != nil {
		c.stepFailed(provider, stepRun, err)
		return
	}
	provider.SetState(model.ProviderRunning)
	log.Info("run finished", "reports", len(handles), "elapsed", time.Since(start))

	c.mu.Lock()
	c.inProgress[provider.Name()] = handles
	c.running = append(c.running, provider)
	c.mu.Unlock()
}

// providerTasks wraps one call per provider so the phases run through the
// task runner.
func providerTasks(providers []service.Provider, call func(service.Provider)) []func() {
	tasks := make([]func(), 0, len(providers))
	for _, provider := range providers {
		tasks = append(tasks, func() { call(provider) })
	}
	return tasks
}

// fetch pulls base-type results for every running provider. A provider's
// fetch failure is recorded and does not stop the others.
func (c *controllerService) fetch(ctx context.Context) {
	providers := c.RunningProviders()
	c.rc.Logger.Info("fetching data", "providers", len(providers))

	c.runner.run(providerTasks(providers, func(provider service.Provider) {
		start := time.Now()
		if err := provider.FetchData(ctx, c.handles(provider), model.ReportKindBase); err != nil {
			c.stepFailed(provider, stepFetch, err)
			c.failInFlight(provider, err)
			return
		}
		provider.SetState(model.ProviderFetched)
		c.rc.Logger.Debug("fetch finished", "provider", provider.Name(), "elapsed", time.Since(start))
	}))
}

// calculateSavings computes per-report savings for every running provider.
func (c *controllerService) calculateSavings(ctx context.Context) {
	c.runner.run(providerTasks(c.RunningProviders(), func(provider service.Provider) {
		start := time.Now()
		if err := provider.CalculateSavings(ctx); err != nil {
			c.stepFailed(provider, stepSavings, err)
			return
		}
		c.rc.Logger.Debug("savings calculated", "provider", provider.Name(), "elapsed", time.Since(start))
	}))
}

func (c *controllerService) handles(provider service.Provider) []service.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inProgress[provider.Name()]
}

// stepFailed applies the policy table to a failed step. Today every entry
// skips the provider; the table keeps the decision declarative.
func (c *controllerService) stepFailed(provider service.Provider, failed step, err error) {
	c.rc.Logger.Error("provider step failed",
		"provider", provider.Name(), "step", failed.String(), "error", err)
	c.rc.AddAlert(model.AlertWarning, provider.Name(), "",
		fmt.Sprintf("%s failed during %s: %v", provider.LongName(), failed, err))

	switch policy[failed] {
	case actionSkipProvider:
		provider.SetState(model.ProviderFailed)
	case actionAbortRun:
		// Unreachable with the current table; fatal classes are rejected
		// before the provider loop starts.
		panic(fmt.Sprintf("controller: abort policy hit for step %s", failed))
	}
}

// failInFlight marks a provider's still in-flight reports Failed so no
// report is left InProgress after collection.
func (c *controllerService) failInFlight(provider service.Provider, err error) {
	for _, handle := range c.handles(provider) {
		if !handle.Status().Terminal() {
			handle.Result().Fail(err, fmt.Sprintf("provider=%s phase=fetch", provider.Name()))
		}
	}
}

// RunningProviders returns the providers that reached the Running state,
// in lifecycle order.
func (c *controllerService) RunningProviders() []service.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Provider, len(c.running))
	copy(out, c.running)
	return out
}
