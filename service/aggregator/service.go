package aggregator

import "github.com/elC0mpa/cost-advisor/service"

func NewService() *aggregatorService {
	return &aggregatorService{}
}

// Collect partitions every provider's executed reports into the run-wide
// completed and failed lists, preserving provider iteration order. A
// report lands in exactly one list; calling Collect again over the same
// terminal provider set yields the same partitions.
func (a *aggregatorService) Collect(providers []service.Provider) (completed, failed []service.Report) {
	a.completed = nil
	a.failed = nil

	for _, provider := range providers {
		providerCompleted, providerFailed := provider.CompletedReports()
		a.completed = append(a.completed, providerCompleted...)
		a.failed = append(a.failed, providerFailed...)
	}

	return a.completed, a.failed
}

// CompletedReports returns the completed list from the last Collect.
func (a *aggregatorService) CompletedReports() []service.Report {
	return a.completed
}

// FailedReports returns the failed list from the last Collect.
func (a *aggregatorService) FailedReports() []service.Report {
	return a.failed
}
