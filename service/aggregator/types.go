package aggregator

import "github.com/elC0mpa/cost-advisor/service"

type aggregatorService struct {
	completed []service.Report
	failed    []service.Report
}

// Aggregator merges per-provider report partitions into the run-wide
// completed/failed lists consumed by output generation. It performs no
// recomputation: every report already carries its final status.
type Aggregator interface {
	Collect(providers []service.Provider) (completed, failed []service.Report)
	CompletedReports() []service.Report
	FailedReports() []service.Report
}
