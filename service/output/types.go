package output

import (
	"context"

	"github.com/elC0mpa/cost-advisor/service/configstore"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

type service struct {
	rc    *runcontext.Context
	store configstore.ConfigStore
}

// runMetadata is the JSON document written next to the CSV exports.
type runMetadata struct {
	StartedAt     string          `json:"started_at"`
	CompletedAt   string          `json:"completed_at"`
	Mode          string          `json:"mode"`
	SchemaVariant string          `json:"schema_variant"`
	TotalSavings  float64         `json:"total_savings"`
	Reports       []reportSummary `json:"reports"`
}

type reportSummary struct {
	Provider     string   `json:"provider"`
	Report       string   `json:"report"`
	Status       string   `json:"status"`
	Rows         int      `json:"rows"`
	Savings      float64  `json:"savings"`
	ExecutionIDs []string `json:"execution_ids,omitempty"`
	Failure      string   `json:"failure,omitempty"`
}

// OutputService turns a finished run into terminal output, file exports
// and a persisted run record.
type OutputService interface {
	Render(ctx context.Context, result *controller.RunResult) error
}
