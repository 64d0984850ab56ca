package runcontext

import (
	"log/slog"
	"sync"

	"github.com/elC0mpa/cost-advisor/model"
)

// Config holds environment-based configuration shared by every provider.
type Config struct {
	LogLevel  string `env:"COST_ADVISOR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"COST_ADVISOR_LOG_FORMAT" envDefault:"text"`

	DatabasePath string `env:"COST_ADVISOR_DB_PATH" envDefault:"cost-advisor.db"`

	// Billing export (Athena) configuration
	CurS3Bucket  string `env:"COST_ADVISOR_CUR_S3_BUCKET"`
	CurDatabase  string `env:"COST_ADVISOR_CUR_DATABASE"`
	CurTable     string `env:"COST_ADVISOR_CUR_TABLE"`
	CurRegion    string `env:"COST_ADVISOR_CUR_REGION" envDefault:"us-east-1"`
	PayerAccount string `env:"COST_ADVISOR_PAYER_ACCOUNT"`

	// AWS configuration
	AWSRegion  string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSProfile string `env:"AWS_PROFILE"`

	// Azure configuration
	AzureSubscriptionID string `env:"AZURE_SUBSCRIPTION_ID"`

	// GCP configuration
	GCPProjectID      string `env:"GCP_PROJECT_ID"`
	GCPBillingAccount string `env:"GCP_BILLING_ACCOUNT"`
}

// Context is the per-run shared state passed by reference into every
// provider and report. Providers read it but never replace it; the only
// mutable parts are the alert list and the derived facts, and facts are
// written exclusively by the precondition resolver.
type Context struct {
	Config  Config
	Flags   model.Flags
	Request model.ReportRequest
	Mode    model.ExecutionMode

	SelectedRegions  []string
	SelectedAccounts []string

	Logger *slog.Logger

	alertsMu sync.Mutex
	alerts   []model.Alert

	factsMu sync.RWMutex
	facts   model.DerivedFacts
}
