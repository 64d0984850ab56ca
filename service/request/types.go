package request

import (
	"context"
	"errors"

	"github.com/elC0mpa/cost-advisor/model"
)

// ErrNoRequestSource means no request source was provided and no default
// request file exists; the operator has to supply one.
var ErrNoRequestSource = errors.New("no report request source provided")

// DefaultRequestFile is the fallback local request file name.
const DefaultRequestFile = "report_request.yaml"

// AllChecks expands to every known report of every registered provider.
const AllChecks = "ALL"

// ParameterFetcher retrieves a remote report request document, typically
// from SSM Parameter Store.
type ParameterFetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// Catalog exposes the known report names per provider, for check-name
// resolution and ALL expansion.
type Catalog interface {
	ReportNames() map[string][]string // provider -> report names
}

type parserService struct {
	workdir string
	fetcher ParameterFetcher
	catalog Catalog
}

// Parser resolves the enabled-report request from exactly one source per
// run, in priority order: remote parameter, explicit file, explicit check
// list, default file.
type Parser interface {
	Resolve(ctx context.Context, flags model.Flags) (model.ReportRequest, error)
}

// requestFile is the on-disk/remote YAML request document.
type requestFile struct {
	Reports map[string]bool `yaml:"reports"`
}
