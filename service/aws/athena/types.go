package awsathena

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/athena"
)

type service struct {
	client         *athena.Client
	database       string
	outputLocation string
}

// QueryResult is one finished Athena query: its execution id for
// traceability and the result rows with the header stripped.
type QueryResult struct {
	ExecutionID string
	Columns     []string
	Rows        [][]string
}

type AthenaService interface {
	RunQuery(ctx context.Context, query string) (*QueryResult, error)
	ShowColumns(ctx context.Context, table string) ([]string, error)
}
