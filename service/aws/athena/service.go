package awsathena

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

const pollInterval = time.Second

func NewService(awsconfig aws.Config, database, outputLocation string) *service {
	client := athena.NewFromConfig(awsconfig)
	return &service{
		client:         client,
		database:       strings.TrimSpace(database),
		outputLocation: outputLocation,
	}
}

// RunQuery starts a query, waits for a terminal state and returns the
// flattened result set. The execution id is preserved for traceability.
func (s *service) RunQuery(ctx context.Context, query string) (*QueryResult, error) {
	start, err := s.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString: aws.String(query),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(s.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(s.outputLocation),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting athena query: %w", err)
	}

	executionID := aws.ToString(start.QueryExecutionId)
	if err := s.waitForQuery(ctx, executionID); err != nil {
		return nil, err
	}

	columns, rows, err := s.fetchResults(ctx, executionID)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		ExecutionID: executionID,
		Columns:     columns,
		Rows:        rows,
	}, nil
}

func (s *service) waitForQuery(ctx context.Context, executionID string) error {
	for {
		execution, err := s.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(executionID),
		})
		if err != nil {
			return fmt.Errorf("polling athena query %s: %w", executionID, err)
		}

		state := execution.QueryExecution.Status.State
		switch state {
		case types.QueryExecutionStateSucceeded:
			return nil
		case types.QueryExecutionStateFailed, types.QueryExecutionStateCancelled:
			reason := aws.ToString(execution.QueryExecution.Status.StateChangeReason)
			return fmt.Errorf("athena query %s ended %s: %s", executionID, state, reason)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (s *service) fetchResults(ctx context.Context, executionID string) (columns []string, rows [][]string, err error) {
	paginator := athena.NewGetQueryResultsPaginator(s.client, &athena.GetQueryResultsInput{
		QueryExecutionId: aws.String(executionID),
	})

	firstPage := true
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching athena results %s: %w", executionID, err)
		}

		resultRows := page.ResultSet.Rows
		if firstPage {
			for _, info := range page.ResultSet.ResultSetMetadata.ColumnInfo {
				columns = append(columns, aws.ToString(info.Name))
			}
			if len(resultRows) > 0 {
				// the first row of the first page repeats the header
				resultRows = resultRows[1:]
			}
			firstPage = false
		}

		for _, row := range resultRows {
			cells := make([]string, len(row.Data))
			for i, datum := range row.Data {
				cells[i] = aws.ToString(datum.VarCharValue)
			}
			rows = append(rows, cells)
		}
	}

	return columns, rows, nil
}

// ShowColumns lists the column names of a table, trimmed of whitespace.
func (s *service) ShowColumns(ctx context.Context, table string) ([]string, error) {
	result, err := s.RunQuery(ctx, fmt.Sprintf("SHOW COLUMNS IN `%s`", strings.TrimSpace(table)))
	if err != nil {
		return nil, err
	}

	var columns []string
	for _, row := range result.Rows {
		if len(row) > 0 {
			columns = append(columns, strings.TrimSpace(row[0]))
		}
	}
	return columns, nil
}
