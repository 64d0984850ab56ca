package gcpbilling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/cost-advisor/model"
	"google.golang.org/api/iterator"
)

const exportDataset = "billing_export"

func NewService(ctx context.Context, projectID, billingAccount string) (*service, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	return &service{
		projectID:      projectID,
		billingAccount: billingAccount,
		bqClient:       bqClient,
	}, nil
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) monthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	startStr := firstOfMonth(endDate).Format("2006-01-02")
	endStr := endDate.Format("2006-01-02")

	query := fmt.Sprintf(`
		SELECT
			service.description AS service_name,
			SUM(cost) AS total_cost,
			currency
		FROM %s
		WHERE
			project.id = @projectID
			AND DATE(usage_start_time) >= @startDate
			AND DATE(usage_start_time) < @endDate
		GROUP BY service.description, currency
		HAVING SUM(cost) > 0
		ORDER BY total_cost DESC
	`, s.exportTable())

	q := s.bqClient.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "projectID", Value: s.projectID},
		{Name: "startDate", Value: startStr},
		{Name: "endDate", Value: endStr},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying billing export: %w", err)
	}

	costGroups := make(model.CostGroup)
	for {
		var row struct {
			ServiceName string  `bigquery:"service_name"`
			TotalCost   float64 `bigquery:"total_cost"`
			Currency    string  `bigquery:"currency"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading billing export row: %w", err)
		}

		costGroups[row.ServiceName] = struct {
			Amount float64
			Unit   string
		}{
			Amount: row.TotalCost,
			Unit:   row.Currency,
		}
	}

	return &model.CostInfo{
		DateInterval: model.DateInterval{
			Start: &startStr,
			End:   &endStr,
		},
		CostGroup: costGroups,
	}, nil
}

// exportTable builds the standard billing export table name,
// project.billing_export.gcp_billing_export_v1_<account id with dashes
// replaced by underscores>.
func (s *service) exportTable() string {
	accountID := strings.TrimPrefix(s.billingAccount, "billingAccounts/")
	accountID = strings.ReplaceAll(accountID, "-", "_")
	return fmt.Sprintf("%s.%s.gcp_billing_export_v1_%s", s.projectID, exportDataset, accountID)
}

func firstOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
}
