package azurecostmanagement

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/cost-advisor/model"
)

// Cost Management reports amounts in USD unless the subscription
// overrides the billing currency.
const costUnit = "USD"

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("creating cost management client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		client:         client,
	}, nil
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) monthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	startDate := firstOfMonthUTC(endDate)

	resp, err := s.client.Usage(ctx, s.scope(), costsByServiceQuery(startDate, endDate), nil)
	if err != nil {
		return nil, fmt.Errorf("querying subscription costs: %w", err)
	}

	// Rows come back as [cost, serviceName, ...] tuples at daily
	// granularity, so the same service repeats across rows.
	costGroups := make(model.CostGroup)
	if resp.Properties != nil {
		for _, row := range resp.Properties.Rows {
			if len(row) < 2 {
				continue
			}
			cost, costOK := row[0].(float64)
			serviceName, nameOK := row[1].(string)
			if !costOK || !nameOK || cost <= 0 {
				continue
			}

			entry := costGroups[serviceName]
			costGroups[serviceName] = struct {
				Amount float64
				Unit   string
			}{
				Amount: entry.Amount + cost,
				Unit:   costUnit,
			}
		}
	}

	startStr := startDate.Format("2006-01-02")
	endStr := endDate.Format("2006-01-02")
	return &model.CostInfo{
		DateInterval: model.DateInterval{
			Start: &startStr,
			End:   &endStr,
		},
		CostGroup: costGroups,
	}, nil
}

func (s *service) scope() string {
	return fmt.Sprintf("/subscriptions/%s", s.subscriptionID)
}

func costsByServiceQuery(from, through time.Time) armcostmanagement.QueryDefinition {
	dataset := &armcostmanagement.QueryDataset{
		Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
		Aggregation: map[string]*armcostmanagement.QueryAggregation{
			"totalCost": {
				Name:     to.Ptr("Cost"),
				Function: to.Ptr(armcostmanagement.FunctionTypeSum),
			},
		},
		Grouping: []*armcostmanagement.QueryGrouping{
			{
				Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
				Name: to.Ptr("ServiceName"),
			},
		},
	}

	return armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(from),
			To:   to.Ptr(through),
		},
		Dataset: dataset,
	}
}

func firstOfMonthUTC(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
}
