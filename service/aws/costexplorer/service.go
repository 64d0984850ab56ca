package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/elC0mpa/cost-advisor/model"
)

const costMetric = "UnblendedCost"

func NewService(awsconfig aws.Config) *service {
	return &service{
		client: costexplorer.NewFromConfig(awsconfig),
	}
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.monthCostsByService(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) monthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	output, err := s.client.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth(endDate).Format("2006-01-02")),
			End:   aws.String(endDate.Format("2006-01-02")),
		},
		Metrics: []string{costMetric},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching costs by service: %w", err)
	}
	if len(output.ResultsByTime) == 0 {
		return nil, fmt.Errorf("cost explorer returned no periods for %s", endDate.Format("2006-01"))
	}

	period := output.ResultsByTime[0]
	return &model.CostInfo{
		CostGroup: groupCosts(period.Groups),
		DateInterval: model.DateInterval{
			Start: period.TimePeriod.Start,
			End:   period.TimePeriod.End,
		},
	}, nil
}

// GetLastSixMonthsCosts returns one CostInfo per month, oldest first, with a
// single "Total" cost group entry per month.
func (s *service) GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error) {
	now := time.Now()
	output, err := s.client.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth(now.AddDate(0, -6, 0)).Format("2006-01-02")),
			End:   aws.String(firstOfMonth(now).Format("2006-01-02")),
		},
		Metrics: []string{costMetric},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching monthly cost trend: %w", err)
	}

	monthlyCosts := make([]model.CostInfo, 0, len(output.ResultsByTime))
	for _, period := range output.ResultsByTime {
		total, ok := period.Total[costMetric]
		if !ok || total.Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(*total.Amount, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing monthly total %q: %w", *total.Amount, err)
		}

		monthlyCosts = append(monthlyCosts, model.CostInfo{
			DateInterval: model.DateInterval{
				Start: period.TimePeriod.Start,
				End:   period.TimePeriod.End,
			},
			CostGroup: model.CostGroup{
				"Total": {Amount: amount, Unit: aws.ToString(total.Unit)},
			},
		})
	}

	return monthlyCosts, nil
}

func firstOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
}

// groupCosts drops zero-cost groups so the month-over-month table only
// carries services that actually billed.
func groupCosts(groups []types.Group) model.CostGroup {
	costGroups := make(model.CostGroup)
	for _, group := range groups {
		metric, ok := group.Metrics[costMetric]
		if !ok || metric.Amount == nil || len(group.Keys) == 0 {
			continue
		}
		amount, err := strconv.ParseFloat(*metric.Amount, 64)
		if err != nil || amount == 0 {
			continue
		}
		costGroups[group.Keys[0]] = struct {
			Amount float64
			Unit   string
		}{
			Amount: amount,
			Unit:   aws.ToString(metric.Unit),
		}
	}
	return costGroups
}
