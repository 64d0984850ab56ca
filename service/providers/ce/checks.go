package ce

import (
	"context"
	"fmt"
	"sort"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

// monthlyCostsCheck compares this month's per-service spend against last
// month's.
type monthlyCostsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *monthlyCostsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	current, err := c.provider.costs.GetCurrentMonthCostsByService(ctx)
	if err != nil {
		return fmt.Errorf("fetching current month costs: %w", err)
	}
	previous, err := c.provider.costs.GetLastMonthCostsByService(ctx)
	if err != nil {
		return fmt.Errorf("fetching last month costs: %w", err)
	}

	services := make(map[string]struct{})
	for name := range current.CostGroup {
		services[name] = struct{}{}
	}
	for name := range previous.CostGroup {
		services[name] = struct{}{}
	}
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	table := model.ResultTable{Columns: []string{"service", "previous_month", "current_month", "delta"}}
	for _, name := range names {
		prev := previous.CostGroup[name].Amount
		curr := current.CostGroup[name].Amount
		table.Rows = append(table.Rows, []string{
			name,
			fmt.Sprintf("%.2f", prev),
			fmt.Sprintf("%.2f", curr),
			fmt.Sprintf("%+.2f", curr-prev),
		})
	}
	result.Data = table
	return nil
}

func (c *monthlyCostsCheck) Savings(result *model.ReportResult) (*float64, error) {
	return nil, nil
}

// costTrendCheck reports total spend per month over the trailing half
// year.
type costTrendCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *costTrendCheck) Run(ctx context.Context, result *model.ReportResult) error {
	months, err := c.provider.costs.GetLastSixMonthsCosts(ctx)
	if err != nil {
		return fmt.Errorf("fetching six month trend: %w", err)
	}

	table := model.ResultTable{Columns: []string{"month_start", "month_end", "total_cost"}}
	for _, month := range months {
		unit := ""
		for _, cost := range month.CostGroup {
			unit = cost.Unit
		}
		start, end := "", ""
		if month.Start != nil {
			start = *month.Start
		}
		if month.End != nil {
			end = *month.End
		}
		table.Rows = append(table.Rows, []string{start, end, fmt.Sprintf("%.2f %s", month.Total(), unit)})
	}
	result.Data = table
	return nil
}

func (c *costTrendCheck) Savings(result *model.ReportResult) (*float64, error) {
	return nil, nil
}
