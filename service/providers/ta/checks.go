package ta

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

type costChecksCheck struct {
	base.CheckInfo
	provider *provider

	totalSavings float64
}

func (c *costChecksCheck) Run(ctx context.Context, result *model.ReportResult) error {
	checks, err := c.provider.support.GetCostOptimizingChecks(ctx)
	if err != nil {
		return fmt.Errorf("listing cost optimizing checks: %w", err)
	}

	table := model.ResultTable{
		Columns: []string{"check", "status", "flagged_resources", "monthly_savings"},
	}
	c.totalSavings = 0
	for _, check := range checks {
		detail, err := c.provider.support.GetCheckResult(ctx, check.CheckID)
		if err != nil {
			return fmt.Errorf("fetching result for check %s: %w", check.Name, err)
		}
		c.totalSavings += detail.EstimatedSavings
		table.Rows = append(table.Rows, []string{
			check.Name,
			detail.Status,
			fmt.Sprintf("%d", len(detail.FlaggedResources)),
			fmt.Sprintf("%.2f", detail.EstimatedSavings),
		})
		result.ExecutionIDs = append(result.ExecutionIDs, check.CheckID)
	}
	result.Data = table
	return nil
}

func (c *costChecksCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := c.totalSavings
	return &savings, nil
}
