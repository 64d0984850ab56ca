package co

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

type rightsizingCheck struct {
	base.CheckInfo
	provider *provider

	totalSavings float64
}

func (c *rightsizingCheck) Run(ctx context.Context, result *model.ReportResult) error {
	recommendations, err := c.provider.optimizer.GetInstanceRecommendations(ctx)
	if err != nil {
		return fmt.Errorf("fetching instance recommendations: %w", err)
	}

	table := model.ResultTable{
		Columns: []string{"instance", "current_type", "finding", "recommended_type", "monthly_savings"},
	}
	c.totalSavings = 0
	for _, rec := range recommendations {
		c.totalSavings += rec.EstimatedSavings
		table.Rows = append(table.Rows, []string{
			rec.InstanceName,
			rec.CurrentType,
			rec.Finding,
			rec.RecommendedType,
			fmt.Sprintf("%.2f", rec.EstimatedSavings),
		})
	}
	result.Data = table
	return nil
}

func (c *rightsizingCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := c.totalSavings
	return &savings, nil
}
