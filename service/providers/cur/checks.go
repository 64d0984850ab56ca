package cur

import (
	"context"
	"strconv"

	"github.com/elC0mpa/cost-advisor/model"
	awsathena "github.com/elC0mpa/cost-advisor/service/aws/athena"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

// gravitonDiscount is the typical price delta moving an x86 instance
// family to its Graviton equivalent.
const gravitonDiscount = 0.20

func stageResult(result *model.ReportResult, query *awsathena.QueryResult) {
	result.Data = model.ResultTable{Columns: query.Columns, Rows: query.Rows}
	result.ExecutionIDs = append(result.ExecutionIDs, query.ExecutionID)
}

// sumColumn adds up a numeric column; unparseable cells contribute zero.
func sumColumn(table *model.ResultTable, column string) float64 {
	idx := -1
	for i, name := range table.Columns {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}
	total := 0.0
	for _, row := range table.Rows {
		if idx >= len(row) {
			continue
		}
		if v, err := strconv.ParseFloat(row[idx], 64); err == nil {
			total += v
		}
	}
	return total
}

// avgInstanceCostCheck derives the average per-type instance cost before
// the main provider loop runs.
type avgInstanceCostCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *avgInstanceCostCheck) Run(ctx context.Context, result *model.ReportResult) error {
	query, err := c.provider.athena.RunQuery(ctx, c.provider.avgInstanceCostQuery())
	if err != nil {
		return err
	}
	stageResult(result, query)
	return nil
}

func (c *avgInstanceCostCheck) Savings(result *model.ReportResult) (*float64, error) {
	return nil, nil
}

// gravitonSavingsCheck estimates the spend reduction from moving x86
// instance families to Graviton equivalents.
type gravitonSavingsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *gravitonSavingsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	query, err := c.provider.athena.RunQuery(ctx, c.provider.gravitonCandidatesQuery())
	if err != nil {
		return err
	}
	stageResult(result, query)
	return nil
}

func (c *gravitonSavingsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := sumColumn(&result.Data, "total_cost") * gravitonDiscount
	return &savings, nil
}

// idleNatGatewaysCheck finds NAT gateways billed hourly but processing no
// traffic.
type idleNatGatewaysCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *idleNatGatewaysCheck) Run(ctx context.Context, result *model.ReportResult) error {
	query, err := c.provider.athena.RunQuery(ctx, c.provider.idleNatGatewaysQuery())
	if err != nil {
		return err
	}
	stageResult(result, query)
	return nil
}

func (c *idleNatGatewaysCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := sumColumn(&result.Data, "hourly_cost")
	return &savings, nil
}
