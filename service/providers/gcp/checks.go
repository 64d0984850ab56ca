package gcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

const (
	diskGBMonthlyPrice = 0.04 // standard persistent disk per GB-month
	externalIPPrice    = 7.30 // unused static external IP
)

type monthlyCostsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *monthlyCostsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	current, err := c.provider.billing.GetCurrentMonthCostsByService(ctx)
	if err != nil {
		return fmt.Errorf("fetching current month costs: %w", err)
	}
	previous, err := c.provider.billing.GetLastMonthCostsByService(ctx)
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

type unattachedDisksCheck struct {
	base.CheckInfo
	provider *provider

	totalGB int64
}

func (c *unattachedDisksCheck) Run(ctx context.Context, result *model.ReportResult) error {
	volumes, err := c.provider.compute.GetUnusedVolumes(ctx)
	if err != nil {
		return fmt.Errorf("listing unattached disks: %w", err)
	}

	table := model.ResultTable{Columns: []string{"disk_id", "size_gb", "status"}}
	c.totalGB = 0
	for _, volume := range volumes {
		c.totalGB += int64(volume.SizeGB)
		table.Rows = append(table.Rows, []string{
			volume.ID,
			fmt.Sprintf("%d", volume.SizeGB),
			volume.Status,
		})
	}
	result.Data = table
	return nil
}

func (c *unattachedDisksCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(c.totalGB) * diskGBMonthlyPrice
	return &savings, nil
}

type terminatedVMsCheck struct {
	base.CheckInfo
	provider *provider

	attachedGB int64
}

func (c *terminatedVMsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	instances, volumes, err := c.provider.compute.GetStoppedInstances(ctx)
	if err != nil {
		return fmt.Errorf("listing terminated instances: %w", err)
	}

	c.attachedGB = 0
	for _, volume := range volumes {
		c.attachedGB += int64(volume.SizeGB)
	}

	table := model.ResultTable{Columns: []string{"instance_id", "name", "stopped_days"}}
	for _, instance := range instances {
		table.Rows = append(table.Rows, []string{
			instance.ID,
			instance.Name,
			fmt.Sprintf("%d", instance.StoppedDays),
		})
	}
	result.Data = table
	return nil
}

func (c *terminatedVMsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(c.attachedGB) * diskGBMonthlyPrice
	return &savings, nil
}

type unassignedIPsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *unassignedIPsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	addresses, err := c.provider.compute.GetUnusedIPs(ctx)
	if err != nil {
		return fmt.Errorf("listing external ip addresses: %w", err)
	}

	table := model.ResultTable{Columns: []string{"address", "allocation_id"}}
	for _, address := range addresses {
		table.Rows = append(table.Rows, []string{address.Address, address.AllocationID})
	}
	result.Data = table
	return nil
}

func (c *unassignedIPsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(result.Data.RowCount()) * externalIPPrice
	return &savings, nil
}

type expiringCommitmentsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *expiringCommitmentsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	commitments, err := c.provider.compute.GetExpiringReservations(ctx)
	if err != nil {
		return fmt.Errorf("listing committed use discounts: %w", err)
	}

	table := model.ResultTable{Columns: []string{"commitment", "type", "days_left", "status"}}
	for _, commitment := range commitments {
		table.Rows = append(table.Rows, []string{
			commitment.ID,
			commitment.InstanceType,
			fmt.Sprintf("%d", commitment.DaysUntilExpiry),
			commitment.Status,
		})
	}
	result.Data = table
	return nil
}

func (c *expiringCommitmentsCheck) Savings(result *model.ReportResult) (*float64, error) {
	// coverage changes are informational, not a direct saving
	return nil, nil
}
