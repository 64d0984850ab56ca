package azure

import (
	"context"
	"fmt"
	"sort"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
)

const (
	diskGBMonthlyPrice = 0.05 // standard SSD per GB-month
	publicIPPrice      = 3.65
)

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

type deallocatedVMsCheck struct {
	base.CheckInfo
	provider *provider

	attachedGB int64
}

func (c *deallocatedVMsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	instances, volumes, err := c.provider.compute.GetStoppedInstances(ctx)
	if err != nil {
		return fmt.Errorf("listing deallocated virtual machines: %w", err)
	}

	c.attachedGB = 0
	for _, volume := range volumes {
		c.attachedGB += int64(volume.SizeGB)
	}

	table := model.ResultTable{Columns: []string{"vm_id", "name", "stopped_days"}}
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

func (c *deallocatedVMsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(c.attachedGB) * diskGBMonthlyPrice
	return &savings, nil
}

type unassociatedIPsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *unassociatedIPsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	addresses, err := c.provider.compute.GetUnusedIPs(ctx)
	if err != nil {
		return fmt.Errorf("listing public ip addresses: %w", err)
	}

	table := model.ResultTable{Columns: []string{"address", "allocation_id"}}
	for _, address := range addresses {
		table.Rows = append(table.Rows, []string{address.Address, address.AllocationID})
	}
	result.Data = table
	return nil
}

func (c *unassociatedIPsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(result.Data.RowCount()) * publicIPPrice
	return &savings, nil
}

type expiringReservationsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *expiringReservationsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	reservations, err := c.provider.compute.GetExpiringReservations(ctx)
	if err != nil {
		return fmt.Errorf("listing reservation orders: %w", err)
	}

	table := model.ResultTable{Columns: []string{"reservation_id", "instance_type", "days_left", "status"}}
	for _, reservation := range reservations {
		table.Rows = append(table.Rows, []string{
			reservation.ID,
			reservation.InstanceType,
			fmt.Sprintf("%d", reservation.DaysUntilExpiry),
			reservation.Status,
		})
	}
	result.Data = table
	return nil
}

func (c *expiringReservationsCheck) Savings(result *model.ReportResult) (*float64, error) {
	// coverage changes are informational, not a direct saving
	return nil, nil
}
