package ec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/utils"
)

// Monthly price approximations used for the savings estimates.
const (
	eipMonthlyPrice   = 3.65  // $0.005/hr idle public IPv4
	ebsGBMonthlyPrice = 0.08  // gp3 per GB-month
	elbMonthlyPrice   = 16.43 // ALB/NLB hourly base, no LCU usage
)

type unusedIPsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *unusedIPsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	addresses, err := c.provider.compute.GetUnusedElasticIpAddresses(ctx)
	if err != nil {
		return fmt.Errorf("listing elastic ip addresses: %w", err)
	}

	table := model.ResultTable{Columns: []string{"public_ip", "allocation_id"}}
	for _, address := range addresses {
		table.Rows = append(table.Rows, []string{
			aws.ToString(address.PublicIp),
			aws.ToString(address.AllocationId),
		})
	}
	result.Data = table
	return nil
}

func (c *unusedIPsCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(result.Data.RowCount()) * eipMonthlyPrice
	return &savings, nil
}

type unusedVolumesCheck struct {
	base.CheckInfo
	provider *provider

	totalGB int64
}

func (c *unusedVolumesCheck) Run(ctx context.Context, result *model.ReportResult) error {
	volumes, err := c.provider.compute.GetUnusedEBSVolumes(ctx)
	if err != nil {
		return fmt.Errorf("listing unattached volumes: %w", err)
	}

	table := model.ResultTable{Columns: []string{"volume_id", "size_gb", "type"}}
	c.totalGB = 0
	for _, volume := range volumes {
		size := aws.ToInt32(volume.Size)
		c.totalGB += int64(size)
		table.Rows = append(table.Rows, []string{
			aws.ToString(volume.VolumeId),
			fmt.Sprintf("%d", size),
			string(volume.VolumeType),
		})
	}
	result.Data = table
	return nil
}

func (c *unusedVolumesCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(c.totalGB) * ebsGBMonthlyPrice
	return &savings, nil
}

type stoppedInstancesCheck struct {
	base.CheckInfo
	provider *provider

	attachedGB int64
}

func (c *stoppedInstancesCheck) Run(ctx context.Context, result *model.ReportResult) error {
	instances, volumes, err := c.provider.compute.GetStoppedInstancesInfo(ctx)
	if err != nil {
		return fmt.Errorf("listing stopped instances: %w", err)
	}

	c.attachedGB = 0
	for _, volume := range volumes {
		c.attachedGB += int64(aws.ToInt32(volume.Size))
	}

	table := model.ResultTable{Columns: []string{"instance_id", "type", "stopped_since", "stopped_days"}}
	now := time.Now()
	for _, instance := range instances {
		since, days := "unknown", ""
		if stoppedAt, err := utils.ParseTransitionDate(aws.ToString(instance.StateTransitionReason)); err == nil {
			since = stoppedAt.Format("2006-01-02")
			days = fmt.Sprintf("%d", int(now.Sub(stoppedAt).Hours()/24))
		}
		table.Rows = append(table.Rows, []string{
			aws.ToString(instance.InstanceId),
			string(instance.InstanceType),
			since,
			days,
		})
	}
	result.Data = table
	return nil
}

func (c *stoppedInstancesCheck) Savings(result *model.ReportResult) (*float64, error) {
	// the instances themselves no longer bill; their root volumes do
	savings := float64(c.attachedGB) * ebsGBMonthlyPrice
	return &savings, nil
}

type expiringReservationsCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *expiringReservationsCheck) Run(ctx context.Context, result *model.ReportResult) error {
	reservations, err := c.provider.compute.GetExpiringReservedInstances(ctx)
	if err != nil {
		return fmt.Errorf("listing reserved instances: %w", err)
	}

	table := model.ResultTable{Columns: []string{"reservation_id", "instance_type", "expiration", "days_left", "status"}}
	for _, ri := range reservations {
		table.Rows = append(table.Rows, []string{
			ri.ReservedInstanceId,
			ri.InstanceType,
			ri.ExpirationDate.Format("2006-01-02"),
			fmt.Sprintf("%d", ri.DaysUntilExpiry),
			ri.Status,
		})
	}
	result.Data = table
	return nil
}

func (c *expiringReservationsCheck) Savings(result *model.ReportResult) (*float64, error) {
	// informational: expirations change coverage, not directly spend
	return nil, nil
}

type unusedLoadBalancersCheck struct {
	base.CheckInfo
	provider *provider
}

func (c *unusedLoadBalancersCheck) Run(ctx context.Context, result *model.ReportResult) error {
	balancers, err := c.provider.elb.GetOrphanedLoadBalancers(ctx)
	if err != nil {
		return fmt.Errorf("listing load balancers: %w", err)
	}

	table := model.ResultTable{Columns: []string{"name", "type", "created"}}
	for _, lb := range balancers {
		created := ""
		if !lb.CreatedAt.IsZero() {
			created = lb.CreatedAt.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{lb.Name, lb.Type, created})
	}
	result.Data = table
	return nil
}

func (c *unusedLoadBalancersCheck) Savings(result *model.ReportResult) (*float64, error) {
	savings := float64(result.Data.RowCount()) * elbMonthlyPrice
	return &savings, nil
}
