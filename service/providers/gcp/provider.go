// Package gcp is the Google Cloud provider. Cost reports read the billing
// export in BigQuery; a project without a configured billing account is
// not enrolled.
package gcp

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	gcpbilling "github.com/elC0mpa/cost-advisor/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/cost-advisor/service/gcp/compute"
	gcpconfig "github.com/elC0mpa/cost-advisor/service/gcp/config"
	gcpidentity "github.com/elC0mpa/cost-advisor/service/gcp/identity"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "gcp"
	providerLong = "Google Cloud Platform"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: false,
		Reports: []string{
			"monthly_costs",
			"unattached_disks",
			"terminated_vms",
			"unassigned_external_ips",
			"expiring_commitments",
		},
		New: NewProvider,
	})
}

type provider struct {
	base.Provider

	billing  gcpbilling.BillingService
	compute  gcpcompute.ComputeService
	identity gcpidentity.IdentityService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, false)}
	p.AddCheck(&monthlyCostsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "monthly_costs",
			CheckCommonName:  "Month-over-month costs",
			CheckService:     "Cloud Billing",
			CheckDomain:      model.DomainBilling,
			CheckDescription: "Current and previous month project costs by service",
			CheckReportType:  "table",
			CheckMandatory:   true,
		},
		provider: p,
	})
	p.AddCheck(&unattachedDisksCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unattached_disks",
			CheckCommonName:  "Unattached persistent disks",
			CheckService:     "Compute Engine",
			CheckDomain:      model.DomainStorage,
			CheckDescription: "Persistent disks not attached to any instance",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&terminatedVMsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "terminated_vms",
			CheckCommonName:  "Terminated instances",
			CheckService:     "Compute Engine",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Terminated instances still holding boot disks",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&unassignedIPsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unassigned_external_ips",
			CheckCommonName:  "Unassigned external IPs",
			CheckService:     "Compute Engine",
			CheckDomain:      model.DomainNetwork,
			CheckDescription: "Reserved external IP addresses not in use",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&expiringCommitmentsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "expiring_commitments",
			CheckCommonName:  "Expiring committed use discounts",
			CheckService:     "Compute Engine",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Committed use discounts expiring within 30 days or recently expired",
			CheckReportType:  "table",
		},
		provider: p,
	})
	return p, nil
}

func (p *provider) Auth(ctx context.Context) error {
	project := p.RC.Config.GCPProjectID
	if p.RC.Flags.Project != "" {
		project = p.RC.Flags.Project
	}
	if project == "" {
		return fmt.Errorf("no gcp project configured")
	}

	billingAccount := p.RC.Config.GCPBillingAccount
	if p.RC.Flags.BillingAccount != "" {
		billingAccount = p.RC.Flags.BillingAccount
	}

	if _, err := gcpconfig.NewService(project).GetCredentials(ctx); err != nil {
		return fmt.Errorf("resolving gcp credentials: %w", err)
	}

	var err error
	if p.identity, err = gcpidentity.NewService(ctx, project); err != nil {
		return fmt.Errorf("building resource manager client: %w", err)
	}
	if p.compute, err = gcpcompute.NewService(ctx, project); err != nil {
		return fmt.Errorf("building compute client: %w", err)
	}

	if billingAccount == "" {
		p.SetEnrolled(false)
		return nil
	}
	if p.billing, err = gcpbilling.NewService(ctx, project, billingAccount); err != nil {
		return fmt.Errorf("building billing client: %w", err)
	}
	return nil
}

func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	if !runValidation || !p.Enrolled() {
		return nil
	}
	if _, err := p.identity.GetProjectInfo(ctx); err != nil {
		return fmt.Errorf("resolving gcp project: %w", err)
	}
	return nil
}
