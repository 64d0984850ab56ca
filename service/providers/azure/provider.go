// Package azure is the Azure provider, covering subscription costs and
// compute waste. A subscription that cannot be resolved marks the
// provider as not enrolled rather than failing the run.
package azure

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	azurecompute "github.com/elC0mpa/cost-advisor/service/azure/compute"
	azureconfig "github.com/elC0mpa/cost-advisor/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/cost-advisor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/cost-advisor/service/azure/identity"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "azure"
	providerLong = "Microsoft Azure"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: false,
		Reports: []string{
			"monthly_costs",
			"unattached_disks",
			"deallocated_vms",
			"unassociated_public_ips",
			"expiring_reservations",
		},
		New: NewProvider,
	})
}

type provider struct {
	base.Provider

	costs    azurecostmanagement.CostManagementService
	compute  azurecompute.ComputeService
	identity azureidentity.IdentityService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, false)}
	p.AddCheck(&monthlyCostsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "monthly_costs",
			CheckCommonName:  "Month-over-month costs",
			CheckService:     "Cost Management",
			CheckDomain:      model.DomainBilling,
			CheckDescription: "Current and previous month subscription costs by service",
			CheckReportType:  "table",
			CheckMandatory:   true,
		},
		provider: p,
	})
	p.AddCheck(&unattachedDisksCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unattached_disks",
			CheckCommonName:  "Unattached managed disks",
			CheckService:     "Compute",
			CheckDomain:      model.DomainStorage,
			CheckDescription: "Managed disks not attached to any virtual machine",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&deallocatedVMsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "deallocated_vms",
			CheckCommonName:  "Deallocated virtual machines",
			CheckService:     "Compute",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Virtual machines deallocated but still holding disks",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&unassociatedIPsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unassociated_public_ips",
			CheckCommonName:  "Unassociated public IPs",
			CheckService:     "Network",
			CheckDomain:      model.DomainNetwork,
			CheckDescription: "Public IP addresses not bound to any network interface",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&expiringReservationsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "expiring_reservations",
			CheckCommonName:  "Expiring reservations",
			CheckService:     "Reservations",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Reservation orders expiring soon or recently expired",
			CheckReportType:  "table",
		},
		provider: p,
	})
	return p, nil
}

func (p *provider) Auth(ctx context.Context) error {
	subscription := p.RC.Config.AzureSubscriptionID
	if p.RC.Flags.Subscription != "" {
		subscription = p.RC.Flags.Subscription
	}
	if subscription == "" {
		return fmt.Errorf("no azure subscription configured")
	}

	cfg, err := azureconfig.NewService(subscription)
	if err != nil {
		return fmt.Errorf("building azure credential: %w", err)
	}
	credential := cfg.GetCredential()

	if p.costs, err = azurecostmanagement.NewService(subscription, credential); err != nil {
		return fmt.Errorf("building cost management client: %w", err)
	}
	if p.compute, err = azurecompute.NewService(subscription, credential); err != nil {
		return fmt.Errorf("building compute client: %w", err)
	}
	if p.identity, err = azureidentity.NewService(subscription, credential); err != nil {
		return fmt.Errorf("building subscriptions client: %w", err)
	}
	return nil
}

// Setup treats an unreachable subscription as a non-enrolled provider.
func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	if !runValidation {
		return nil
	}
	if _, err := p.identity.GetSubscriptionInfo(ctx); err != nil {
		p.SetEnrolled(false)
		p.RC.Logger.Warn("azure subscription is unreachable, skipping provider", "error", err)
	}
	return nil
}
