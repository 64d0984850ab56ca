// Package ec2 is the AWS compute waste provider: resources that keep
// billing while doing nothing.
package ec2

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	awsec2 "github.com/elC0mpa/cost-advisor/service/aws/ec2"
	awselb "github.com/elC0mpa/cost-advisor/service/aws/elb"
	awssts "github.com/elC0mpa/cost-advisor/service/aws/sts"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "ec2"
	providerLong = "AWS Compute Waste"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: true,
		Reports: []string{
			"unused_elastic_ips",
			"unused_ebs_volumes",
			"stopped_instances",
			"expiring_reserved_instances",
			"unused_load_balancers",
		},
		New: NewProvider,
	})
}

type provider struct {
	base.Provider

	compute awsec2.EC2Service
	elb     awselb.ELBService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, true)}
	p.AddCheck(&unusedIPsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unused_elastic_ips",
			CheckCommonName:  "Unused Elastic IPs",
			CheckService:     "EC2",
			CheckDomain:      model.DomainNetwork,
			CheckDescription: "Allocated Elastic IP addresses not associated with anything",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&unusedVolumesCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unused_ebs_volumes",
			CheckCommonName:  "Unused EBS volumes",
			CheckService:     "EC2",
			CheckDomain:      model.DomainStorage,
			CheckDescription: "EBS volumes in the available state, attached to nothing",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&stoppedInstancesCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "stopped_instances",
			CheckCommonName:  "Long-stopped instances",
			CheckService:     "EC2",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Instances stopped for over thirty days, still paying for storage",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&expiringReservationsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "expiring_reserved_instances",
			CheckCommonName:  "Expiring reserved instances",
			CheckService:     "EC2",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Reserved instances expiring within thirty days or recently expired",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&unusedLoadBalancersCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "unused_load_balancers",
			CheckCommonName:  "Unused load balancers",
			CheckService:     "ELB",
			CheckDomain:      model.DomainNetwork,
			CheckDescription: "Application and network load balancers with no target groups",
			CheckReportType:  "table",
		},
		provider: p,
	})
	return p, nil
}

func (p *provider) Auth(ctx context.Context) error {
	cfg, err := awsconfig.NewService().GetAWSCfg(ctx, p.RC.Config.AWSRegion, p.RC.Config.AWSProfile)
	if err != nil {
		return fmt.Errorf("loading aws configuration: %w", err)
	}
	if _, err := awssts.NewService(cfg).GetCallerIdentity(ctx); err != nil {
		return fmt.Errorf("verifying aws credentials: %w", err)
	}
	p.compute = awsec2.NewService(cfg)
	p.elb = awselb.NewService(cfg)
	return nil
}

func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	if runValidation && p.RC.Config.AWSRegion == "" {
		return fmt.Errorf("a region is required for compute waste reports")
	}
	return nil
}
