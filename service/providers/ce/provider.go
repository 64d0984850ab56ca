// Package ce is the AWS Cost Explorer provider. Its month-over-month
// report is mandatory because downstream summaries lean on it.
package ce

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/cost-advisor/service/aws/costexplorer"
	awssts "github.com/elC0mpa/cost-advisor/service/aws/sts"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "ce"
	providerLong = "AWS Cost Explorer"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: false,
		Reports:        []string{"monthly_costs", "cost_trend"},
		New:            NewProvider,
	})
}

type provider struct {
	base.Provider

	costs awscostexplorer.CostService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, false)}
	p.AddCheck(&monthlyCostsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "monthly_costs",
			CheckCommonName:  "Month-over-month costs",
			CheckService:     "Cost Explorer",
			CheckDomain:      model.DomainBilling,
			CheckDescription: "Current and previous month costs broken down by service",
			CheckReportType:  "table",
			CheckMandatory:   true,
		},
		provider: p,
	})
	p.AddCheck(&costTrendCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "cost_trend",
			CheckCommonName:  "Six month cost trend",
			CheckService:     "Cost Explorer",
			CheckDomain:      model.DomainBilling,
			CheckDescription: "Total monthly costs over the last six months",
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
	p.costs = awscostexplorer.NewService(cfg)
	return nil
}

func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	// Cost Explorer needs no configuration beyond valid credentials.
	return nil
}
