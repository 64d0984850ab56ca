// Package ta is the AWS Trusted Advisor provider. The Support API behind
// it exists only on Business and Enterprise plans, so an access failure
// during setup marks the account as not enrolled.
package ta

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	awssupport "github.com/elC0mpa/cost-advisor/service/aws/support"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "ta"
	providerLong = "AWS Trusted Advisor"

	// the Support API lives in us-east-1 only
	supportRegion = "us-east-1"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: false,
		Reports:        []string{"cost_checks"},
		New:            NewProvider,
	})
}

type provider struct {
	base.Provider

	support awssupport.SupportService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, false)}
	p.AddCheck(&costChecksCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "cost_checks",
			CheckCommonName:  "Trusted Advisor cost checks",
			CheckService:     "Trusted Advisor",
			CheckDomain:      model.DomainOther,
			CheckDescription: "Cost optimizing checks with their flagged resources and estimates",
			CheckReportType:  "table",
		},
		provider: p,
	})
	return p, nil
}

func (p *provider) Auth(ctx context.Context) error {
	cfg, err := awsconfig.NewService().GetAWSCfg(ctx, supportRegion, p.RC.Config.AWSProfile)
	if err != nil {
		return fmt.Errorf("loading aws configuration: %w", err)
	}
	p.support = awssupport.NewService(cfg)
	return nil
}

func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	if !runValidation {
		return nil
	}
	if _, err := p.support.GetCostOptimizingChecks(ctx); err != nil {
		p.SetEnrolled(false)
		p.RC.Logger.Warn("trusted advisor is unavailable, skipping provider", "error", err)
	}
	return nil
}
