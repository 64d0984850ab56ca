// Package co is the AWS Compute Optimizer provider. Accounts that never
// opted in to the service are skipped, not failed.
package co

import (
	"context"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	awscomputeoptimizer "github.com/elC0mpa/cost-advisor/service/aws/computeoptimizer"
	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "co"
	providerLong = "AWS Compute Optimizer"
)

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: true,
		Reports:        []string{"rightsizing"},
		New:            NewProvider,
	})
}

type provider struct {
	base.Provider

	optimizer awscomputeoptimizer.OptimizerService
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, true)}
	p.AddCheck(&rightsizingCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "rightsizing",
			CheckCommonName:  "Instance rightsizing",
			CheckService:     "Compute Optimizer",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "Over-provisioned EC2 instances with a cheaper recommended type",
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
	p.optimizer = awscomputeoptimizer.NewService(cfg)
	return nil
}

// Setup resolves the enrollment status. A non-enrolled account flips the
// provider to skipped without raising an error.
func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	enrolled, err := p.optimizer.GetEnrollmentStatus(ctx)
	if err != nil {
		return fmt.Errorf("checking compute optimizer enrollment: %w", err)
	}
	p.SetEnrolled(enrolled)
	if !enrolled {
		p.RC.Logger.Warn("account is not enrolled in compute optimizer, skipping provider")
	}
	return nil
}
