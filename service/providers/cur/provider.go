// Package cur is the AWS billing-export provider. It runs its reports as
// Athena SQL against the cost and usage table and owns the schema
// inspection the precondition resolver depends on.
package cur

import (
	"context"
	"errors"
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service"
	awsathena "github.com/elC0mpa/cost-advisor/service/aws/athena"
	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	awssts "github.com/elC0mpa/cost-advisor/service/aws/sts"
	"github.com/elC0mpa/cost-advisor/service/providers/base"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

const (
	providerName = "cur"
	providerLong = "AWS Cost and Usage Report (Athena)"
)

var errNotConfigured = errors.New("billing export is not configured")

func init() {
	registry.Register(registry.Descriptor{
		Name:           providerName,
		LongName:       providerLong,
		RequiresRegion: false,
		Reports:        []string{"graviton_savings", "idle_nat_gateways"},
		New:            NewProvider,
	})
}

type provider struct {
	base.Provider

	athena awsathena.AthenaService
	table  string
}

func NewProvider(rc *runcontext.Context) (service.Provider, error) {
	p := &provider{Provider: base.New(rc, providerName, providerLong, false)}
	p.AddCheck(&avgInstanceCostCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "avg_instance_cost",
			CheckCommonName:  "Average instance cost",
			CheckService:     "Athena",
			CheckDomain:      model.DomainBilling,
			CheckDescription: "Average unblended cost per EC2 instance type across the billing export",
			CheckReportType:  "table",
			Precheck:         true,
		},
		provider: p,
	})
	p.AddCheck(&gravitonSavingsCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "graviton_savings",
			CheckCommonName:  "Graviton migration savings",
			CheckService:     "EC2",
			CheckDomain:      model.DomainCompute,
			CheckDescription: "EC2 spend on x86 instance types that have a Graviton equivalent",
			CheckReportType:  "table",
		},
		provider: p,
	})
	p.AddCheck(&idleNatGatewaysCheck{
		CheckInfo: base.CheckInfo{
			CheckName:        "idle_nat_gateways",
			CheckCommonName:  "Idle NAT gateways",
			CheckService:     "VPC",
			CheckDomain:      model.DomainNetwork,
			CheckDescription: "NAT gateways accruing hourly charges with no data processed",
			CheckReportType:  "table",
		},
		provider: p,
	})
	return p, nil
}

func (p *provider) Auth(ctx context.Context) error {
	cfg, err := awsconfig.NewService().GetAWSCfg(ctx, p.RC.Config.CurRegion, p.RC.Config.AWSProfile)
	if err != nil {
		return fmt.Errorf("loading aws configuration: %w", err)
	}
	if _, err := awssts.NewService(cfg).GetCallerIdentity(ctx); err != nil {
		return fmt.Errorf("verifying aws credentials: %w", err)
	}

	output := fmt.Sprintf("s3://%s/athena-results/", p.RC.Config.CurS3Bucket)
	p.athena = awsathena.NewService(cfg, p.RC.Config.CurDatabase, output)
	p.table = p.RC.Config.CurTable
	return nil
}

// Setup validates the Athena configuration. The precondition resolver
// calls it with runValidation false before Auth has necessarily happened,
// so it also builds the Athena client if needed.
func (p *provider) Setup(ctx context.Context, runValidation bool) error {
	if p.RC.Config.CurDatabase == "" || p.RC.Config.CurTable == "" {
		return fmt.Errorf("%w: database and table are required", errNotConfigured)
	}

	if p.athena == nil {
		if err := p.Auth(ctx); err != nil {
			return err
		}
	}

	if runValidation && p.RC.Config.CurS3Bucket == "" {
		return fmt.Errorf("%w: query result bucket is required", errNotConfigured)
	}
	return nil
}

// ShowColumns lists the billing export table columns for schema
// classification.
func (p *provider) ShowColumns(ctx context.Context) ([]string, error) {
	return p.athena.ShowColumns(ctx, p.table)
}
