package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	awsconfig "github.com/elC0mpa/cost-advisor/service/aws/config"
	awsssm "github.com/elC0mpa/cost-advisor/service/aws/ssm"
	"github.com/elC0mpa/cost-advisor/service/configstore"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/flag"
	"github.com/elC0mpa/cost-advisor/service/output"
	"github.com/elC0mpa/cost-advisor/service/precondition"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/request"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
	"github.com/elC0mpa/cost-advisor/utils"

	// Provider registrations.
	_ "github.com/elC0mpa/cost-advisor/service/providers/azure"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ce"
	_ "github.com/elC0mpa/cost-advisor/service/providers/co"
	_ "github.com/elC0mpa/cost-advisor/service/providers/cur"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ec2"
	_ "github.com/elC0mpa/cost-advisor/service/providers/gcp"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ta"
)

func main() {
	utils.DrawBanner()

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cost-advisor: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	flags, err := flag.NewService().GetParsedFlags()
	if err != nil {
		return err
	}

	rc, err := runcontext.New(flags, os.Stderr)
	if err != nil {
		return err
	}

	workdir, err := os.Getwd()
	if err != nil {
		return err
	}

	fetcher, err := parameterFetcher(ctx, rc)
	if err != nil {
		return err
	}

	parser := request.NewService(workdir, fetcher, registry.NewCatalog())
	rc.Request, err = parser.Resolve(ctx, flags)
	if err != nil {
		return err
	}
	rc.Logger.Info("resolved report request", "enabled_reports", rc.Request.EnabledCount())

	loader := registry.NewLoader(workdir, rc)

	if err := precondition.NewService(rc, loader).Run(ctx); err != nil {
		if errors.Is(err, precondition.ErrPreconditionFatal) {
			return err
		}
		return fmt.Errorf("precondition resolution: %w", err)
	}

	store, err := configstore.NewService(rc.Config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	utils.StartSpinner("Running cost reports")
	result, err := controller.NewService(rc, loader).Run(ctx)
	utils.StopSpinner()
	if err != nil {
		return err
	}

	return output.NewService(rc, store).Render(ctx, result)
}

// parameterFetcher wires the SSM-backed request source only when the run
// actually asks for one.
func parameterFetcher(ctx context.Context, rc *runcontext.Context) (request.ParameterFetcher, error) {
	if rc.Flags.SSMParameter == "" {
		return nil, nil
	}
	cfg, err := awsconfig.NewService().GetAWSCfg(ctx, rc.Config.AWSRegion, rc.Config.AWSProfile)
	if err != nil {
		return nil, fmt.Errorf("loading aws configuration for request fetch: %w", err)
	}
	return awsssm.NewService(cfg), nil
}
