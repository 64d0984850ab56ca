package flag

import (
	"flag"
	"strings"

	"github.com/elC0mpa/cost-advisor/model"
)

func NewService() *service {
	return &service{}
}

func (s *service) GetParsedFlags() (model.Flags, error) {
	ssmParameter := flag.String("ssm-parameter", "", "SSM parameter holding the report request YAML")
	requestFile := flag.String("request-file", "", "Local report request YAML")
	checks := flag.String("checks", "", "Comma-separated check names, or ALL")
	executionMode := flag.String("execution-mode", "sync", "Report execution mode")
	region := flag.String("region", "", "AWS region")
	profile := flag.String("profile", "", "AWS profile configuration")
	curDatabase := flag.String("cur-database", "", "Athena database holding the billing export")
	curTable := flag.String("cur-table", "", "Billing export table name")
	curRegion := flag.String("cur-region", "", "Region of the billing export")
	subscription := flag.String("subscription", "", "Azure subscription id")
	project := flag.String("project", "", "GCP project id")
	billingAccount := flag.String("billing-account", "", "GCP billing account id")
	outputDir := flag.String("output-dir", "", "Directory for CSV and JSON exports")
	noChart := flag.Bool("no-chart", false, "Skip the savings bar chart")

	flag.Parse()

	var checkList []string
	if *checks != "" {
		checkList = strings.Split(*checks, ",")
	}

	return model.Flags{
		SSMParameter:   *ssmParameter,
		RequestFile:    *requestFile,
		Checks:         checkList,
		ExecutionMode:  *executionMode,
		Region:         *region,
		Profile:        *profile,
		CurDatabase:    *curDatabase,
		CurTable:       *curTable,
		CurRegion:      *curRegion,
		Subscription:   *subscription,
		Project:        *project,
		BillingAccount: *billingAccount,
		OutputDir:      *outputDir,
		NoChart:        *noChart,
	}, nil
}
