package gcpbilling

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	projectID      string
	billingAccount string
	bqClient       *bigquery.Client
}

type BillingService interface {
	GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
}
