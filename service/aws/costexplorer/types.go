package awscostexplorer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	client *costexplorer.Client
}

type CostService interface {
	GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error)
}
