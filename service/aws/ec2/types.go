package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	client *ec2.Client
}

type EC2Service interface {
	GetUnusedElasticIpAddresses(ctx context.Context) ([]types.Address, error)
	GetUnusedEBSVolumes(ctx context.Context) ([]types.Volume, error)
	GetStoppedInstancesInfo(ctx context.Context) ([]types.Instance, []types.Volume, error)
	GetExpiringReservedInstances(ctx context.Context) ([]model.RiExpirationInfo, error)
}
