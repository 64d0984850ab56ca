package awselb

import (
	"context"

	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	client *elb.Client
}

// ELBService reports load balancers that route no traffic.
type ELBService interface {
	GetOrphanedLoadBalancers(ctx context.Context) ([]model.OrphanedLoadBalancer, error)
}
