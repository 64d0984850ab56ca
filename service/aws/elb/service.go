package awselb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/elC0mpa/cost-advisor/model"
)

func NewService(awsconfig aws.Config) *service {
	return &service{
		client: elb.NewFromConfig(awsconfig),
	}
}

// GetOrphanedLoadBalancers returns application and network load balancers
// that no target group points at. A balancer without target groups still
// bills by the hour but can route nothing.
func (s *service) GetOrphanedLoadBalancers(ctx context.Context) ([]model.OrphanedLoadBalancer, error) {
	referenced := make(map[string]struct{})
	tgPager := elb.NewDescribeTargetGroupsPaginator(s.client, &elb.DescribeTargetGroupsInput{})
	for tgPager.HasMorePages() {
		page, err := tgPager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing target groups: %w", err)
		}
		for _, tg := range page.TargetGroups {
			for _, lbArn := range tg.LoadBalancerArns {
				referenced[lbArn] = struct{}{}
			}
		}
	}

	var orphaned []model.OrphanedLoadBalancer
	lbPager := elb.NewDescribeLoadBalancersPaginator(s.client, &elb.DescribeLoadBalancersInput{})
	for lbPager.HasMorePages() {
		page, err := lbPager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing load balancers: %w", err)
		}
		for _, lb := range page.LoadBalancers {
			if lb.Type != types.LoadBalancerTypeEnumApplication && lb.Type != types.LoadBalancerTypeEnumNetwork {
				continue
			}
			if _, used := referenced[aws.ToString(lb.LoadBalancerArn)]; used {
				continue
			}
			balancer := model.OrphanedLoadBalancer{
				Name: aws.ToString(lb.LoadBalancerName),
				Type: string(lb.Type),
			}
			if lb.CreatedTime != nil {
				balancer.CreatedAt = *lb.CreatedTime
			}
			orphaned = append(orphaned, balancer)
		}
	}

	return orphaned, nil
}
