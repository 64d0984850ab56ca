package awsec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/utils"
)

const (
	stoppedThreshold = 30 * 24 * time.Hour
	riExpiryWindow   = 30 * 24 * time.Hour
)

func NewService(awsconfig aws.Config) *service {
	return &service{
		client: ec2.NewFromConfig(awsconfig),
	}
}

// GetUnusedElasticIpAddresses returns allocated addresses with no
// association. These bill hourly while idle.
func (s *service) GetUnusedElasticIpAddresses(ctx context.Context) ([]types.Address, error) {
	output, err := s.client.DescribeAddresses(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("describing addresses: %w", err)
	}

	var unused []types.Address
	for _, address := range output.Addresses {
		if address.AssociationId == nil {
			unused = append(unused, address)
		}
	}
	return unused, nil
}

func (s *service) GetUnusedEBSVolumes(ctx context.Context) ([]types.Volume, error) {
	var volumes []types.Volume
	paginator := ec2.NewDescribeVolumesPaginator(s.client, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("status"),
				Values: []string{"available"},
			},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing volumes: %w", err)
		}
		volumes = append(volumes, page.Volumes...)
	}
	return volumes, nil
}

// GetStoppedInstancesInfo returns instances stopped for over 30 days and
// the EBS volumes still attached to stopped instances. Instances whose
// state transition reason carries no parseable timestamp are skipped.
func (s *service) GetStoppedInstancesInfo(ctx context.Context) ([]types.Instance, []types.Volume, error) {
	threshold := time.Now().Add(-stoppedThreshold)

	var longStopped []types.Instance
	var attachedVolumeIDs []string
	paginator := ec2.NewDescribeInstancesPaginator(s.client, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"stopped"},
			},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("describing stopped instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				for _, mapping := range instance.BlockDeviceMappings {
					if mapping.Ebs != nil {
						attachedVolumeIDs = append(attachedVolumeIDs, aws.ToString(mapping.Ebs.VolumeId))
					}
				}

				stoppedAt, err := utils.ParseTransitionDate(aws.ToString(instance.StateTransitionReason))
				if err == nil && stoppedAt.Before(threshold) {
					longStopped = append(longStopped, instance)
				}
			}
		}
	}

	var attachedVolumes []types.Volume
	if len(attachedVolumeIDs) > 0 {
		output, err := s.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			VolumeIds: attachedVolumeIDs,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("describing attached volumes: %w", err)
		}
		attachedVolumes = output.Volumes
	}

	return longStopped, attachedVolumes, nil
}

// GetExpiringReservedInstances returns active reservations ending within
// 30 days plus reservations that ended during the last 30 days.
func (s *service) GetExpiringReservedInstances(ctx context.Context) ([]model.RiExpirationInfo, error) {
	output, err := s.client.DescribeReservedInstances(ctx, &ec2.DescribeReservedInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("state"),
				Values: []string{"active", "retired"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describing reserved instances: %w", err)
	}

	now := time.Now()
	var expirations []model.RiExpirationInfo
	for _, ri := range output.ReservedInstances {
		if ri.End == nil {
			continue
		}
		endTime := *ri.End

		info := model.RiExpirationInfo{
			ReservedInstanceId: aws.ToString(ri.ReservedInstancesId),
			InstanceType:       string(ri.InstanceType),
			ExpirationDate:     endTime,
			DaysUntilExpiry:    int(endTime.Sub(now).Hours() / 24),
			State:              string(ri.State),
		}
		switch {
		case ri.State == types.ReservedInstanceStateActive && endTime.Before(now.Add(riExpiryWindow)):
			info.Status = "EXPIRING SOON"
		case endTime.Before(now) && endTime.After(now.Add(-riExpiryWindow)):
			info.Status = "RECENTLY EXPIRED"
		default:
			continue
		}
		expirations = append(expirations, info)
	}

	return expirations, nil
}
