package gcpcompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elC0mpa/cost-advisor/model"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

const (
	stoppedThreshold = 30 * 24 * time.Hour
	expiryWindow     = 30 * 24 * time.Hour
)

func NewService(ctx context.Context, projectID string) (*service, error) {
	computeClient, err := compute.NewService(ctx, option.WithScopes(
		compute.ComputeReadonlyScope,
	))
	if err != nil {
		return nil, fmt.Errorf("creating compute client: %w", err)
	}

	return &service{
		projectID:     projectID,
		computeClient: computeClient,
	}, nil
}

// GetUnusedVolumes returns READY persistent disks with no users.
func (s *service) GetUnusedVolumes(ctx context.Context) ([]model.UnusedVolume, error) {
	var volumes []model.UnusedVolume
	err := s.eachZone(ctx, func(zone string) {
		disksResp, err := s.computeClient.Disks.List(s.projectID, zone).Context(ctx).Do()
		if err != nil {
			return
		}
		for _, disk := range disksResp.Items {
			if len(disk.Users) > 0 || disk.Status != "READY" {
				continue
			}
			volumes = append(volumes, model.UnusedVolume{
				ID:     disk.Name,
				SizeGB: int32(disk.SizeGb),
				Status: "available",
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return volumes, nil
}

// GetStoppedInstances returns instances that have sat in TERMINATED state
// for over 30 days, together with the disks still attached to them. A
// terminated instance stops billing for compute but its disks keep
// accruing charges.
func (s *service) GetStoppedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	now := time.Now()

	var instances []model.StoppedInstance
	var attached []model.UnusedVolume
	err := s.eachZone(ctx, func(zone string) {
		instancesResp, err := s.computeClient.Instances.List(s.projectID, zone).
			Filter("status = TERMINATED").
			Context(ctx).Do()
		if err != nil {
			return
		}

		for _, instance := range instancesResp.Items {
			stoppedAt, ok := stopTime(instance)
			if !ok || now.Sub(stoppedAt) < stoppedThreshold {
				continue
			}

			instances = append(instances, model.StoppedInstance{
				ID:          instance.Name,
				Name:        instance.Name,
				StoppedDays: int(now.Sub(stoppedAt).Hours() / 24),
			})
			for _, disk := range instance.Disks {
				if disk.Source == "" {
					continue
				}
				attached = append(attached, model.UnusedVolume{
					ID:     lastPathSegment(disk.Source),
					SizeGB: int32(disk.DiskSizeGb),
					Status: "attached_stopped",
				})
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return instances, attached, nil
}

// stopTime falls back to the creation timestamp when the instance
// predates the lastStopTimestamp field.
func stopTime(instance *compute.Instance) (time.Time, bool) {
	stamp := instance.LastStopTimestamp
	if stamp == "" {
		stamp = instance.CreationTimestamp
	}
	parsed, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// GetUnusedIPs returns reserved external addresses, global and regional,
// that no resource uses.
func (s *service) GetUnusedIPs(ctx context.Context) ([]model.UnusedIP, error) {
	var unused []model.UnusedIP
	collect := func(addresses []*compute.Address) {
		for _, addr := range addresses {
			if len(addr.Users) > 0 || addr.Status != "RESERVED" {
				continue
			}
			unused = append(unused, model.UnusedIP{
				Address:      addr.Address,
				AllocationID: addr.Name,
			})
		}
	}

	if globalResp, err := s.computeClient.GlobalAddresses.List(s.projectID).Context(ctx).Do(); err == nil {
		collect(globalResp.Items)
	}

	err := s.eachRegion(ctx, func(region string) {
		addressesResp, err := s.computeClient.Addresses.List(s.projectID, region).Context(ctx).Do()
		if err != nil {
			return
		}
		collect(addressesResp.Items)
	})
	if err != nil {
		return nil, err
	}
	return unused, nil
}

// GetExpiringReservations returns committed use discounts ending within
// the next 30 days plus those that ended during the last 30 days.
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	now := time.Now()

	var reservations []model.Reservation
	err := s.eachRegion(ctx, func(region string) {
		commitmentsResp, err := s.computeClient.RegionCommitments.List(s.projectID, region).Context(ctx).Do()
		if err != nil {
			return
		}

		for _, commitment := range commitmentsResp.Items {
			endTime, err := time.Parse(time.RFC3339, commitment.EndTimestamp)
			if err != nil {
				continue
			}

			reservation := model.Reservation{
				ID:              commitment.Name,
				InstanceType:    commitment.Type,
				DaysUntilExpiry: int(endTime.Sub(now).Hours() / 24),
			}
			switch {
			case commitment.Status == "ACTIVE" && endTime.After(now) && endTime.Before(now.Add(expiryWindow)):
				reservation.Status = "expiring"
			case endTime.Before(now) && endTime.After(now.Add(-expiryWindow)):
				reservation.Status = "expired"
			default:
				continue
			}
			reservations = append(reservations, reservation)
		}
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// eachZone runs visit for every zone in the project. Per-zone API errors
// are the visitor's problem, only the zone listing itself is fatal.
func (s *service) eachZone(ctx context.Context, visit func(zone string)) error {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("listing zones: %w", err)
	}
	for _, zone := range zonesResp.Items {
		visit(zone.Name)
	}
	return nil
}

func (s *service) eachRegion(ctx context.Context, visit func(region string)) error {
	regionsResp, err := s.computeClient.Regions.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("listing regions: %w", err)
	}
	for _, region := range regionsResp.Items {
		visit(region.Name)
	}
	return nil
}

func lastPathSegment(resourceURL string) string {
	if i := strings.LastIndexByte(resourceURL, '/'); i >= 0 {
		return resourceURL[i+1:]
	}
	return resourceURL
}
