package gcpcompute

import (
	"context"

	"github.com/elC0mpa/cost-advisor/model"
	"google.golang.org/api/compute/v1"
)

type service struct {
	projectID     string
	computeClient *compute.Service
}

// ComputeService exposes project resources in provider-neutral shapes so
// the checks stay free of SDK types.
type ComputeService interface {
	GetUnusedVolumes(ctx context.Context) ([]model.UnusedVolume, error)
	GetUnusedIPs(ctx context.Context) ([]model.UnusedIP, error)
	GetStoppedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}
