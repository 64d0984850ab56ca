package azurecompute

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	subscriptionID     string
	disksClient        *armcompute.DisksClient
	vmClient           *armcompute.VirtualMachinesClient
	publicIPClient     *armnetwork.PublicIPAddressesClient
	reservationsClient *armreservations.ReservationOrderClient
}

// ComputeService exposes subscription resources in provider-neutral
// shapes so the checks stay free of SDK types.
type ComputeService interface {
	GetUnusedVolumes(ctx context.Context) ([]model.UnusedVolume, error)
	GetUnusedIPs(ctx context.Context) ([]model.UnusedIP, error)
	GetStoppedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}

// Credential is shared with the other azure service wrappers so a single
// credential chain backs every client.
type Credential = azidentity.DefaultAzureCredential
