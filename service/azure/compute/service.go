package azurecompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/elC0mpa/cost-advisor/model"
)

const reservationExpiryWindow = 30 * 24 * time.Hour

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("creating disks client: %w", err)
	}
	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("creating virtual machines client: %w", err)
	}
	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("creating public ip client: %w", err)
	}
	reservationsClient, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("creating reservations client: %w", err)
	}

	return &service{
		subscriptionID:     subscriptionID,
		disksClient:        disksClient,
		vmClient:           vmClient,
		publicIPClient:     publicIPClient,
		reservationsClient: reservationsClient,
	}, nil
}

// GetUnusedVolumes returns managed disks whose DiskState is Unattached.
func (s *service) GetUnusedVolumes(ctx context.Context) ([]model.UnusedVolume, error) {
	var volumes []model.UnusedVolume

	pager := s.disksClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing managed disks: %w", err)
		}

		for _, disk := range page.Value {
			if disk.Properties == nil || disk.Properties.DiskState == nil {
				continue
			}
			if *disk.Properties.DiskState != armcompute.DiskStateUnattached {
				continue
			}

			volume := model.UnusedVolume{Status: "available"}
			if disk.Name != nil {
				volume.ID = *disk.Name
			}
			if disk.Properties.DiskSizeGB != nil {
				volume.SizeGB = *disk.Properties.DiskSizeGB
			}
			volumes = append(volumes, volume)
		}
	}

	return volumes, nil
}

// GetStoppedInstances returns deallocated virtual machines along with the
// managed disks still attached to them. The deallocation timestamp is not
// part of the VM resource, only Activity Logs carry it, so StoppedDays is
// reported as -1.
func (s *service) GetStoppedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	var instances []model.StoppedInstance
	var attached []model.UnusedVolume

	pager := s.vmClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("listing virtual machines: %w", err)
		}

		for _, vm := range page.Value {
			if vm.ID == nil || vm.Name == nil {
				continue
			}

			deallocated, err := s.isDeallocated(ctx, resourceGroupOf(*vm.ID), *vm.Name)
			if err != nil || !deallocated {
				continue
			}

			instances = append(instances, model.StoppedInstance{
				ID:          *vm.Name,
				Name:        *vm.Name,
				StoppedDays: -1,
			})
			attached = append(attached, attachedDisks(vm)...)
		}
	}

	return instances, attached, nil
}

func (s *service) isDeallocated(ctx context.Context, resourceGroup, vmName string) (bool, error) {
	view, err := s.vmClient.InstanceView(ctx, resourceGroup, vmName, nil)
	if err != nil {
		return false, err
	}
	for _, status := range view.Statuses {
		if status.Code != nil && strings.HasPrefix(*status.Code, "PowerState/deallocated") {
			return true, nil
		}
	}
	return false, nil
}

func attachedDisks(vm *armcompute.VirtualMachine) []model.UnusedVolume {
	if vm.Properties == nil || vm.Properties.StorageProfile == nil {
		return nil
	}
	profile := vm.Properties.StorageProfile

	var disks []model.UnusedVolume
	if osDisk := profile.OSDisk; osDisk != nil && osDisk.ManagedDisk != nil && osDisk.ManagedDisk.ID != nil {
		volume := model.UnusedVolume{
			ID:     resourceNameOf(*osDisk.ManagedDisk.ID),
			Status: "attached_stopped",
		}
		if osDisk.DiskSizeGB != nil {
			volume.SizeGB = *osDisk.DiskSizeGB
		}
		disks = append(disks, volume)
	}
	for _, dataDisk := range profile.DataDisks {
		if dataDisk.ManagedDisk == nil || dataDisk.ManagedDisk.ID == nil {
			continue
		}
		volume := model.UnusedVolume{
			ID:     resourceNameOf(*dataDisk.ManagedDisk.ID),
			Status: "attached_stopped",
		}
		if dataDisk.DiskSizeGB != nil {
			volume.SizeGB = *dataDisk.DiskSizeGB
		}
		disks = append(disks, volume)
	}
	return disks
}

// GetUnusedIPs returns public IP addresses with no IP configuration,
// meaning they are reserved but associated with nothing.
func (s *service) GetUnusedIPs(ctx context.Context) ([]model.UnusedIP, error) {
	var unused []model.UnusedIP

	pager := s.publicIPClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing public ips: %w", err)
		}

		for _, ip := range page.Value {
			if ip.Properties == nil || ip.Properties.IPConfiguration != nil {
				continue
			}

			entry := model.UnusedIP{}
			if ip.Properties.IPAddress != nil {
				entry.Address = *ip.Properties.IPAddress
			}
			if ip.Name != nil {
				entry.AllocationID = *ip.Name
			}
			unused = append(unused, entry)
		}
	}

	return unused, nil
}

// GetExpiringReservations returns reservation orders expiring within the
// next 30 days plus orders that expired during the last 30 days.
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	now := time.Now()
	var reservations []model.Reservation

	pager := s.reservationsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			// listing reservation orders needs a directory-level
			// permission many subscriptions lack
			return reservations, nil
		}

		for _, order := range page.Value {
			if order.Properties == nil || order.Properties.ExpiryDate == nil {
				continue
			}

			reservation := model.Reservation{
				DaysUntilExpiry: int(order.Properties.ExpiryDate.Sub(now).Hours() / 24),
			}
			if order.Name != nil {
				reservation.ID = *order.Name
			}
			if order.Properties.DisplayName != nil {
				reservation.InstanceType = *order.Properties.DisplayName
			}

			expiry := *order.Properties.ExpiryDate
			switch {
			case isActiveOrder(order) && expiry.After(now) && expiry.Before(now.Add(reservationExpiryWindow)):
				reservation.Status = "expiring"
			case expiry.Before(now) && expiry.After(now.Add(-reservationExpiryWindow)):
				reservation.Status = "expired"
			default:
				continue
			}
			reservations = append(reservations, reservation)
		}
	}

	return reservations, nil
}

func isActiveOrder(order *armreservations.ReservationOrderResponse) bool {
	return order.Properties.ProvisioningState != nil &&
		*order.Properties.ProvisioningState == armreservations.ProvisioningStateSucceeded
}

func resourceNameOf(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	return parts[len(parts)-1]
}

// resourceGroupOf pulls the resource group segment out of a full
// resource id, /subscriptions/<id>/resourceGroups/<group>/...
func resourceGroupOf(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
