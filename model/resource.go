package model

import "time"

// UnusedVolume represents an unused storage volume
type UnusedVolume struct {
	ID     string
	SizeGB int32
	Status string // "available", "attached_stopped"
}

// StoppedInstance represents a stopped compute instance
type StoppedInstance struct {
	ID          string
	Name        string
	StoppedDays int
}

// UnusedIP represents an unassociated IP address
type UnusedIP struct {
	Address      string
	AllocationID string
}

// Reservation represents a reserved instance/commitment
type Reservation struct {
	ID              string
	InstanceType    string
	Status          string // "expiring", "expired"
	DaysUntilExpiry int
}

// OrphanedLoadBalancer represents a load balancer with no targets behind it
type OrphanedLoadBalancer struct {
	Name      string
	Type      string
	CreatedAt time.Time
}

// RiExpirationInfo contains reserved instance expiration information
type RiExpirationInfo struct {
	ReservedInstanceId string
	InstanceType       string
	ExpirationDate     time.Time
	DaysUntilExpiry    int
	State              string
	Status             string
}
