package gcpidentity

import (
	"context"

	"google.golang.org/api/cloudresourcemanager/v1"
)

type service struct {
	projectID string
	client    *cloudresourcemanager.Service
}

type IdentityService interface {
	GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error)
}
