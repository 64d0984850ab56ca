package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudbilling/v1"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

func NewService(projectID string) *service {
	return &service{
		projectID: projectID,
	}
}

// GetCredentials resolves application default credentials with every
// scope the gcp services need, so a scope problem surfaces during auth
// instead of in the middle of a run.
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	return google.FindDefaultCredentials(ctx,
		cloudbilling.CloudBillingScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
		compute.ComputeReadonlyScope,
	)
}

func (s *service) GetProjectID() string {
	return s.projectID
}
