package gcpidentity

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context, projectID string) (*service, error) {
	client, err := cloudresourcemanager.NewService(ctx, option.WithScopes(
		cloudresourcemanager.CloudPlatformReadOnlyScope,
	))
	if err != nil {
		return nil, fmt.Errorf("creating resource manager client: %w", err)
	}

	return &service{
		projectID: projectID,
		client:    client,
	}, nil
}

// GetProjectInfo resolves the configured project, doubling as the
// permission probe during setup.
func (s *service) GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error) {
	project, err := s.client.Projects.Get(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("resolving project %s: %w", s.projectID, err)
	}
	return project, nil
}
