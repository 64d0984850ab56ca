package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
)

type service struct {
	projectID string
}

// ConfigService hands out application default credentials scoped to the
// target project.
type ConfigService interface {
	GetCredentials(ctx context.Context) (*google.Credentials, error)
	GetProjectID() string
}
