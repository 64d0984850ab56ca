package awssupport

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/support"
)

type service struct {
	client *support.Client
}

// CheckSummary is one Trusted Advisor check with its flagged resources.
type CheckSummary struct {
	CheckID          string
	Name             string
	Category         string
	Status           string
	EstimatedSavings float64
	FlaggedResources [][]string
	Metadata         []string
}

type SupportService interface {
	GetCostOptimizingChecks(ctx context.Context) ([]CheckSummary, error)
	GetCheckResult(ctx context.Context, checkID string) (*CheckSummary, error)
}
