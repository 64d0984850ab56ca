package awscomputeoptimizer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
)

type service struct {
	client *computeoptimizer.Client
}

// InstanceRecommendation is one rightsizing finding.
type InstanceRecommendation struct {
	InstanceArn      string
	InstanceName     string
	CurrentType      string
	Finding          string
	RecommendedType  string
	EstimatedSavings float64
}

type OptimizerService interface {
	GetEnrollmentStatus(ctx context.Context) (bool, error)
	GetInstanceRecommendations(ctx context.Context) ([]InstanceRecommendation, error)
}
