package awscomputeoptimizer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer/types"
)

func NewService(awsconfig aws.Config) *service {
	client := computeoptimizer.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// GetEnrollmentStatus reports whether Compute Optimizer is active for the
// account.
func (s *service) GetEnrollmentStatus(ctx context.Context) (bool, error) {
	output, err := s.client.GetEnrollmentStatus(ctx, &computeoptimizer.GetEnrollmentStatusInput{})
	if err != nil {
		return false, fmt.Errorf("getting compute optimizer enrollment status: %w", err)
	}

	return output.Status == types.StatusActive, nil
}

func (s *service) GetInstanceRecommendations(ctx context.Context) ([]InstanceRecommendation, error) {
	var recommendations []InstanceRecommendation

	input := &computeoptimizer.GetEC2InstanceRecommendationsInput{}
	for {
		output, err := s.client.GetEC2InstanceRecommendations(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("getting instance recommendations: %w", err)
		}

		for _, rec := range output.InstanceRecommendations {
			recommendation := InstanceRecommendation{
				InstanceArn:  aws.ToString(rec.InstanceArn),
				InstanceName: aws.ToString(rec.InstanceName),
				CurrentType:  aws.ToString(rec.CurrentInstanceType),
				Finding:      string(rec.Finding),
			}

			if len(rec.RecommendationOptions) > 0 {
				option := rec.RecommendationOptions[0]
				recommendation.RecommendedType = aws.ToString(option.InstanceType)
				if option.SavingsOpportunity != nil && option.SavingsOpportunity.EstimatedMonthlySavings != nil {
					recommendation.EstimatedSavings = option.SavingsOpportunity.EstimatedMonthlySavings.Value
				}
			}

			recommendations = append(recommendations, recommendation)
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	return recommendations, nil
}
