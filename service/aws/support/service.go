package awssupport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/support"
)

const costOptimizingCategory = "cost_optimizing"

// NewService builds a Trusted Advisor client. The Support API requires a
// Business or Enterprise support plan; callers treat access errors as a
// non-enrolled account.
func NewService(awsconfig aws.Config) *service {
	client := support.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

func (s *service) GetCostOptimizingChecks(ctx context.Context) ([]CheckSummary, error) {
	output, err := s.client.DescribeTrustedAdvisorChecks(ctx, &support.DescribeTrustedAdvisorChecksInput{
		Language: aws.String("en"),
	})
	if err != nil {
		return nil, fmt.Errorf("describing trusted advisor checks: %w", err)
	}

	var checks []CheckSummary
	for _, check := range output.Checks {
		if aws.ToString(check.Category) != costOptimizingCategory {
			continue
		}
		checks = append(checks, CheckSummary{
			CheckID:  aws.ToString(check.Id),
			Name:     aws.ToString(check.Name),
			Category: aws.ToString(check.Category),
			Metadata: aws.ToStringSlice(check.Metadata),
		})
	}
	return checks, nil
}

func (s *service) GetCheckResult(ctx context.Context, checkID string) (*CheckSummary, error) {
	output, err := s.client.DescribeTrustedAdvisorCheckResult(ctx, &support.DescribeTrustedAdvisorCheckResultInput{
		CheckId:  aws.String(checkID),
		Language: aws.String("en"),
	})
	if err != nil {
		return nil, fmt.Errorf("describing trusted advisor check result %s: %w", checkID, err)
	}

	result := output.Result
	summary := &CheckSummary{
		CheckID: checkID,
		Status:  aws.ToString(result.Status),
	}

	if result.CategorySpecificSummary != nil && result.CategorySpecificSummary.CostOptimizing != nil {
		summary.EstimatedSavings = result.CategorySpecificSummary.CostOptimizing.EstimatedMonthlySavings
	}

	for _, resource := range result.FlaggedResources {
		summary.FlaggedResources = append(summary.FlaggedResources, aws.ToStringSlice(resource.Metadata))
	}

	return summary, nil
}
