package awsssm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

func NewService(awsconfig aws.Config) *service {
	client := ssm.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// Fetch reads a parameter value, decrypting SecureString parameters.
func (s *service) Fetch(ctx context.Context, name string) (string, error) {
	output, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("fetching parameter %s: %w", name, err)
	}
	return aws.ToString(output.Parameter.Value), nil
}
