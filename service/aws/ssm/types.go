package awsssm

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type service struct {
	client *ssm.Client
}

type SSMService interface {
	Fetch(ctx context.Context, name string) (string, error)
}
