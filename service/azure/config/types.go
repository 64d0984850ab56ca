package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

type service struct {
	subscriptionID string
	credential     *azidentity.DefaultAzureCredential
}

// ConfigService hands out the credential and subscription the run targets.
type ConfigService interface {
	GetCredential() *azidentity.DefaultAzureCredential
	GetSubscriptionID() string
}
