package azurecostmanagement

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/elC0mpa/cost-advisor/model"
)

type service struct {
	subscriptionID string
	client         *armcostmanagement.QueryClient
}

type CostManagementService interface {
	GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
}

// Credential is shared with the other azure service wrappers so a single
// credential chain backs every client.
type Credential = azidentity.DefaultAzureCredential
