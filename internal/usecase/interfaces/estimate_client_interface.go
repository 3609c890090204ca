package interfaces

import (
	"context"
	"managrr/internal/domain/entities"
)

// IEstimateClient is the data-access capability the estimates views depend
// on. Errors are returned exactly as the transport produced them.
type IEstimateClient interface {
	CreateEstimate(ctx context.Context, in entities.NewEstimateInput) (entities.Estimate, error)
	ListEstimatesForContract(ctx context.Context, contractID string) ([]entities.Estimate, error)
	ApproveEstimate(ctx context.Context, estimateID string, setAsActive bool) (entities.Estimate, error)
	RejectEstimate(ctx context.Context, estimateID string, reason string) (entities.Estimate, error)
}
