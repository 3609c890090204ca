package interfaces

import (
	"context"
	"managrr/internal/domain/entities"
	"time"
)

// IEstimateRepository abstracts persistence for Estimate in the sandbox API.
//
// Lookups return a zero Estimate (empty ID) and a nil error when nothing
// matches. Approve and Reject only touch pending estimates; when the estimate
// is no longer pending they return a zero Estimate.
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ListByContractID(ctx context.Context, contractID string) ([]entities.Estimate, error)
	Approve(ctx context.Context, id string, approvedAt time.Time, setAsActive bool) (entities.Estimate, error)
	Reject(ctx context.Context, id string, rejectedAt time.Time, reason string) (entities.Estimate, error)
}
