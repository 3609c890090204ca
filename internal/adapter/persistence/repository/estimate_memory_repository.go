package repository

import (
	"context"
	"sync"
	"time"

	"managrr/internal/domain/entities"
	"managrr/internal/usecase/interfaces"
)

// EstimateMemoryRepository keeps estimates in process memory. It backs the
// sandbox API when no DynamoDB table is configured.
type EstimateMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Estimate
}

var _ interfaces.IEstimateRepository = (*EstimateMemoryRepository)(nil)

func NewEstimateMemoryRepository(seed ...entities.Estimate) *EstimateMemoryRepository {
	r := &EstimateMemoryRepository{items: make(map[string]entities.Estimate, len(seed))}
	for _, e := range seed {
		r.items[e.ID] = cloneEstimate(e)
	}
	return r
}

func (r *EstimateMemoryRepository) Create(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = cloneEstimate(e)
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) GetByID(_ context.Context, id string) (entities.Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return entities.Estimate{}, nil
	}
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) ListByContractID(_ context.Context, contractID string) ([]entities.Estimate, error) {
	r.mu.RLock()
	out := make([]entities.Estimate, 0)
	for _, e := range r.items {
		if e.ContractID == contractID {
			out = append(out, cloneEstimate(e))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (r *EstimateMemoryRepository) Approve(_ context.Context, id string, approvedAt time.Time, setAsActive bool) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.Status != entities.EstimateStatusPending {
		return entities.Estimate{}, nil
	}
	if setAsActive {
		for k, other := range r.items {
			if other.ContractID == e.ContractID && other.IsActive {
				other.IsActive = false
				other.UpdatedAt = approvedAt
				r.items[k] = other
			}
		}
	}

	at := approvedAt
	e.Status = entities.EstimateStatusApproved
	e.ApprovedAt = &at
	e.IsActive = setAsActive
	e.UpdatedAt = approvedAt
	r.items[id] = e
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) Reject(_ context.Context, id string, rejectedAt time.Time, reason string) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.Status != entities.EstimateStatusPending {
		return entities.Estimate{}, nil
	}

	at := rejectedAt
	why := reason
	e.Status = entities.EstimateStatusRejected
	e.RejectedAt = &at
	e.RejectionReason = &why
	e.IsActive = false
	e.UpdatedAt = rejectedAt
	r.items[id] = e
	return cloneEstimate(e), nil
}

func cloneEstimate(e entities.Estimate) entities.Estimate {
	if e.ApprovedAt != nil {
		t := *e.ApprovedAt
		e.ApprovedAt = &t
	}
	if e.RejectedAt != nil {
		t := *e.RejectedAt
		e.RejectedAt = &t
	}
	if e.RejectionReason != nil {
		s := *e.RejectionReason
		e.RejectionReason = &s
	}
	return e
}
