package usecase

import (
	"context"
	"errors"
	"managrr/internal/domain/entities"
	"managrr/internal/usecase/interfaces"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEstimateNotFound        = errors.New("estimate not found")
	ErrEstimateFinalized       = errors.New("estimate already finalized")
	ErrInvalidContractID       = errors.New("invalid contract_id")
	ErrInvalidEstimateID       = errors.New("invalid estimate id")
	ErrInvalidEstimateVal      = errors.New("invalid estimate value")
	ErrInvalidDescription      = errors.New("invalid estimate description")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
)

// IEstimateUseCase exposes the estimate operations of the sandbox API.
//
// These mirror the REST contract the estimates client consumes:
//   - POST /estimates => Submit()
//   - GET /estimates/contract/{contractId} => ListByContract()
//   - POST /estimates/{id}/approve => Approve()
//   - POST /estimates/{id}/reject => Reject()

type IEstimateUseCase interface {
	Submit(ctx context.Context, in entities.NewEstimateInput) (entities.Estimate, error)
	ListByContract(ctx context.Context, contractID string) ([]entities.Estimate, error)
	Approve(ctx context.Context, estimateID string, setAsActive bool) (entities.Estimate, error)
	Reject(ctx context.Context, estimateID string, reason string) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
}

type EstimateUseCase struct {
	repo interfaces.IEstimateRepository
	now  func() time.Time
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (u *EstimateUseCase) Submit(ctx context.Context, in entities.NewEstimateInput) (entities.Estimate, error) {
	contractID := strings.TrimSpace(in.ContractID)
	if contractID == "" {
		return entities.Estimate{}, ErrInvalidContractID
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return entities.Estimate{}, ErrInvalidEstimateVal
	}
	if strings.TrimSpace(in.Description) == "" {
		return entities.Estimate{}, ErrInvalidDescription
	}

	now := u.now()
	e := entities.Estimate{
		ID:          uuid.NewString(),
		ContractID:  contractID,
		Amount:      in.Amount,
		Description: in.Description,
		Status:      entities.EstimateStatusPending,
		IsActive:    false,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.repo.Create(ctx, e)
	if err != nil {
		log.WithField("contract_id", contractID).WithError(err).Error("[estimate][usecase] create failed")
		return entities.Estimate{}, err
	}
	log.WithFields(log.Fields{"contract_id": contractID, "estimate_id": created.ID}).Info("[estimate][usecase] submitted")
	return created, nil
}

func (u *EstimateUseCase) ListByContract(ctx context.Context, contractID string) ([]entities.Estimate, error) {
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return nil, ErrInvalidContractID
	}
	return u.repo.ListByContractID(ctx, contractID)
}

func (u *EstimateUseCase) Approve(ctx context.Context, estimateID string, setAsActive bool) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if _, err := u.loadPending(ctx, estimateID); err != nil {
		return entities.Estimate{}, err
	}

	updated, err := u.repo.Approve(ctx, estimateID, u.now(), setAsActive)
	if err != nil {
		log.WithField("estimate_id", estimateID).WithError(err).Error("[estimate][usecase] approve failed")
		return entities.Estimate{}, err
	}
	// Someone else finalized it between the read and the conditional write.
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateFinalized
	}
	log.WithFields(log.Fields{"estimate_id": estimateID, "set_as_active": setAsActive}).Info("[estimate][usecase] approved")
	return updated, nil
}

func (u *EstimateUseCase) Reject(ctx context.Context, estimateID string, reason string) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if strings.TrimSpace(reason) == "" {
		return entities.Estimate{}, ErrRejectionReasonRequired
	}
	if _, err := u.loadPending(ctx, estimateID); err != nil {
		return entities.Estimate{}, err
	}

	updated, err := u.repo.Reject(ctx, estimateID, u.now(), reason)
	if err != nil {
		log.WithField("estimate_id", estimateID).WithError(err).Error("[estimate][usecase] reject failed")
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateFinalized
	}
	log.WithField("estimate_id", estimateID).Info("[estimate][usecase] rejected")
	return updated, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) loadPending(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Status.IsFinal() {
		return entities.Estimate{}, ErrEstimateFinalized
	}
	return e, nil
}
