// Package client talks to the estimates REST backend on behalf of the views.
package client

import (
	"context"
	"net/url"

	"managrr/internal/domain/entities"
	"managrr/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

// JSONClient is the transport the estimate client rides on. It resolves
// paths against its base URL and decodes JSON bodies into out.
type JSONClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

type createEstimateBody struct {
	ContractID  string  `json:"contract_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type approveEstimateBody struct {
	SetAsActive bool `json:"set_as_active"`
}

type rejectEstimateBody struct {
	Reason string `json:"reason"`
}

// EstimateClient maps each estimate operation onto exactly one HTTP call.
// Transport errors are returned unchanged.
type EstimateClient struct {
	http JSONClient
}

var _ interfaces.IEstimateClient = (*EstimateClient)(nil)

func NewEstimateClient(http JSONClient) *EstimateClient {
	return &EstimateClient{http: http}
}

func (c *EstimateClient) CreateEstimate(ctx context.Context, in entities.NewEstimateInput) (entities.Estimate, error) {
	var out entities.Estimate
	err := c.http.Post(ctx, "/estimates", createEstimateBody{
		ContractID:  in.ContractID,
		Amount:      in.Amount,
		Description: in.Description,
	}, &out)
	if err != nil {
		return entities.Estimate{}, err
	}
	log.WithFields(log.Fields{"contract_id": in.ContractID, "estimate_id": out.ID}).Debug("[estimate][client] created")
	return out, nil
}

func (c *EstimateClient) ListEstimatesForContract(ctx context.Context, contractID string) ([]entities.Estimate, error) {
	var out []entities.Estimate
	if err := c.http.Get(ctx, "/estimates/contract/"+url.PathEscape(contractID), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []entities.Estimate{}
	}
	return out, nil
}

func (c *EstimateClient) ApproveEstimate(ctx context.Context, estimateID string, setAsActive bool) (entities.Estimate, error) {
	var out entities.Estimate
	path := "/estimates/" + url.PathEscape(estimateID) + "/approve"
	if err := c.http.Post(ctx, path, approveEstimateBody{SetAsActive: setAsActive}, &out); err != nil {
		return entities.Estimate{}, err
	}
	return out, nil
}

func (c *EstimateClient) RejectEstimate(ctx context.Context, estimateID string, reason string) (entities.Estimate, error) {
	var out entities.Estimate
	path := "/estimates/" + url.PathEscape(estimateID) + "/reject"
	if err := c.http.Post(ctx, path, rejectEstimateBody{Reason: reason}, &out); err != nil {
		return entities.Estimate{}, err
	}
	return out, nil
}
