package request

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidEstimateValue = errors.New("invalid estimate value")
)

// EstimateCreateRequest is the body of POST /estimates.
//
// Amount carries no binding tag: zero is a valid amount and the use case owns
// the range check.
type EstimateCreateRequest struct {
	ContractID  string  `json:"contract_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (r EstimateCreateRequest) ResolveContractID() string {
	return strings.TrimSpace(r.ContractID)
}

func (r EstimateCreateRequest) ResolveAmount() (float64, error) {
	if r.Amount < 0 || math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return 0, ErrInvalidEstimateValue
	}
	return r.Amount, nil
}

// EstimateApproveRequest is the body of POST /estimates/{id}/approve.
type EstimateApproveRequest struct {
	SetAsActive bool `json:"set_as_active"`
}

// EstimateRejectRequest is the body of POST /estimates/{id}/reject.
// Reason is forwarded verbatim; blank reasons are refused by the use case.
type EstimateRejectRequest struct {
	Reason string `json:"reason"`
}
