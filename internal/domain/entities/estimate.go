package entities

import "time"

// EstimateStatus represents the lifecycle of a contract estimate.
//
// Domain notes:
//   - The estimates backend is the source of truth; clients only mirror it.
//   - approved and rejected are terminal.
type EstimateStatus string

const (
	EstimateStatusPending  EstimateStatus = "pending"
	EstimateStatusApproved EstimateStatus = "approved"
	EstimateStatusRejected EstimateStatus = "rejected"
)

// IsKnown reports whether s is one of the statuses the backend documents.
func (s EstimateStatus) IsKnown() bool {
	switch s {
	case EstimateStatusPending, EstimateStatusApproved, EstimateStatusRejected:
		return true
	}
	return false
}

func (s EstimateStatus) IsFinal() bool {
	return s == EstimateStatusApproved || s == EstimateStatusRejected
}

// Estimate is a contractor's cost estimate for a contract.
//
// Storage model (DynamoDB, sandbox API):
//   - PK: id
//   - GSI (contract_id-index): contract_id
//
// Invariant: at most one estimate per contract has IsActive set. The backend
// enforces it; clients only reflect it.
type Estimate struct {
	ID              string         `json:"id"`
	ContractID      string         `json:"contract_id"`
	Amount          float64        `json:"amount"`
	Description     string         `json:"description"`
	Status          EstimateStatus `json:"status"`
	IsActive        bool           `json:"is_active"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectedAt      *time.Time     `json:"rejected_at,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewEstimateInput carries the fields a contractor submits.
type NewEstimateInput struct {
	ContractID  string
	Amount      float64
	Description string
}
