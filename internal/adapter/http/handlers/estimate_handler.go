package handlers

import (
	"errors"
	request "managrr/internal/adapter/http/dto/request"
	response "managrr/internal/adapter/http/dto/response"
	"managrr/internal/domain/entities"
	"managrr/internal/usecase"
	"managrr/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errInvalidRequest         = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for contract estimates.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate godoc
// @Summary      Submit an estimate
// @Description  A contractor submits a new pending estimate for a contract.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      request.EstimateCreateRequest  true  "Estimate"
// @Success      201   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	contractID := payload.ResolveContractID()
	if contractID == "" {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	amount, err := payload.ResolveAmount()
	if err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Submit(c.Request.Context(), entities.NewEstimateInput{
		ContractID:  contractID,
		Amount:      amount,
		Description: payload.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// ListByContract godoc
// @Summary      List a contract's estimates
// @Description  Newest submission first; an empty array when there are none.
// @Tags         estimates
// @Produce      json
// @Param        contract_id  path      string  true  "Contract ID"
// @Success      200          {array}   response.EstimateResponse
// @Failure      400          {object}  pkg.HTTPError
// @Failure      500          {object}  pkg.HTTPError
// @Router       /estimates/contract/{contract_id} [get]
func (h *EstimateHandler) ListByContract(c *gin.Context) {
	list, err := h.usecase.ListByContract(c.Request.Context(), c.Param("contract_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// ApproveEstimate godoc
// @Summary      Approve an estimate
// @Description  With set_as_active, every other estimate of the contract is deactivated.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true  "Estimate ID"
// @Param        body  body      request.EstimateApproveRequest  true  "Approval"
// @Success      200   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /estimates/{id}/approve [post]
func (h *EstimateHandler) ApproveEstimate(c *gin.Context) {
	var payload request.EstimateApproveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), payload.SetAsActive)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// RejectEstimate godoc
// @Summary      Reject an estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Estimate ID"
// @Param        body  body      request.EstimateRejectRequest  true  "Rejection"
// @Success      200   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /estimates/{id}/reject [post]
func (h *EstimateHandler) RejectEstimate(c *gin.Context) {
	var payload request.EstimateRejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), payload.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) fail(c *gin.Context, err error) {
	appErr := mapEstimateError(err)
	entry := log.WithFields(log.Fields{"path": c.FullPath(), "code": appErr.Code})
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		entry.WithError(err).Error("[estimate][handler] request failed")
	} else {
		entry.Debug("[estimate][handler] request refused")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrRejectionReasonRequired):
		return pkg.NewDomainErrorSimple("REJECTION_REASON_REQUIRED", "Rejection reason is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidContractID), errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidEstimateVal), errors.Is(err, usecase.ErrInvalidDescription):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateFinalized):
		return pkg.NewDomainErrorSimple("ESTIMATE_FINALIZED", "Estimate already finalized", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
