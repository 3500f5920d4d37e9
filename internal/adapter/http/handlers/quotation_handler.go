package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	request "evdealer/internal/adapter/http/dto/request"
	response "evdealer/internal/adapter/http/dto/response"
	"evdealer/internal/usecase"
	"evdealer/pkg"
)

var errInvalidQuotationPayload = pkg.NewDomainErrorSimple("INVALID_QUOTATION_INPUT", "Invalid quotation payload", http.StatusBadRequest)

// QuotationHandler exposes the customer's view of a quotation and the
// accept/reject responses.
type QuotationHandler struct {
	usecase usecase.IQuotationUseCase
}

func NewQuotationHandler(uc usecase.IQuotationUseCase) *QuotationHandler {
	return &QuotationHandler{usecase: uc}
}

// GetQuotation godoc
// @Summary  Get a quotation
// @Tags     quotations
// @Produce  json
// @Param    id   path      string  true  "Quotation ID"
// @Success  200  {object}  response.QuotationResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuotationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotationView(view))
}

// AcceptQuotation godoc
// @Summary  Accept a sent quotation
// @Tags     quotations
// @Accept   json
// @Produce  json
// @Param    id       path      string                          true  "Quotation ID"
// @Param    payload  body      request.AcceptQuotationRequest  true  "Acceptance conditions"
// @Success  200      {object}  response.AcceptQuotationResponse
// @Failure  400      {object}  pkg.HTTPError
// @Failure  409      {object}  pkg.HTTPError
// @Router   /quotations/{id}/accept [post]
func (h *QuotationHandler) AcceptQuotation(c *gin.Context) {
	id := c.Param("id")
	var payload request.AcceptQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotationPayload.HTTPStatus, errInvalidQuotationPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Accept(c.Request.Context(), id, payload.ResolveConditions())
	if err != nil {
		log.Warn().Err(err).Str("component", "quotation.handler").Str("quotation_id", id).Msg("accept failed")
		appErr := mapQuotationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotationAcceptance(res))
}

// RejectQuotation godoc
// @Summary  Reject a sent quotation
// @Tags     quotations
// @Accept   json
// @Produce  json
// @Param    id       path      string                          true  "Quotation ID"
// @Param    payload  body      request.RejectQuotationRequest  true  "Rejection reason"
// @Success  200      {object}  response.QuotationResponse
// @Failure  400      {object}  pkg.HTTPError
// @Failure  409      {object}  pkg.HTTPError
// @Router   /quotations/{id}/reject [post]
func (h *QuotationHandler) RejectQuotation(c *gin.Context) {
	id := c.Param("id")
	var payload request.RejectQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotationPayload.HTTPStatus, errInvalidQuotationPayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Reject(c.Request.Context(), id, payload.Reason, payload.AdjustmentRequest)
	if err != nil {
		log.Warn().Err(err).Str("component", "quotation.handler").Str("quotation_id", id).Msg("reject failed")
		appErr := mapQuotationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func mapQuotationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrConditionsRequired):
		return pkg.NewDomainError("CONDITIONS_REQUIRED", "Acceptance conditions are required", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrReasonRequired):
		return pkg.NewDomainError("REASON_REQUIRED", "Rejection reason is required", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuotationNotFound):
		return pkg.NewDomainError("QUOTATION_NOT_FOUND", "Quotation not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuotationExpired):
		return pkg.NewDomainError("QUOTATION_EXPIRED", "Quotation has expired", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrQuotationNotPending):
		return pkg.NewDomainError("QUOTATION_NOT_RESPONDABLE", "Quotation is not awaiting a response", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrOperationInFlight):
		return pkg.NewDomainError("OPERATION_IN_FLIGHT", "Another operation is in progress for this quotation", err, http.StatusConflict)
	default:
		return pkg.FromError(err)
	}
}
