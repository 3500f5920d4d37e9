package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	request "evdealer/internal/adapter/http/dto/request"
	response "evdealer/internal/adapter/http/dto/response"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase"
	"evdealer/pkg"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// OrderHandler serves order lookups, the progress timeline and payment
// submission.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	request.RegisterValidators()
	return &OrderHandler{usecase: uc}
}

// GetOrder godoc
// @Summary  Get an order with its payments and balance
// @Tags     orders
// @Produce  json
// @Param    id   path      string  true  "Order ID"
// @Success  200  {object}  response.OrderResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderView(view))
}

// GetOrderByNumber godoc
// @Summary  Look up an order by its order number
// @Tags     orders
// @Produce  json
// @Param    order_number  path      string  true  "Order number"
// @Success  200           {object}  response.OrderResponse
// @Failure  404           {object}  pkg.HTTPError
// @Router   /orders/number/{order_number} [get]
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	view, err := h.usecase.LookupByNumber(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderView(view))
}

// GetOrderTimeline godoc
// @Summary  Get the progress timeline of an order
// @Tags     orders
// @Produce  json
// @Param    id   path      string  true  "Order ID"
// @Success  200  {object}  response.TimelineResponse
// @Router   /orders/{id}/timeline [get]
func (h *OrderHandler) GetOrderTimeline(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderTimeline(view))
}

// CreatePayment godoc
// @Summary  Submit a full, deposit or installment payment
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id       path      string                        true  "Order ID"
// @Param    payload  body      request.CreatePaymentRequest  true  "Payment"
// @Success  201      {object}  response.CreatePaymentResponse
// @Failure  400      {object}  pkg.HTTPError
// @Failure  409      {object}  pkg.HTTPError
// @Failure  503      {object}  pkg.HTTPError
// @Router   /orders/{id}/payments [post]
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	orderID := c.Param("id")
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Debug().Err(err).Str("component", "order.handler").Str("order_id", orderID).Msg("invalid payment payload")
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.CreatePayment(c.Request.Context(), orderID, payload.ResolveKind(), payload.ToParams())
	if err != nil {
		log.Warn().Err(err).Str("component", "order.handler").Str("order_id", orderID).Msg("create payment failed")
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentResult(res))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainError("ORDER_NOT_FOUND", "Order not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrDepositExceedsRemaining):
		return pkg.NewDomainError("DEPOSIT_EXCEEDS_REMAINING", "Deposit amount exceeds the remaining balance", err, http.StatusBadRequest)
	case errors.Is(err, pricing.ErrOrderNotConfirmed):
		return pkg.NewDomainError("ORDER_NOT_CONFIRMED", "Order is not confirmed", err, http.StatusConflict)
	case errors.Is(err, pricing.ErrNothingToPay):
		return pkg.NewDomainError("ORDER_ALREADY_PAID", "Order has no remaining balance", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrOperationInFlight):
		return pkg.NewDomainError("OPERATION_IN_FLIGHT", "A payment is already being processed for this order", err, http.StatusConflict)
	default:
		return pkg.FromError(err)
	}
}
