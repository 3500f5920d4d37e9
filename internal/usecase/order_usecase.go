package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/ledger"
	"evdealer/internal/domain/media"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase/interfaces"
)

// MaxInstallmentMonths bounds the plan length accepted for installment payments.
const MaxInstallmentMonths = 60

var (
	ErrInvalidOrderID           = errs.Validation("invalid order id")
	ErrInvalidOrderNumber       = errs.Validation("order number is required")
	ErrOrderNotFound            = errs.NotFound("order not found")
	ErrInvalidPaymentKind       = errs.Validation("payment kind must be full, deposit or installment")
	ErrInvalidPaymentMethod     = errs.Validation("invalid payment method")
	ErrInvalidDepositAmount     = errs.Validation("deposit amount must be greater than zero")
	ErrDepositExceedsRemaining  = errs.Validation("deposit amount exceeds the remaining balance")
	ErrInvalidInstallmentMonths = errs.Validation("installment months must be between 1 and 60")
)

const orderComponent = "order.usecase"

type IOrderUseCase interface {
	GetByID(ctx context.Context, id string) (OrderView, error)
	LookupByNumber(ctx context.Context, orderNumber string) (OrderView, error)
	CreatePayment(ctx context.Context, orderID string, kind entities.PaymentKind, params PaymentParams) (PaymentResult, error)
}

// PaymentParams are the caller-supplied inputs of a payment. Amount is read
// for deposits only and InstallmentMonths for installments only.
type PaymentParams struct {
	PaymentMethod     entities.PaymentMethod
	Amount            *decimal.Decimal
	InstallmentMonths int
	Notes             string
}

// OrderView is an order with its derived figures and timeline.
type OrderView struct {
	Order    entities.Order
	Summary  pricing.Summary
	Timeline entities.Timeline
	Image    media.Image
}

// PaymentResult is the recorded payment plus the order as it reads with the
// payment appended to its ledger.
type PaymentResult struct {
	Payment entities.Payment
	Order   OrderView
}

type OrderUseCase struct {
	orders   interfaces.IOrderService
	payments interfaces.IPaymentService
	resolver *media.Resolver
	guard    *InFlightGuard
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(orders interfaces.IOrderService, payments interfaces.IPaymentService, resolver *media.Resolver) *OrderUseCase {
	if resolver == nil {
		resolver = media.NewResolver("")
	}
	return &OrderUseCase{
		orders:   orders,
		payments: payments,
		resolver: resolver,
		guard:    NewInFlightGuard(),
	}
}

func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (OrderView, error) {
	o, err := uc.fetch(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return uc.View(o), nil
}

// LookupByNumber finds an order by its human-facing number.
func (uc *OrderUseCase) LookupByNumber(ctx context.Context, orderNumber string) (OrderView, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return OrderView{}, ErrInvalidOrderNumber
	}
	if uc.orders == nil {
		return OrderView{}, errs.Transport(errors.New("order service not configured"))
	}
	o, err := uc.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return OrderView{}, errs.Transport(err)
	}
	if o.ID == "" {
		return OrderView{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	}
	return uc.View(o), nil
}

// CreatePayment validates the request, re-reads the order and submits one
// payment of the given kind. One payment per order may be in flight.
func (uc *OrderUseCase) CreatePayment(ctx context.Context, orderID string, kind entities.PaymentKind, params PaymentParams) (PaymentResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return PaymentResult{}, ErrInvalidOrderID
	}
	if err := ValidatePaymentParams(kind, params); err != nil {
		return PaymentResult{}, err
	}
	if uc.payments == nil {
		return PaymentResult{}, errs.Transport(errors.New("payment service not configured"))
	}

	release, err := uc.guard.Acquire(orderID)
	if err != nil {
		return PaymentResult{}, err
	}
	defer release()

	// The order is read under the guard so the remaining balance cannot go stale.
	o, err := uc.fetch(ctx, orderID)
	if err != nil {
		return PaymentResult{}, err
	}
	req, err := BuildPaymentRequest(o, kind, params)
	if err != nil {
		return PaymentResult{}, err
	}

	log.Info().
		Str("component", orderComponent).
		Str("order_id", o.ID).
		Str("kind", string(kind)).
		Str("method", string(req.PaymentMethod)).
		Str("amount", req.Amount.String()).
		Msg("create payment start")

	var p entities.Payment
	switch kind {
	case entities.PaymentKindFull:
		p, err = uc.payments.CreateFullPayment(ctx, req)
	case entities.PaymentKindDeposit:
		p, err = uc.payments.CreateDeposit(ctx, req)
	case entities.PaymentKindInstallment:
		p, err = uc.payments.CreateInstallmentPayment(ctx, req)
	}
	if err != nil {
		log.Error().Err(err).Str("component", orderComponent).Str("order_id", o.ID).Msg("create payment failed")
		return PaymentResult{}, errs.Transport(err)
	}
	if p.Kind == "" {
		p.Kind = kind
	}

	o.Payments = ledger.ForOrder(o).Append(p).Entries()

	log.Info().
		Str("component", orderComponent).
		Str("order_id", o.ID).
		Str("payment_id", p.ID).
		Str("status", string(p.Status)).
		Msg("create payment done")
	return PaymentResult{Payment: p, Order: uc.View(o)}, nil
}

// View derives the display figures of an order.
func (uc *OrderUseCase) View(o entities.Order) OrderView {
	v := OrderView{
		Order:    o,
		Summary:  pricing.Summarize(o),
		Timeline: entities.TimelineSteps(o),
		Image:    media.NoImage,
	}
	if o.Unit != nil {
		v.Image = uc.resolver.Primary(*o.Unit, nil)
	}
	return v
}

func (uc *OrderUseCase) fetch(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if uc.orders == nil {
		return entities.Order{}, errs.Transport(errors.New("order service not configured"))
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, errs.Transport(err)
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ValidatePaymentParams checks the inputs that need no order state.
func ValidatePaymentParams(kind entities.PaymentKind, params PaymentParams) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidPaymentKind, kind)
	}
	if !params.PaymentMethod.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidPaymentMethod, params.PaymentMethod)
	}
	switch kind {
	case entities.PaymentKindDeposit:
		if params.Amount == nil || !params.Amount.IsPositive() {
			return ErrInvalidDepositAmount
		}
	case entities.PaymentKindInstallment:
		if params.InstallmentMonths < 1 || params.InstallmentMonths > MaxInstallmentMonths {
			return fmt.Errorf("%w: got %d", ErrInvalidInstallmentMonths, params.InstallmentMonths)
		}
	}
	return nil
}

// BuildPaymentRequest applies the order's state to validated params. Full
// and installment payments cover the whole remaining balance; an installment
// carries its plan length alongside.
func BuildPaymentRequest(o entities.Order, kind entities.PaymentKind, params PaymentParams) (entities.PaymentRequest, error) {
	if err := ValidatePaymentParams(kind, params); err != nil {
		return entities.PaymentRequest{}, err
	}
	if err := pricing.CheckPayable(o); err != nil {
		return entities.PaymentRequest{}, err
	}

	remaining := pricing.Remaining(o)
	req := entities.PaymentRequest{
		OrderID:       o.ID,
		PaymentMethod: params.PaymentMethod,
		Notes:         strings.TrimSpace(params.Notes),
	}

	switch kind {
	case entities.PaymentKindFull:
		req.Amount = &remaining
	case entities.PaymentKindDeposit:
		if params.Amount.GreaterThan(remaining) {
			return entities.PaymentRequest{}, fmt.Errorf("%w: %s > %s", ErrDepositExceedsRemaining, params.Amount, remaining)
		}
		amount := *params.Amount
		req.Amount = &amount
	case entities.PaymentKindInstallment:
		months := params.InstallmentMonths
		req.Amount = &remaining
		req.InstallmentMonths = &months
	}
	return req, nil
}
