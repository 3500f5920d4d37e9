package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/ledger"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase/interfaces"
)

var (
	ErrInvalidPaymentAmount           = errs.Validation("payment amount must be greater than zero")
	ErrInvalidPaymentMethod           = errs.Validation("invalid payment method")
	ErrPaymentGatewayBadRequest       = errs.Validation("payment gateway bad request")
	ErrPaymentGatewayInvalidUsers     = errs.Validation("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errs.Validation("payment gateway customer not found")
	ErrPaymentGatewayUnauthorized     = errs.Transport(errors.New("payment gateway unauthorized"))
)

const (
	serviceComponent     = "payment.service"
	paymentNumberPrefix  = "PAY-"
	paymentStatusPartial = "partial"
	paymentStatusPaid    = "paid"
)

// PaymentService records payments for orders. Card methods are charged
// through the gateway; bank transfers and cash are recorded as pending until
// settled offline.
type PaymentService struct {
	repo       interfaces.IPaymentRepository
	orders     interfaces.IOrderRepository
	gateway    interfaces.IPaymentGateway
	payerEmail string
	now        func() time.Time
	idGen      func() string
	numGen     func() string
}

var _ interfaces.IPaymentService = (*PaymentService)(nil)

func NewPaymentService(repo interfaces.IPaymentRepository, orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, payerEmail string) *PaymentService {
	return &PaymentService{
		repo:       repo,
		orders:     orders,
		gateway:    gateway,
		payerEmail: strings.TrimSpace(payerEmail),
		now:        time.Now,
		idGen:      uuid.NewString,
		numGen: func() string {
			return paymentNumberPrefix + ulid.Make().String()
		},
	}
}

func (s *PaymentService) CreateFullPayment(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error) {
	return s.create(ctx, entities.PaymentKindFull, req)
}

func (s *PaymentService) CreateDeposit(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error) {
	return s.create(ctx, entities.PaymentKindDeposit, req)
}

func (s *PaymentService) CreateInstallmentPayment(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error) {
	return s.create(ctx, entities.PaymentKindInstallment, req)
}

func (s *PaymentService) create(ctx context.Context, kind entities.PaymentKind, req entities.PaymentRequest) (entities.Payment, error) {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return entities.Payment{}, errs.Validation("order id is required")
	}
	if req.Amount == nil || !req.Amount.IsPositive() {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if !req.PaymentMethod.Valid() {
		return entities.Payment{}, fmt.Errorf("%w: got %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}
	if s.repo == nil {
		return entities.Payment{}, errs.Transport(errors.New("payment repository not configured"))
	}

	now := s.now().UTC()
	p := entities.Payment{
		ID:                s.idGen(),
		PaymentNumber:     s.numGen(),
		OrderID:           orderID,
		Kind:              kind,
		Amount:            *req.Amount,
		PaymentMethod:     req.PaymentMethod,
		Status:            entities.PaymentStatusPending,
		PaymentDate:       now,
		InstallmentMonths: req.InstallmentMonths,
		Notes:             strings.TrimSpace(req.Notes),
	}

	log.Info().
		Str("component", serviceComponent).
		Str("order_id", orderID).
		Str("payment_id", p.ID).
		Str("kind", string(kind)).
		Str("method", string(p.PaymentMethod)).
		Msg("create start")

	if p.PaymentMethod.IsCard() {
		if err := s.charge(ctx, &p); err != nil {
			return entities.Payment{}, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("component", serviceComponent).Str("payment_id", p.ID).Msg("repository create failed")
		return entities.Payment{}, err
	}

	if p.Status.Is(entities.PaymentStatusCompleted) {
		s.settle(ctx, orderID)
	}

	log.Info().
		Str("component", serviceComponent).
		Str("order_id", orderID).
		Str("payment_id", p.ID).
		Str("payment_number", p.PaymentNumber).
		Str("status", string(p.Status)).
		Msg("create success")
	return p, nil
}

func (s *PaymentService) charge(ctx context.Context, p *entities.Payment) error {
	if s.gateway == nil {
		return errs.Transport(errors.New("payment gateway not configured"))
	}
	payload, err := s.gatewayPayload(*p)
	if err != nil {
		return err
	}

	providerID, providerStatus, providerResp, err := s.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Error().Err(err).Str("component", serviceComponent).Str("payment_id", p.ID).Msg("payment gateway failed")
		return classifyGatewayError(err)
	}

	p.ProviderPaymentID = providerID
	p.ProviderPayloadRaw = providerResp
	p.Status = statusFromProvider(providerStatus)
	log.Info().
		Str("component", serviceComponent).
		Str("payment_id", p.ID).
		Str("provider_payment_id", providerID).
		Str("provider_status", providerStatus).
		Msg("payment gateway success")
	return nil
}

func (s *PaymentService) gatewayPayload(p entities.Payment) (json.RawMessage, error) {
	installments := 1
	if p.InstallmentMonths != nil && *p.InstallmentMonths > 0 {
		installments = *p.InstallmentMonths
	}
	body := map[string]any{
		"transaction_amount": p.Amount.InexactFloat64(),
		"description":        fmt.Sprintf("Order %s %s payment", p.OrderID, p.Kind),
		"external_reference": p.OrderID,
		"installments":       installments,
		"payment_method_id":  string(p.PaymentMethod),
	}
	if s.payerEmail != "" {
		body["payer"] = map[string]any{"type": "customer", "email": s.payerEmail}
	}
	return json.Marshal(body)
}

// settle refreshes the order's payment status after a completed payment.
// Failures are logged; the payment itself is already recorded.
func (s *PaymentService) settle(ctx context.Context, orderID string) {
	if s.orders == nil {
		return
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil || o.ID == "" {
		log.Warn().Err(err).Str("component", serviceComponent).Str("order_id", orderID).Msg("order reload failed")
		return
	}

	var status entities.OrderStatus
	paymentStatus := paymentStatusPartial
	if pricing.Remaining(o).IsZero() && ledger.ForOrder(o).Len() > 0 {
		status = entities.OrderStatusPaid
		paymentStatus = paymentStatusPaid
	}
	if err := s.orders.UpdatePaymentState(ctx, orderID, status, paymentStatus); err != nil {
		log.Warn().Err(err).Str("component", serviceComponent).Str("order_id", orderID).Msg("order payment state update failed")
	}
}

func statusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusCompleted
	case "rejected", "cancelled":
		return entities.PaymentStatusFailed
	case "refunded", "charged_back":
		return entities.PaymentStatusRefunded
	}
	return entities.PaymentStatusPending
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return errs.Transport(err)
}
