package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/media"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase/interfaces"
)

var (
	ErrInvalidQuotationID  = errs.Validation("invalid quotation id")
	ErrConditionsRequired  = errs.Validation("acceptance conditions are required")
	ErrReasonRequired      = errs.Validation("rejection reason is required")
	ErrQuotationNotFound   = errs.NotFound("quotation not found")
	ErrQuotationExpired    = errs.Policy("quotation has expired")
	ErrQuotationNotPending = errs.Policy("quotation is not awaiting a response")
)

const quotationComponent = "quotation.usecase"

type IQuotationUseCase interface {
	Get(ctx context.Context, id string) (QuotationView, error)
	Accept(ctx context.Context, id, conditions string) (entities.QuotationAcceptance, error)
	Reject(ctx context.Context, id, reason, adjustmentRequest string) (entities.Quotation, error)
}

// QuotationView is a quotation with the figures derived for display.
type QuotationView struct {
	Quotation       entities.Quotation
	FinalPrice      decimal.Decimal
	EffectiveStatus entities.QuotationStatus
	ExpiryWarning   bool
	CanRespond      bool
	Image           media.Image
}

type QuotationUseCase struct {
	service  interfaces.IQuotationService
	resolver *media.Resolver
	guard    *InFlightGuard
	now      func() time.Time
}

var _ IQuotationUseCase = (*QuotationUseCase)(nil)

func NewQuotationUseCase(service interfaces.IQuotationService, resolver *media.Resolver) *QuotationUseCase {
	if resolver == nil {
		resolver = media.NewResolver("")
	}
	return &QuotationUseCase{
		service:  service,
		resolver: resolver,
		guard:    NewInFlightGuard(),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for expiry checks.
func (uc *QuotationUseCase) WithClock(now func() time.Time) *QuotationUseCase {
	uc.now = now
	return uc
}

func (uc *QuotationUseCase) Get(ctx context.Context, id string) (QuotationView, error) {
	q, err := uc.fetch(ctx, id)
	if err != nil {
		return QuotationView{}, err
	}
	return uc.view(q), nil
}

// Accept records the customer's acceptance. Conditions are checked before
// anything is fetched; the quotation must still be sent and unexpired.
func (uc *QuotationUseCase) Accept(ctx context.Context, id, conditions string) (entities.QuotationAcceptance, error) {
	id = strings.TrimSpace(id)
	conditions = strings.TrimSpace(conditions)
	if id == "" {
		return entities.QuotationAcceptance{}, ErrInvalidQuotationID
	}
	if conditions == "" {
		return entities.QuotationAcceptance{}, ErrConditionsRequired
	}

	release, err := uc.guard.Acquire(id)
	if err != nil {
		return entities.QuotationAcceptance{}, err
	}
	defer release()

	q, err := uc.fetch(ctx, id)
	if err != nil {
		return entities.QuotationAcceptance{}, err
	}
	if err := uc.checkRespondable(q, entities.QuotationStatusAccepted); err != nil {
		return entities.QuotationAcceptance{}, err
	}

	log.Info().Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("accept start")
	res, err := uc.service.Accept(ctx, q.ID, conditions)
	if err != nil {
		log.Error().Err(err).Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("accept failed")
		return entities.QuotationAcceptance{}, errs.Transport(err)
	}

	if res.Quotation.ID == "" {
		q.Status = entities.QuotationStatusAccepted
		q.Conditions = conditions
		if res.OrderID != "" {
			q.Status = entities.QuotationStatusConverted
			q.OrderID = res.OrderID
		}
		res.Quotation = q
	}
	if res.OrderID == "" {
		res.OrderID = res.Quotation.OrderID
	}

	log.Info().
		Str("component", quotationComponent).
		Str("quotation_id", q.ID).
		Str("status", string(res.Quotation.Status)).
		Str("order_id", res.OrderID).
		Msg("accept done")
	return res, nil
}

// Reject records the customer's rejection with a mandatory reason.
func (uc *QuotationUseCase) Reject(ctx context.Context, id, reason, adjustmentRequest string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	reason = strings.TrimSpace(reason)
	adjustmentRequest = strings.TrimSpace(adjustmentRequest)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}
	if reason == "" {
		return entities.Quotation{}, ErrReasonRequired
	}

	release, err := uc.guard.Acquire(id)
	if err != nil {
		return entities.Quotation{}, err
	}
	defer release()

	q, err := uc.fetch(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if err := uc.checkRespondable(q, entities.QuotationStatusRejected); err != nil {
		return entities.Quotation{}, err
	}

	log.Info().Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("reject start")
	updated, err := uc.service.Reject(ctx, q.ID, reason, adjustmentRequest)
	if err != nil {
		log.Error().Err(err).Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("reject failed")
		return entities.Quotation{}, errs.Transport(err)
	}
	if updated.ID == "" {
		updated = q
		updated.Status = entities.QuotationStatusRejected
		updated.RejectionReason = reason
		updated.AdjustmentRequest = adjustmentRequest
	}

	log.Info().Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("reject done")
	return updated, nil
}

func (uc *QuotationUseCase) fetch(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}
	if uc.service == nil {
		return entities.Quotation{}, errs.Transport(errors.New("quotation service not configured"))
	}
	q, err := uc.service.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, errs.Transport(err)
	}
	if q.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return q, nil
}

// checkRespondable reports whether q may move to the given status. Expiry is
// checked before the transition table, so a lapsed SENT quotation is expired.
func (uc *QuotationUseCase) checkRespondable(q entities.Quotation, to entities.QuotationStatus) error {
	if q.IsExpired(uc.now()) {
		return ErrQuotationExpired
	}
	if !entities.CanTransitionQuotation(q.Status, to) {
		return fmt.Errorf("%w: status is %q", ErrQuotationNotPending, q.Status.Normalize())
	}
	return nil
}

func (uc *QuotationUseCase) view(q entities.Quotation) QuotationView {
	now := uc.now()
	img := uc.resolver.Variant(q.Variant)
	if img.IsPlaceholder() {
		img = uc.resolver.Color(q.Color)
	}
	return QuotationView{
		Quotation:       q,
		FinalPrice:      pricing.FinalPrice(q),
		EffectiveStatus: q.EffectiveStatus(now),
		ExpiryWarning:   q.ExpiryWarning(now),
		CanRespond:      uc.checkRespondable(q, entities.QuotationStatusAccepted) == nil,
		Image:           img,
	}
}
