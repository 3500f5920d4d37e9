package request

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/usecase"
)

// CreatePaymentRequest is the body of POST /orders/:id/payments.
//
// Amount is read for deposits, InstallmentMonths for installments. Both are
// range-checked again by the use case against the order.
type CreatePaymentRequest struct {
	Kind              string           `json:"kind" binding:"required,payment_kind"`
	PaymentMethod     string           `json:"paymentMethod" binding:"required,payment_method"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	InstallmentMonths int              `json:"installmentMonths" binding:"omitempty,min=1,max=60"`
	Notes             string           `json:"notes" binding:"max=500"`
}

func (r CreatePaymentRequest) ResolveKind() entities.PaymentKind {
	return entities.PaymentKind(strings.ToLower(strings.TrimSpace(r.Kind)))
}

func (r CreatePaymentRequest) ToParams() usecase.PaymentParams {
	return usecase.PaymentParams{
		PaymentMethod:     entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
		Amount:            r.Amount,
		InstallmentMonths: r.InstallmentMonths,
		Notes:             r.Notes,
	}
}

var registerOnce sync.Once

type rule struct {
	tag string
	fn  validator.Func
}

var paymentRules = []rule{
	{"payment_kind", func(fl validator.FieldLevel) bool {
		return entities.PaymentKind(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
	}},
	{"payment_method", func(fl validator.FieldLevel) bool {
		return entities.PaymentMethod(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
	}},
}

// RegisterValidators installs the payment_kind and payment_method binding
// rules on gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Error().Str("component", "request").Msg("gin validator engine is not validator/v10")
			return
		}
		if err := registerRules(v, paymentRules); err != nil {
			log.Error().Err(err).Str("component", "request").Msg("register binding rules failed")
		}
	})
}

func registerRules(v *validator.Validate, rules []rule) error {
	for _, r := range rules {
		if err := v.RegisterValidation(r.tag, r.fn); err != nil {
			return fmt.Errorf("register %q: %w", r.tag, err)
		}
	}
	return nil
}
