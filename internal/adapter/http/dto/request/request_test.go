package request

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"evdealer/internal/domain/entities"
)

func TestCreatePaymentRequest_Validation(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"full", `{"kind":"full","paymentMethod":"bank_transfer"}`, true},
		{"mixed case", `{"kind":"Deposit","paymentMethod":"CASH","amount":"1000"}`, true},
		{"installment", `{"kind":"installment","paymentMethod":"credit_card","installmentMonths":12}`, true},
		{"unknown kind", `{"kind":"layaway","paymentMethod":"cash"}`, false},
		{"unknown method", `{"kind":"full","paymentMethod":"crypto"}`, false},
		{"missing method", `{"kind":"full"}`, false},
		{"months above range", `{"kind":"installment","paymentMethod":"cash","installmentMonths":61}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r CreatePaymentRequest
			if err := json.Unmarshal([]byte(tc.body), &r); err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			err := binding.Validator.ValidateStruct(&r)
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCreatePaymentRequest_ToParams(t *testing.T) {
	var r CreatePaymentRequest
	if err := json.Unmarshal([]byte(`{"kind":" Deposit ","paymentMethod":"Debit_Card","amount":150.5,"notes":"first"}`), &r); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if r.ResolveKind() != entities.PaymentKindDeposit {
		t.Fatalf("unexpected kind %q", r.ResolveKind())
	}
	p := r.ToParams()
	if p.PaymentMethod != entities.PaymentMethodDebitCard || p.Amount == nil || p.Amount.String() != "150.5" || p.Notes != "first" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestAcceptQuotationRequest_ResolveConditions(t *testing.T) {
	if got := (AcceptQuotationRequest{Conditions: "  delivery in May "}).ResolveConditions(); got != "delivery in May" {
		t.Fatalf("unexpected conditions %q", got)
	}
}

func TestRegisterRules(t *testing.T) {
	t.Run("payment rules register cleanly", func(t *testing.T) {
		if err := registerRules(validator.New(), paymentRules); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failure is reported", func(t *testing.T) {
		bad := []rule{{"", func(validator.FieldLevel) bool { return true }}}
		if err := registerRules(validator.New(), bad); err == nil {
			t.Fatalf("expected an error for an empty tag")
		}
	})
}
