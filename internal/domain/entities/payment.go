package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is driven by the payment service; the client only reads it.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Is compares statuses case-insensitively.
func (s PaymentStatus) Is(other PaymentStatus) bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(other))
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard:
		return true
	}
	return false
}

// IsCard reports whether the method is charged through the card gateway.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

// PaymentKind selects the payment-service operation that creates a payment.
type PaymentKind string

const (
	PaymentKindFull        PaymentKind = "full"
	PaymentKindDeposit     PaymentKind = "deposit"
	PaymentKindInstallment PaymentKind = "installment"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentKindFull, PaymentKindDeposit, PaymentKindInstallment:
		return true
	}
	return false
}

// Payment is one recorded payment attempt against an order. Amounts are
// immutable once recorded; only Status moves, and only on the service side.
//
// Provider payload:
//   - ProviderPayloadRaw keeps the card gateway response body for audit.
type Payment struct {
	ID                 string          `json:"id"`
	PaymentNumber      string          `json:"paymentNumber"`
	OrderID            string          `json:"orderId"`
	Kind               PaymentKind     `json:"kind,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	Status             PaymentStatus   `json:"status"`
	PaymentDate        time.Time       `json:"paymentDate"`
	InstallmentMonths  *int            `json:"installmentMonths,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	ProviderPaymentID  string          `json:"providerPaymentId,omitempty"`
	ProviderPayloadRaw json.RawMessage `json:"providerPayloadRaw,omitempty"`
}

// PaymentRequest is the payload accepted by every payment-service create
// operation.
type PaymentRequest struct {
	OrderID           string           `json:"orderId"`
	PaymentMethod     PaymentMethod    `json:"paymentMethod"`
	Notes             string           `json:"notes,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	InstallmentMonths *int             `json:"installmentMonths,omitempty"`
}
