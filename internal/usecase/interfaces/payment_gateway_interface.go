package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the card payment provider (Mercado Pago).
//
// The payment service charges credit/debit card payments through it and keeps
// the provider response payload on the payment record for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
