package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

// IPaymentService creates payment records against an order, one operation per
// payment kind. It returns the recorded Payment or a structured error.
type IPaymentService interface {
	CreateFullPayment(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error)
	CreateDeposit(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error)
	CreateInstallmentPayment(ctx context.Context, req entities.PaymentRequest) (entities.Payment, error)
}
