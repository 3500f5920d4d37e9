package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

// IOrderRepository is the write side the payment service needs after a
// payment settles.
type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	UpdatePaymentState(ctx context.Context, id string, status entities.OrderStatus, paymentStatus string) error
}
