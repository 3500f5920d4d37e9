package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) error
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}
