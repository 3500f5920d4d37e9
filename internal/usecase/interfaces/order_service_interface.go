package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

// IOrderService is the read side of the order collaborator. Returned orders
// carry their payment list.
type IOrderService interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (entities.Order, error)
}
