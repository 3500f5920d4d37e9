package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

// IQuotationService is the quotation collaborator owning persisted state.
//
// The workflow validates input and state before calling Accept/Reject; the
// service remains the source of truth and may still refuse.
type IQuotationService interface {
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	Accept(ctx context.Context, id string, conditions string) (entities.QuotationAcceptance, error)
	Reject(ctx context.Context, id string, reason string, adjustmentRequest string) (entities.Quotation, error)
}
