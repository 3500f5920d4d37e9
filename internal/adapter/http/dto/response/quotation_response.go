package response

import (
	"time"

	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase"
)

type QuotationResponse struct {
	ID                 string           `json:"id"`
	QuotationNumber    string           `json:"quotationNumber"`
	CustomerID         string           `json:"customerId"`
	VariantID          string           `json:"variantId,omitempty"`
	ColorID            string           `json:"colorId,omitempty"`
	InventoryID        string           `json:"inventoryId,omitempty"`
	TotalPrice         decimal.Decimal  `json:"totalPrice"`
	DiscountAmount     *decimal.Decimal `json:"discountAmount,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	FinalPrice         decimal.Decimal  `json:"finalPrice"`
	QuotationDate      *time.Time       `json:"quotationDate,omitempty"`
	ExpiryDate         *time.Time       `json:"expiryDate,omitempty"`
	Status             string           `json:"status"`
	EffectiveStatus    string           `json:"effectiveStatus,omitempty"`
	ExpiryWarning      bool             `json:"expiryWarning"`
	CanRespond         bool             `json:"canRespond"`
	Conditions         string           `json:"conditions,omitempty"`
	RejectionReason    string           `json:"rejectionReason,omitempty"`
	AdjustmentRequest  string           `json:"adjustmentRequest,omitempty"`
	OrderID            string           `json:"orderId,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	ImageURL           string           `json:"imageUrl,omitempty"`
}

type AcceptQuotationResponse struct {
	Quotation QuotationResponse `json:"quotation"`
	OrderID   string            `json:"orderId,omitempty"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:                 q.ID,
		QuotationNumber:    q.QuotationNumber,
		CustomerID:         q.CustomerID,
		VariantID:          q.VariantID,
		ColorID:            q.ColorID,
		InventoryID:        q.UnitID,
		TotalPrice:         q.TotalPrice,
		DiscountAmount:     q.DiscountAmount,
		DiscountPercentage: q.DiscountPercentage,
		FinalPrice:         pricing.FinalPrice(q),
		QuotationDate:      timePtr(q.QuotationDate),
		ExpiryDate:         timePtr(q.ExpiryDate),
		Status:             string(q.Status.Normalize()),
		Conditions:         q.Conditions,
		RejectionReason:    q.RejectionReason,
		AdjustmentRequest:  q.AdjustmentRequest,
		OrderID:            q.OrderID,
		Notes:              q.Notes,
	}
}

func FromQuotationView(v usecase.QuotationView) QuotationResponse {
	r := FromQuotation(v.Quotation)
	r.FinalPrice = v.FinalPrice
	r.EffectiveStatus = string(v.EffectiveStatus)
	r.ExpiryWarning = v.ExpiryWarning
	r.CanRespond = v.CanRespond
	r.ImageURL = v.Image.URL
	return r
}

func FromQuotationAcceptance(a entities.QuotationAcceptance) AcceptQuotationResponse {
	return AcceptQuotationResponse{Quotation: FromQuotation(a.Quotation), OrderID: a.OrderID}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
