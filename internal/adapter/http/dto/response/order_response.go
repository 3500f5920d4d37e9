package response

import (
	"time"

	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase"
)

type PaymentResponse struct {
	ID                string          `json:"id"`
	PaymentNumber     string          `json:"paymentNumber"`
	OrderID           string          `json:"orderId"`
	Kind              string          `json:"kind,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"paymentMethod"`
	Status            string          `json:"status"`
	PaymentDate       *time.Time      `json:"paymentDate,omitempty"`
	InstallmentMonths *int            `json:"installmentMonths,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	ProviderPaymentID string          `json:"providerPaymentId,omitempty"`
}

type OrderResponse struct {
	ID                 string                `json:"id"`
	OrderNumber        string                `json:"orderNumber"`
	CustomerID         string                `json:"customerId"`
	InventoryID        string                `json:"inventoryId,omitempty"`
	QuotationID        string                `json:"quotationId,omitempty"`
	Status             string                `json:"status"`
	PaymentStatus      string                `json:"paymentStatus,omitempty"`
	DeliveryStatus     string                `json:"deliveryStatus,omitempty"`
	TotalAmount        decimal.Decimal       `json:"totalAmount"`
	DepositAmount      decimal.Decimal       `json:"depositAmount"`
	TotalPaid          decimal.Decimal       `json:"totalPaid"`
	RemainingAmount    decimal.Decimal       `json:"remainingAmount"`
	IsPayable          bool                  `json:"isPayable"`
	InstallmentOptions []pricing.Installment `json:"installmentOptions,omitempty"`
	Payments           []PaymentResponse     `json:"payments"`
	Timeline           entities.Timeline     `json:"timeline"`
	ImageURL           string                `json:"imageUrl,omitempty"`
	CreatedAt          *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time            `json:"updatedAt,omitempty"`
}

type TimelineResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	entities.Timeline
}

type CreatePaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Order   OrderResponse   `json:"order"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		PaymentNumber:     p.PaymentNumber,
		OrderID:           p.OrderID,
		Kind:              string(p.Kind),
		Amount:            p.Amount,
		PaymentMethod:     string(p.PaymentMethod),
		Status:            string(p.Status),
		PaymentDate:       timePtr(p.PaymentDate),
		InstallmentMonths: p.InstallmentMonths,
		Notes:             p.Notes,
		ProviderPaymentID: p.ProviderPaymentID,
	}
}

func FromOrderView(v usecase.OrderView) OrderResponse {
	o := v.Order
	payments := make([]PaymentResponse, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, FromPayment(p))
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		InventoryID:        o.UnitID,
		QuotationID:        o.QuotationID,
		Status:             string(o.Status.Normalize()),
		PaymentStatus:      o.PaymentStatus,
		DeliveryStatus:     o.DeliveryStatus,
		TotalAmount:        v.Summary.TotalAmount,
		DepositAmount:      v.Summary.DepositAmount,
		TotalPaid:          v.Summary.TotalPaid,
		RemainingAmount:    v.Summary.Remaining,
		IsPayable:          v.Summary.Payable,
		InstallmentOptions: v.Summary.Installments,
		Payments:           payments,
		Timeline:           v.Timeline,
		ImageURL:           v.Image.URL,
		CreatedAt:          timePtr(o.CreatedAt),
		UpdatedAt:          timePtr(o.UpdatedAt),
	}
}

func FromOrderTimeline(v usecase.OrderView) TimelineResponse {
	return TimelineResponse{OrderID: v.Order.ID, OrderNumber: v.Order.OrderNumber, Timeline: v.Timeline}
}

func FromPaymentResult(r usecase.PaymentResult) CreatePaymentResponse {
	return CreatePaymentResponse{Payment: FromPayment(r.Payment), Order: FromOrderView(r.Order)}
}
