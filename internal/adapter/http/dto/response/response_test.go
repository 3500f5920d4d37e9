package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/media"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase"
)

func TestFromQuotationView(t *testing.T) {
	discount := decimal.NewFromInt(100)
	q := entities.Quotation{
		ID:             "q-1",
		Status:         "SENT",
		TotalPrice:     decimal.NewFromInt(1000),
		DiscountAmount: &discount,
		UnitID:         "u-1",
	}
	r := FromQuotationView(usecase.QuotationView{
		Quotation:       q,
		FinalPrice:      decimal.NewFromInt(900),
		EffectiveStatus: entities.QuotationStatusExpired,
		ExpiryWarning:   true,
		Image:           media.Image{URL: "https://cdn.test/v.jpg", Source: media.SourceVariant},
	})

	if r.Status != "sent" || r.EffectiveStatus != "expired" || !r.ExpiryWarning || r.CanRespond {
		t.Fatalf("unexpected status fields: %+v", r)
	}
	if !r.FinalPrice.Equal(decimal.NewFromInt(900)) || r.InventoryID != "u-1" || r.ImageURL == "" {
		t.Fatalf("unexpected response: %+v", r)
	}
	if r.ExpiryDate != nil || r.QuotationDate != nil {
		t.Fatalf("zero dates must be omitted")
	}
}

func TestFromOrderView(t *testing.T) {
	o := entities.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-1",
		Status:      entities.OrderStatusConfirmed,
		TotalAmount: decimal.NewFromInt(1200),
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payments: []entities.Payment{
			{ID: "p-1", Amount: decimal.NewFromInt(200), Status: entities.PaymentStatusCompleted, PaymentMethod: entities.PaymentMethodCash},
		},
	}
	v := usecase.OrderView{Order: o, Summary: pricing.Summarize(o), Timeline: entities.TimelineSteps(o)}
	r := FromOrderView(v)

	if !r.TotalPaid.Equal(decimal.NewFromInt(200)) || !r.RemainingAmount.Equal(decimal.NewFromInt(1000)) || !r.IsPayable {
		t.Fatalf("unexpected totals: %+v", r)
	}
	if len(r.Payments) != 1 || r.Payments[0].PaymentMethod != "cash" {
		t.Fatalf("unexpected payments: %+v", r.Payments)
	}
	if r.Timeline.CurrentStep != 3 || r.CreatedAt == nil || r.UpdatedAt != nil {
		t.Fatalf("unexpected timeline/dates: %+v", r)
	}

	raw, err := json.Marshal(FromOrderTimeline(v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(raw), `"currentStep":3`) || !strings.Contains(string(raw), `"orderNumber":"ORD-1"`) {
		t.Fatalf("unexpected timeline json: %s", raw)
	}
}

func TestFromUnitView(t *testing.T) {
	v := usecase.UnitView{
		Unit:    entities.Unit{ID: "u-1", Variant: &entities.VariantRef{ID: "v-1"}},
		Primary: media.NoImage,
	}
	r := FromUnitView(v, false)
	if r.PrimaryImage != "" || r.Images == nil || len(r.Images) != 0 || r.Gallery != nil || r.VariantID != "v-1" {
		t.Fatalf("unexpected unit response: %+v", r)
	}
	if FromUnitView(v, true).Gallery == nil {
		t.Fatalf("expected gallery on detail view")
	}
}
