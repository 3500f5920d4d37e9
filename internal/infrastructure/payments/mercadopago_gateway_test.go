package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	if _, err := NewMercadoPagoGateway("", false); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
	g, err := NewMercadoPagoGateway("", true)
	if err != nil || !g.mockMode {
		t.Fatalf("expected mock gateway, got %+v (%v)", g, err)
	}
}

func TestMercadoPagoGateway_MockCreate(t *testing.T) {
	g, _ := NewMercadoPagoGateway("", true)
	g.now = func() time.Time { return time.Unix(0, 42).UTC() }

	id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":100,"external_reference":"ord-1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" || status != "approved" {
		t.Fatalf("unexpected id/status %s/%s", id, status)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if body["external_reference"] != "ord-1" || body["status_detail"] != "accredited" {
		t.Fatalf("unexpected response body: %v", body)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, _, _, err := g.CreatePayment(context.Background(), nil); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}
