package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.LogLevel != "info" || cfg.OrdersTable != "orders" || cfg.PaymentGatewayMock {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9090\nLOG_LEVEL=DEBUG\nORDERS_TABLE=file-orders\nPAYMENTS_TABLE=file-payments\n"
	if err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PAYMENTS_TABLE", "env-payments")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.LogLevel != "debug" || cfg.OrdersTable != "file-orders" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.PaymentsTable != "env-payments" || !cfg.PaymentGatewayMock {
		t.Fatalf("env values must win: %+v", cfg)
	}
}
