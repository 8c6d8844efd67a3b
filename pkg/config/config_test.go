package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Pricing.ExpressSurcharge != 20 {
		t.Fatalf("expected express surcharge 20, got %d", cfg.Pricing.ExpressSurcharge)
	}
	if cfg.Pricing.OnlineDiscount != 10 {
		t.Fatalf("expected online discount 10, got %d", cfg.Pricing.OnlineDiscount)
	}
	if cfg.Pricing.CouponStep != 50 || cfg.Pricing.CouponMax != 500 {
		t.Fatalf("unexpected coupon policy %d/%d", cfg.Pricing.CouponStep, cfg.Pricing.CouponMax)
	}
	if cfg.Pricing.RequirePaymentWhenFree {
		t.Fatalf("payment should not be required for free orders by default")
	}
	if got := cfg.Backend.Timeout; got != 10*time.Second {
		t.Fatalf("expected backend timeout 10s, got %v", got)
	}
	if cfg.WhatsApp.Number != "918800505769" {
		t.Fatalf("unexpected whatsapp number %q", cfg.WhatsApp.Number)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvExpressSurcharge, "30")
	t.Setenv(EnvRequirePaymentWhenFree, "true")
	t.Setenv(EnvBackendBaseURL, "https://orders.example.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Pricing.ExpressSurcharge != 30 {
		t.Fatalf("expected express surcharge override, got %d", cfg.Pricing.ExpressSurcharge)
	}
	if !cfg.Pricing.RequirePaymentWhenFree {
		t.Fatalf("expected payment-when-free toggle to be set")
	}
	if cfg.Backend.BaseURL != "https://orders.example.test" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.BaseURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNegativePricing(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvOnlineDiscount, "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected negative online discount to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
