package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hnibbo/hup-backend/internal/config"
)

func TestKeyPrefixValidation(t *testing.T) {
	cases := []struct {
		key         string
		publishable bool
		secret      bool
	}{
		{"pk_test_abc123", true, false},
		{"pk_live_abc123", true, false},
		{"sk_test_abc123", false, true},
		{"sk_live_abc123", false, true},
		{"rk_live_abc123", false, true},
		{"whsec_abc123", false, false},
		{"", false, false},
		{"PK_test_abc", false, false},
	}

	for _, c := range cases {
		if got := ValidPublishableKey(c.key); got != c.publishable {
			t.Errorf("ValidPublishableKey(%q) = %v, want %v", c.key, got, c.publishable)
		}
		if got := ValidSecretKey(c.key); got != c.secret {
			t.Errorf("ValidSecretKey(%q) = %v, want %v", c.key, got, c.secret)
		}
	}
}

func TestNewStripeServiceRejectsBadKeys(t *testing.T) {
	base := config.Config{
		StripePublishableKey: "pk_test_abc",
		StripeSecretKey:      "sk_test_abc",
		BillingFunctionsURL:  "https://billing.example.com",
	}

	cfg := base
	cfg.StripePublishableKey = "sk_test_abc"
	if _, err := NewStripeService(&cfg); err == nil {
		t.Error("expected error for secret key used as publishable key")
	}

	cfg = base
	cfg.StripeSecretKey = "pk_test_abc"
	if _, err := NewStripeService(&cfg); err == nil {
		t.Error("expected error for publishable key used as secret key")
	}

	cfg = base
	cfg.BillingFunctionsURL = ""
	if _, err := NewStripeService(&cfg); err == nil {
		t.Error("expected error for missing billing functions URL")
	}

	cfg = base
	if _, err := NewStripeService(&cfg); err != nil {
		t.Errorf("expected valid config to succeed, got %v", err)
	}

	cfg = base
	cfg.StripeSecretKey = "rk_live_restricted"
	if _, err := NewStripeService(&cfg); err != nil {
		t.Errorf("expected restricted key to be accepted, got %v", err)
	}
}

func TestCreatePortalSessionProxiesAction(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stripe-admin" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test_abc" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://billing.stripe.com/session/xyz"})
	}))
	defer srv.Close()

	svc, err := NewStripeService(&config.Config{
		StripePublishableKey: "pk_test_abc",
		StripeSecretKey:      "sk_test_abc",
		BillingFunctionsURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewStripeService: %v", err)
	}

	url, err := svc.CreatePortalSession(context.Background(), "cus_123", "https://hup.app/account")
	if err != nil {
		t.Fatalf("CreatePortalSession: %v", err)
	}
	if url != "https://billing.stripe.com/session/xyz" {
		t.Errorf("unexpected portal URL %q", url)
	}
	if received["action"] != "create-portal" {
		t.Errorf("expected action create-portal, got %v", received["action"])
	}
	if received["customerId"] != "cus_123" {
		t.Errorf("expected customerId cus_123, got %v", received["customerId"])
	}
}

func TestSubscriptionStatusFallsBackToFree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"upstream down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	svc, err := NewStripeService(&config.Config{
		StripePublishableKey: "pk_test_abc",
		StripeSecretKey:      "sk_test_abc",
		BillingFunctionsURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewStripeService: %v", err)
	}

	status, err := svc.GetSubscriptionStatus(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetSubscriptionStatus: %v", err)
	}
	if status.Tier != "free" || status.Status != "inactive" {
		t.Errorf("expected free/inactive fallback, got %s/%s", status.Tier, status.Status)
	}
}
