package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitwallet/internal/services"
	"bitwallet/internal/store"
)

func TestCreateWalletRequiresKey(t *testing.T) {
	handler := newTestHandler(testDeps{})
	recorder := doRequest(handler, httptest.NewRequest(http.MethodPost, "/wallets", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestCreateWallet(t *testing.T) {
	deps := testDeps{wallets: stubWalletService{createFn: func(_ context.Context, apiKey string) (services.WalletView, error) {
		if apiKey != "alice-key-1" {
			t.Fatalf("service got key %q", apiKey)
		}
		return services.WalletView{Address: 4, AmountBTC: "1.00000000", AmountUSD: "50000.00"}, nil
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodPost, "/wallets", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body)
	}
	var view services.WalletView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if view.Address != 4 || view.AmountUSD != "50000.00" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestCreateWalletQuotaExceeded(t *testing.T) {
	deps := testDeps{wallets: stubWalletService{createFn: func(context.Context, string) (services.WalletView, error) {
		return services.WalletView{}, store.ErrWalletQuotaExceeded
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodPost, "/wallets", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", recorder.Code)
	}
}

func TestGetWalletInvalidAddress(t *testing.T) {
	handler := newTestHandler(testDeps{})
	req := httptest.NewRequest(http.MethodGet, "/wallets/notanumber", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestGetWalletForeign(t *testing.T) {
	deps := testDeps{wallets: stubWalletService{getFn: func(context.Context, string, int64) (services.WalletView, error) {
		return services.WalletView{}, store.ErrWalletNotFound
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/wallets/9", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestGetWalletConversionDown(t *testing.T) {
	deps := testDeps{wallets: stubWalletService{getFn: func(context.Context, string, int64) (services.WalletView, error) {
		return services.WalletView{}, services.ErrConversionUnavailable
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/wallets/9", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", recorder.Code)
	}
}
