package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitwallet/internal/models"
	"bitwallet/internal/services"
	"bitwallet/internal/store"
)

func TestCreateTransaction(t *testing.T) {
	deps := testDeps{transfers: stubTransferService{transferFn: func(_ context.Context, apiKey string, fromAddress, toAddress, amountSats int64) (models.TransactionRecord, error) {
		if apiKey != "alice-key-1" || fromAddress != 1 || toAddress != 2 {
			t.Fatalf("unexpected call: key=%q from=%d to=%d", apiKey, fromAddress, toAddress)
		}
		if amountSats != 50_000_000 {
			t.Fatalf("amount = %d sats, want 50000000", amountSats)
		}
		return models.TransactionRecord{
			ID:              7,
			SenderAddress:   fromAddress,
			ReceiverAddress: toAddress,
			AmountSats:      amountSats,
			Kind:            models.KindCrossUser,
			CreatedAt:       time.Now().UTC(),
		}, nil
	}}}
	handler := newTestHandler(deps)

	body := `{"from_address":1,"to_address":2,"amount_btc":"0.5"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body)
	}
	var view transactionView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if view.ID != 7 || view.AmountBTC != "0.50000000" || view.Kind != string(models.KindCrossUser) {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestCreateTransactionBadAmount(t *testing.T) {
	handler := newTestHandler(testDeps{transfers: stubTransferService{transferFn: func(context.Context, string, int64, int64, int64) (models.TransactionRecord, error) {
		t.Fatal("service must not run for an unparseable amount")
		return models.TransactionRecord{}, nil
	}}})
	for _, amount := range []string{"", "abc", "0.123456789"} {
		body := `{"from_address":1,"to_address":2,"amount_btc":"` + amount + `"}`
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
		req.Header.Set("X-API-Key", "alice-key-1")
		recorder := doRequest(handler, req)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("amount %q: status = %d, want 400", amount, recorder.Code)
		}
	}
}

func TestCreateTransactionErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient funds", store.ErrInsufficientFunds, http.StatusBadRequest},
		{"foreign wallet", services.ErrWalletNotAccessible, http.StatusForbidden},
		{"unknown wallet", store.ErrWalletNotFound, http.StatusNotFound},
		{"same wallet", services.ErrSameWalletTransfer, http.StatusBadRequest},
		{"log down", services.ErrTransactionPersist, http.StatusInternalServerError},
		{"compensation failed", services.ErrCompensationFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(testDeps{transfers: stubTransferService{transferFn: func(context.Context, string, int64, int64, int64) (models.TransactionRecord, error) {
				return models.TransactionRecord{}, tc.err
			}}})
			body := `{"from_address":1,"to_address":2,"amount_btc":"0.5"}`
			req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
			req.Header.Set("X-API-Key", "alice-key-1")
			recorder := doRequest(handler, req)
			if recorder.Code != tc.status {
				t.Fatalf("status = %d, want %d", recorder.Code, tc.status)
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	deps := testDeps{transfers: stubTransferService{ownerHistoryFn: func(context.Context, string) ([]models.TransactionRecord, error) {
		return []models.TransactionRecord{
			{ID: 1, SenderAddress: 1, ReceiverAddress: 2, AmountSats: 100_000_000, Kind: models.KindSimple},
			{ID: 2, SenderAddress: 2, ReceiverAddress: 3, AmountSats: 25_000_000, Kind: models.KindCrossUser},
		}, nil
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set("X-API-Key", "alice-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	var views []transactionView
	if err := json.Unmarshal(recorder.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(views) != 2 || views[0].AmountBTC != "1.00000000" || views[1].AmountBTC != "0.25000000" {
		t.Fatalf("unexpected views: %+v", views)
	}
}

func TestWalletTransactionsAnyValidKey(t *testing.T) {
	deps := testDeps{transfers: stubTransferService{walletHistoryFn: func(_ context.Context, _ string, address int64) ([]models.TransactionRecord, error) {
		return []models.TransactionRecord{{ID: 1, SenderAddress: address, ReceiverAddress: 2, AmountSats: 1, Kind: models.KindSimple}}, nil
	}}}
	handler := newTestHandler(deps)

	req := httptest.NewRequest(http.MethodGet, "/wallets/99/transactions", nil)
	req.Header.Set("X-API-Key", "bob-key-1")
	recorder := doRequest(handler, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	var views []transactionView
	if err := json.Unmarshal(recorder.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(views) != 1 || views[0].FromAddress != 99 {
		t.Fatalf("unexpected views: %+v", views)
	}
}
