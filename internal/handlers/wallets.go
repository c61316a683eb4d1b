package handlers

import (
	"net/http"
	"strconv"

	"bitwallet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := middleware.APIKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.wallets.CreateWallet(r.Context(), apiKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := middleware.APIKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	address, err := parseAddress(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}
	view, err := h.wallets.GetWallet(r.Context(), apiKey, address)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// WalletTransactions lists transfers touching a wallet. Any valid API key may
// query any wallet's history; only the key itself is verified.
func (h *Handler) WalletTransactions(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := middleware.APIKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	address, err := parseAddress(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}
	records, err := h.transfers.WalletHistory(r.Context(), apiKey, address)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionViews(records))
}

func parseAddress(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "address"), 10, 64)
}
