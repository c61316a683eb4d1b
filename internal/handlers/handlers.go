package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bitwallet/internal/money"
	"bitwallet/internal/services"
	"bitwallet/internal/store"
	"bitwallet/internal/validator"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrOwnerNotFound):
		respondError(w, http.StatusUnauthorized, "invalid api key")
	case errors.Is(err, services.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrWalletNotAccessible):
		respondError(w, http.StatusForbidden, "wallet_access_denied")
	case errors.Is(err, services.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, "wallet_not_found")
	case errors.Is(err, services.ErrWalletQuotaExceeded):
		respondError(w, http.StatusConflict, "wallet_quota_exceeded")
	case errors.Is(err, store.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "username_taken")
	case errors.Is(err, validator.ErrInvalidUsername):
		respondError(w, http.StatusBadRequest, "invalid_username")
	case errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, money.ErrInvalidAmount), errors.Is(err, money.ErrTooManyDecimals):
		respondError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, services.ErrSameWalletTransfer):
		respondError(w, http.StatusBadRequest, "same_wallet_transfer")
	case errors.Is(err, services.ErrConversionUnavailable):
		respondError(w, http.StatusBadGateway, "conversion_unavailable")
	case errors.Is(err, services.ErrCompensationFailed),
		errors.Is(err, services.ErrTransactionPersist),
		errors.Is(err, services.ErrProfitPersist):
		respondError(w, http.StatusInternalServerError, "transfer_failed")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error")
	}
}
