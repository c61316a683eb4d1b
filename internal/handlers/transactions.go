package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"bitwallet/internal/middleware"
	"bitwallet/internal/models"
	"bitwallet/internal/money"
)

type createTransactionRequest struct {
	FromAddress int64  `json:"from_address"`
	ToAddress   int64  `json:"to_address"`
	AmountBTC   string `json:"amount_btc"`
}

type transactionView struct {
	ID          int64     `json:"id"`
	FromAddress int64     `json:"from_address"`
	ToAddress   int64     `json:"to_address"`
	AmountBTC   string    `json:"amount_btc"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

func transactionViews(records []models.TransactionRecord) []transactionView {
	views := make([]transactionView, 0, len(records))
	for _, rec := range records {
		views = append(views, transactionView{
			ID:          rec.ID,
			FromAddress: rec.SenderAddress,
			ToAddress:   rec.ReceiverAddress,
			AmountBTC:   money.FormatBTC(rec.AmountSats),
			Kind:        string(rec.Kind),
			CreatedAt:   rec.CreatedAt,
		})
	}
	return views
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := middleware.APIKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountSats, err := money.ParseSats(req.AmountBTC)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	rec, err := h.transfers.Transfer(r.Context(), apiKey, req.FromAddress, req.ToAddress, amountSats)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	views := transactionViews([]models.TransactionRecord{rec})
	respondJSON(w, http.StatusCreated, views[0])
}

// ListTransactions returns the caller's full history across all owned wallets.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	apiKey, ok := middleware.APIKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	records, err := h.transfers.OwnerHistory(r.Context(), apiKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionViews(records))
}
