package handlers

import (
	"net/http"

	"bitwallet/internal/middleware"
	"bitwallet/internal/money"
)

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	adminKey, ok := middleware.AdminKeyFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := h.statistics.Statistics(r.Context(), adminKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"transaction_count": stats.TransactionCount,
		"total_profit_btc":  money.FormatBTC(stats.TotalProfitSats),
	})
}
