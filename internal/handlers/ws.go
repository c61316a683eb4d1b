package handlers

import (
	"net/http"

	"bitwallet/internal/middleware"
	"bitwallet/internal/websocket"
)

// WSTransactions upgrades the connection and streams transfer notices for the
// caller's wallets until the socket closes.
func (h *Handler) WSTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	websocket.ServeWS(w, r, h.hub, ownerID)
}
