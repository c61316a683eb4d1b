package handlers

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
}

// RegisterUser creates a user and returns the freshly issued API key. The key
// is shown exactly once; it is never readable again through the API.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.users.Register(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"api_key":  user.APIKey,
	})
}
