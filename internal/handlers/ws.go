package handlers

import (
	"net/http"

	"cardbank/internal/validator"
	"cardbank/internal/websocket"
)

// WSCards streams card updates for one user. Subscription is keyed by the
// user_id query parameter.
func (h *Handler) WSCards(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if err := validator.ValidateID(userID); err != nil {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	websocket.ServeWS(w, r, h.hub, userID)
}
