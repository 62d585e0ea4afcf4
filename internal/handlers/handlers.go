package handlers

import (
	"encoding/json"
	"net/http"

	"cardbank/internal/config"
	"cardbank/internal/websocket"
)

type Handler struct {
	cfg     config.Config
	service CardService
	hub     *websocket.Hub
}

func New(cfg config.Config, service CardService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:     cfg,
		service: service,
		hub:     hub,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
