package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/users", h.CreateUser)
	router.Post("/purchases", h.ProcessPurchase)
	router.Post("/transactions", h.SaveTransaction)
	router.Route("/cards", func(r chi.Router) {
		r.Post("/activate", h.ActivateCard)
		r.Get("/{card_id}", h.GetCard)
		r.Post("/{card_id}/payments", h.PayCard)
		r.Get("/{card_id}/report", h.CardReport)
	})
	router.Get("/ws/cards", h.WSCards)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
