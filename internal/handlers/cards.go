package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cardbank/internal/models"
	"cardbank/internal/money"
	"cardbank/internal/services"
	"cardbank/internal/validator"
)

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "card_id")
	if err := validator.ValidateID(cardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
		return
	}
	card, err := h.service.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "card_not_found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load card")
		return
	}
	respondJSON(w, http.StatusOK, card)
}

type activateRequest struct {
	CardID string `json:"card_id"`
}

func (h *Handler) ActivateCard(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateID(req.CardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
		return
	}
	if err := h.service.ActivateCard(r.Context(), req.CardID); err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "card_not_found")
			return
		}
		respondError(w, http.StatusInternalServerError, "activation_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "card activated successfully"})
}

func (h *Handler) CardReport(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "card_id")
	if err := validator.ValidateID(cardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
		return
	}
	_, transactions, err := h.service.Report(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "card_not_found")
			return
		}
		respondError(w, http.StatusInternalServerError, "report_failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.WriteHeader(http.StatusOK)
	_ = writeReportCSV(w, transactions)
}

func writeReportCSV(w http.ResponseWriter, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	if err := writer.Write([]string{"id", "card_id", "amount", "merchant", "kind", "approved", "created_at"}); err != nil {
		return err
	}
	for _, tx := range transactions {
		approved := "false"
		if tx.Approved {
			approved = "true"
		}
		record := []string{
			tx.ID,
			tx.CardID,
			money.Format(tx.Amount),
			tx.Merchant,
			tx.Kind,
			approved,
			tx.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
