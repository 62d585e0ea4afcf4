package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardbank/internal/money"
	"cardbank/internal/services"
	"cardbank/internal/validator"
)

type savingRequest struct {
	CardID      string      `json:"card_id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

func (h *Handler) SaveTransaction(w http.ResponseWriter, r *http.Request) {
	var req savingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateID(req.CardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}

	result, err := h.service.Save(r.Context(), services.SavingRequest{
		CardID:      req.CardID,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			respondError(w, http.StatusNotFound, "card_not_found")
		case errors.Is(err, services.ErrWrongCardKind):
			respondError(w, http.StatusBadRequest, "savings are only accepted on debit cards")
		case errors.Is(err, services.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "invalid_amount")
		default:
			respondError(w, http.StatusInternalServerError, "transaction_failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":        "transaction saved successfully",
		"transaction_id": result.TransactionID,
		"new_balance":    money.Format(result.NewBalance),
	})
}
