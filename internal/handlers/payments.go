package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cardbank/internal/money"
	"cardbank/internal/services"
	"cardbank/internal/validator"
)

type paymentRequest struct {
	Amount   json.Number `json:"amount"`
	Merchant string      `json:"merchant"`
}

func (h *Handler) PayCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "card_id")
	if err := validator.ValidateID(cardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateMerchant(req.Merchant); err != nil {
		respondError(w, http.StatusBadRequest, "merchant is required")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}

	result, err := h.service.PayCard(r.Context(), services.PaymentRequest{
		CardID:   cardID,
		Amount:   amount,
		Merchant: req.Merchant,
	})
	if err != nil {
		var limitErr *services.LimitExceededError
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			respondError(w, http.StatusNotFound, "card_not_found")
		case errors.Is(err, services.ErrWrongCardKind):
			respondError(w, http.StatusBadRequest, "payments are only accepted on credit cards")
		case errors.Is(err, services.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "invalid_amount")
		case errors.As(err, &limitErr):
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":               "payment exceeds card limit",
				"current_balance":     money.Format(limitErr.CurrentBalance),
				"payment_amount":      money.Format(limitErr.PaymentAmount),
				"max_allowed_payment": money.Format(limitErr.MaxAllowedPayment),
			})
		default:
			respondError(w, http.StatusInternalServerError, "payment_failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":          "credit card paid successfully",
		"transaction_id":   result.TransactionID,
		"payment_amount":   money.Format(amount),
		"previous_balance": money.Format(result.PreviousBalance),
		"new_balance":      money.Format(result.NewBalance),
		"merchant":         req.Merchant,
	})
}
