package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardbank/internal/models"
	"cardbank/internal/money"
	"cardbank/internal/services"
	"cardbank/internal/validator"
)

type purchaseRequest struct {
	CardID   string      `json:"card_id"`
	Amount   json.Number `json:"amount"`
	Merchant string      `json:"merchant"`
}

func (h *Handler) ProcessPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateID(req.CardID); err != nil {
		respondError(w, http.StatusBadRequest, "card_id is required")
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

	result, err := h.service.Purchase(r.Context(), services.PurchaseRequest{
		CardID:   req.CardID,
		Amount:   amount,
		Merchant: req.Merchant,
	})
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "card_not_found")
			return
		}
		if errors.Is(err, services.ErrCardNotActivated) {
			respondError(w, http.StatusBadRequest, notActivatedMessage(err))
			return
		}
		if errors.Is(err, services.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		respondError(w, http.StatusInternalServerError, "purchase_failed")
		return
	}

	message := "purchase approved"
	if !result.Approved {
		message = "purchase rejected: insufficient funds"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"transaction_id": result.TransactionID,
		"approved":       result.Approved,
		"new_balance":    money.Format(result.NewBalance),
		"message":        message,
	})
}

func notActivatedMessage(err error) string {
	var notActivated *services.NotActivatedError
	if errors.As(err, &notActivated) && notActivated.Kind == models.CardKindCredit {
		return "credit card not activated: complete at least 10 debit card transactions to activate it"
	}
	return "card_not_activated"
}
