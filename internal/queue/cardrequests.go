package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/services"
	"cardbank/internal/validator"
)

type CardCreator interface {
	CreateCards(ctx context.Context, userID string) ([]models.Card, error)
}

type ErrorQueue interface {
	Publish(queueName string, body []byte) error
}

// CardRequestHandler turns card-request messages into debit/credit card
// pairs. Permanently bad messages (malformed payload, invalid or unknown
// user) are parked on the error queue and acked so they never redeliver;
// transient failures are requeued so one bad message never blocks the rest
// of a batch.
type CardRequestHandler struct {
	service    CardCreator
	errors     ErrorQueue
	errorQueue string
}

func NewCardRequestHandler(service CardCreator, errors ErrorQueue, errorQueue string) *CardRequestHandler {
	return &CardRequestHandler{service: service, errors: errors, errorQueue: errorQueue}
}

type cardRequest struct {
	UserID string `json:"user_id"`
}

func (h *CardRequestHandler) HandleMessage(body []byte) bool {
	var req cardRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Printf("card-requests: failed to unmarshal payload: %v", err)
		h.parkMessage(body)
		return true
	}
	if err := validator.ValidateID(req.UserID); err != nil {
		log.Printf("card-requests: invalid user id %q", req.UserID)
		h.parkMessage(body)
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cards, err := h.service.CreateCards(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Printf("card-requests: unknown user %s", req.UserID)
			h.parkMessage(body)
			return true
		}
		log.Printf("card-requests: processing error for user %s: %v", req.UserID, err)
		return false
	}
	for _, card := range cards {
		log.Printf("card-requests: created %s card %s for user %s", card.Kind, card.ID, req.UserID)
	}
	return true
}

func (h *CardRequestHandler) parkMessage(body []byte) {
	if h.errors == nil {
		return
	}
	if err := h.errors.Publish(h.errorQueue, body); err != nil {
		log.Printf("card-requests: failed to park message on %s: %v", h.errorQueue, err)
	}
}
