package handlers

import (
	"context"

	"cardbank/internal/models"
	"cardbank/internal/services"
)

type CardService interface {
	CreateUser(ctx context.Context, email, name string) (models.User, error)
	Purchase(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error)
	PayCard(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error)
	Save(ctx context.Context, req services.SavingRequest) (services.SavingResult, error)
	ActivateCard(ctx context.Context, cardID string) error
	GetCard(ctx context.Context, cardID string) (models.Card, error)
	Report(ctx context.Context, cardID string) (models.Card, []models.Transaction, error)
}
