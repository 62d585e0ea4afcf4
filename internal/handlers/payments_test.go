package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cardbank/internal/services"
)

func TestPayCardEndpoint(t *testing.T) {
	cardID := uuid.NewString()
	service := &stubService{
		payFn: func(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
			if req.CardID != cardID {
				t.Fatalf("unexpected card id: %s", req.CardID)
			}
			return services.PaymentResult{
				TransactionID:   "tx-1",
				PreviousBalance: decimal.RequireFromString("900.00"),
				NewBalance:      decimal.RequireFromString("1000.00"),
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/cards/"+cardID+"/payments", map[string]any{
		"amount":   "100.00",
		"merchant": "bank branch",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "credit card paid successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["previous_balance"] != "900.00" || body["new_balance"] != "1000.00" {
		t.Fatalf("unexpected balances: %v", body)
	}
	if body["payment_amount"] != "100.00" {
		t.Fatalf("unexpected payment amount: %v", body["payment_amount"])
	}
}

func TestPayCardLimitExceededResponse(t *testing.T) {
	service := &stubService{
		payFn: func(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
			return services.PaymentResult{}, &services.LimitExceededError{
				CurrentBalance:    decimal.RequireFromString("900.00"),
				PaymentAmount:     decimal.RequireFromString("150.00"),
				MaxAllowedPayment: decimal.RequireFromString("100.00"),
			}
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/cards/"+uuid.NewString()+"/payments", map[string]any{
		"amount":   "150.00",
		"merchant": "bank branch",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "payment exceeds card limit" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
	if body["max_allowed_payment"] != "100.00" {
		t.Fatalf("expected max allowed payment, got %v", body)
	}
	if body["current_balance"] != "900.00" || body["payment_amount"] != "150.00" {
		t.Fatalf("unexpected amounts: %v", body)
	}
}

func TestPayCardRejectsNonCreditCard(t *testing.T) {
	service := &stubService{
		payFn: func(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
			return services.PaymentResult{}, services.ErrWrongCardKind
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/cards/"+uuid.NewString()+"/payments", map[string]any{
		"amount":   "10.00",
		"merchant": "bank branch",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "payments are only accepted on credit cards" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPayCardInvalidCardID(t *testing.T) {
	rec := doJSON(t, newTestRouter(&stubService{}), http.MethodPost, "/cards/not-a-uuid/payments", map[string]any{
		"amount":   "10.00",
		"merchant": "bank branch",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
