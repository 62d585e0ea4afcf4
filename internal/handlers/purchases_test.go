package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cardbank/internal/models"
	"cardbank/internal/services"
)

func TestProcessPurchaseApproved(t *testing.T) {
	cardID := uuid.NewString()
	service := &stubService{
		purchaseFn: func(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error) {
			if req.CardID != cardID || req.Merchant != "bookshop" {
				t.Fatalf("unexpected request: %+v", req)
			}
			if !req.Amount.Equal(decimal.RequireFromString("50")) {
				t.Fatalf("unexpected amount: %s", req.Amount)
			}
			return services.PurchaseResult{
				TransactionID: "tx-1",
				Approved:      true,
				NewBalance:    decimal.Zero,
				CreatedAt:     time.Now().UTC(),
			}, nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/purchases", map[string]any{
		"card_id":  cardID,
		"amount":   50,
		"merchant": "bookshop",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["approved"] != true || body["new_balance"] != "0.00" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["message"] != "purchase approved" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProcessPurchaseRejected(t *testing.T) {
	service := &stubService{
		purchaseFn: func(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error) {
			return services.PurchaseResult{
				TransactionID: "tx-1",
				Approved:      false,
				NewBalance:    decimal.RequireFromString("20.00"),
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/purchases", map[string]any{
		"card_id":  uuid.NewString(),
		"amount":   "30.00",
		"merchant": "bookshop",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["approved"] != false {
		t.Fatalf("expected rejection, got %v", body)
	}
	if body["message"] != "purchase rejected: insufficient funds" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProcessPurchasePendingCreditCard(t *testing.T) {
	service := &stubService{
		purchaseFn: func(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error) {
			return services.PurchaseResult{}, &services.NotActivatedError{Kind: models.CardKindCredit}
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/purchases", map[string]any{
		"card_id":  uuid.NewString(),
		"amount":   10,
		"merchant": "bookshop",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	message, _ := body["error"].(string)
	if !strings.Contains(message, "10 debit card transactions") {
		t.Fatalf("expected activation hint, got %q", message)
	}
}

func TestProcessPurchaseCardNotFound(t *testing.T) {
	service := &stubService{
		purchaseFn: func(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error) {
			return services.PurchaseResult{}, services.ErrCardNotFound
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/purchases", map[string]any{
		"card_id":  uuid.NewString(),
		"amount":   10,
		"merchant": "bookshop",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessPurchaseValidation(t *testing.T) {
	router := newTestRouter(&stubService{})
	cases := []map[string]any{
		{"card_id": "not-a-uuid", "amount": 10, "merchant": "bookshop"},
		{"card_id": uuid.NewString(), "amount": 10, "merchant": "   "},
		{"card_id": uuid.NewString(), "amount": "-5", "merchant": "bookshop"},
		{"card_id": uuid.NewString(), "amount": "10.505", "merchant": "bookshop"},
	}
	for _, body := range cases {
		rec := doJSON(t, router, http.MethodPost, "/purchases", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
	}
}
