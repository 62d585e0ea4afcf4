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

func TestGetCardFound(t *testing.T) {
	cardID := uuid.NewString()
	service := &stubService{
		getCardFn: func(ctx context.Context, id string) (models.Card, error) {
			return models.Card{
				ID:      id,
				UserID:  "user-1",
				Kind:    models.CardKindDebit,
				Status:  models.CardStatusActivated,
				Balance: decimal.RequireFromString("42.50"),
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodGet, "/cards/"+cardID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["id"] != cardID || body["kind"] != models.CardKindDebit {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetCardNotFound(t *testing.T) {
	service := &stubService{
		getCardFn: func(ctx context.Context, id string) (models.Card, error) {
			return models.Card{}, services.ErrCardNotFound
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodGet, "/cards/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestActivateCardEndpoint(t *testing.T) {
	cardID := uuid.NewString()
	activatedID := ""
	service := &stubService{
		activateFn: func(ctx context.Context, id string) error {
			activatedID = id
			return nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/cards/activate", map[string]any{
		"card_id": cardID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if activatedID != cardID {
		t.Fatalf("expected activation of %s, got %q", cardID, activatedID)
	}
	if decodeBody(t, rec)["message"] != "card activated successfully" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCardReportCSV(t *testing.T) {
	cardID := uuid.NewString()
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	service := &stubService{
		reportFn: func(ctx context.Context, id string) (models.Card, []models.Transaction, error) {
			return models.Card{ID: id}, []models.Transaction{
				{
					ID:        "tx-1",
					CardID:    id,
					Amount:    decimal.RequireFromString("19.99"),
					Merchant:  "corner store",
					Kind:      models.TransactionKindPurchase,
					Approved:  true,
					CreatedAt: createdAt,
				},
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodGet, "/cards/"+cardID+"/report", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report.csv") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "id;card_id;amount;merchant;kind;approved;created_at" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	expectedRow := "tx-1;" + cardID + ";19.99;corner store;PURCHASE;true;2026-08-01T12:00:00Z"
	if lines[1] != expectedRow {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestCardReportNotFound(t *testing.T) {
	service := &stubService{
		reportFn: func(ctx context.Context, id string) (models.Card, []models.Transaction, error) {
			return models.Card{}, nil, services.ErrCardNotFound
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodGet, "/cards/"+uuid.NewString()+"/report", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
