package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardbank/internal/config"
	"cardbank/internal/models"
	"cardbank/internal/services"
	"cardbank/internal/websocket"
)

type stubService struct {
	createUserFn func(ctx context.Context, email, name string) (models.User, error)
	purchaseFn   func(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error)
	payFn        func(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error)
	saveFn       func(ctx context.Context, req services.SavingRequest) (services.SavingResult, error)
	activateFn   func(ctx context.Context, cardID string) error
	getCardFn    func(ctx context.Context, cardID string) (models.Card, error)
	reportFn     func(ctx context.Context, cardID string) (models.Card, []models.Transaction, error)
}

func (s *stubService) CreateUser(ctx context.Context, email, name string) (models.User, error) {
	if s.createUserFn == nil {
		return models.User{}, sql.ErrConnDone
	}
	return s.createUserFn(ctx, email, name)
}

func (s *stubService) Purchase(ctx context.Context, req services.PurchaseRequest) (services.PurchaseResult, error) {
	if s.purchaseFn == nil {
		return services.PurchaseResult{}, sql.ErrConnDone
	}
	return s.purchaseFn(ctx, req)
}

func (s *stubService) PayCard(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
	if s.payFn == nil {
		return services.PaymentResult{}, sql.ErrConnDone
	}
	return s.payFn(ctx, req)
}

func (s *stubService) Save(ctx context.Context, req services.SavingRequest) (services.SavingResult, error) {
	if s.saveFn == nil {
		return services.SavingResult{}, sql.ErrConnDone
	}
	return s.saveFn(ctx, req)
}

func (s *stubService) ActivateCard(ctx context.Context, cardID string) error {
	if s.activateFn == nil {
		return sql.ErrConnDone
	}
	return s.activateFn(ctx, cardID)
}

func (s *stubService) GetCard(ctx context.Context, cardID string) (models.Card, error) {
	if s.getCardFn == nil {
		return models.Card{}, sql.ErrConnDone
	}
	return s.getCardFn(ctx, cardID)
}

func (s *stubService) Report(ctx context.Context, cardID string) (models.Card, []models.Transaction, error) {
	if s.reportFn == nil {
		return models.Card{}, nil, sql.ErrConnDone
	}
	return s.reportFn(ctx, cardID)
}

func newTestRouter(service *stubService) http.Handler {
	cfg := config.Config{AllowedOrigins: "*"}
	return New(cfg, service, websocket.NewHub()).Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}
