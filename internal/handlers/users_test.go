package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cardbank/internal/models"
)

func TestCreateUserEndpoint(t *testing.T) {
	service := &stubService{
		createUserFn: func(ctx context.Context, email, name string) (models.User, error) {
			if email != "holder@example.com" || name != "Sam Holder" {
				t.Fatalf("unexpected request: %s, %s", email, name)
			}
			return models.User{
				ID:        uuid.NewString(),
				Email:     email,
				Name:      name,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/users", map[string]any{
		"email": "holder@example.com",
		"name":  "Sam Holder",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["email"] != "holder@example.com" || body["id"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateUserValidation(t *testing.T) {
	router := newTestRouter(&stubService{})
	cases := []map[string]any{
		{"email": "not-an-email", "name": "Sam Holder"},
		{"email": "holder@example.com", "name": "   "},
		{"email": "", "name": "Sam Holder"},
	}
	for _, body := range cases {
		rec := doJSON(t, router, http.MethodPost, "/users", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	service := &stubService{
		createUserFn: func(ctx context.Context, email, name string) (models.User, error) {
			return models.User{}, &pq.Error{Code: "23505"}
		},
	}
	rec := doJSON(t, newTestRouter(service), http.MethodPost, "/users", map[string]any{
		"email": "holder@example.com",
		"name":  "Sam Holder",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "email already registered" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
