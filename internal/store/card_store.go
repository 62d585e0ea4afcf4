package store

import (
	"context"

	"github.com/shopspring/decimal"

	"cardbank/internal/models"
)

type CardStore struct {
	db DB
}

func NewCardStore(db DB) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) Create(ctx context.Context, tx Execer, card models.Card) error {
	query := `
		INSERT INTO cards (id, user_id, kind, status, balance, credit_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		card.ID, card.UserID, card.Kind, card.Status, card.Balance, card.Limit, card.CreatedAt,
	)
	return err
}

func (s *CardStore) GetByID(ctx context.Context, cardID string) (models.Card, error) {
	var row models.Card
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, kind, status, balance, credit_limit, created_at
		FROM cards
		WHERE id = $1
	`, cardID)
	if err != nil {
		return models.Card{}, err
	}
	return row, nil
}

func (s *CardStore) GetForUpdate(ctx context.Context, tx Getter, cardID string) (models.Card, error) {
	var row models.Card
	err := tx.GetContext(ctx, &row, `
		SELECT id, user_id, kind, status, balance, credit_limit, created_at
		FROM cards
		WHERE id = $1
		FOR UPDATE
	`, cardID)
	if err != nil {
		return models.Card{}, err
	}
	return row, nil
}

// GetByUser models the implicit card-to-owner link: cards are related to a
// user only through user_id, so callers filter the result by kind.
func (s *CardStore) GetByUser(ctx context.Context, q Selecter, userID string) ([]models.Card, error) {
	var rows []models.Card
	err := q.SelectContext(ctx, &rows, `
		SELECT id, user_id, kind, status, balance, credit_limit, created_at
		FROM cards
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CardStore) UpdateBalance(ctx context.Context, tx Execer, cardID string, balance decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE cards
		SET balance = $1
		WHERE id = $2
	`, balance, cardID)
	return err
}

func (s *CardStore) UpdateStatus(ctx context.Context, tx Execer, cardID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE cards
		SET status = $1
		WHERE id = $2
	`, status, cardID)
	return err
}
