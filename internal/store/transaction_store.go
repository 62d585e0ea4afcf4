package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cardbank/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID        string
	CardID    string
	Amount    decimal.Decimal
	Merchant  string
	Kind      string
	Approved  bool
	CreatedAt time.Time
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO card_transactions (id, card_id, amount, merchant, kind, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.CardID, input.Amount, input.Merchant, input.Kind, input.Approved, input.CreatedAt,
	)
	return err
}

func (s *TransactionStore) ListByCard(ctx context.Context, cardID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, card_id, amount, merchant, kind, approved, created_at
		FROM card_transactions
		WHERE card_id = $1
		ORDER BY created_at
	`, cardID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByCard backs the activation counter; it is recomputed from the log on
// every check rather than cached.
func (s *TransactionStore) CountByCard(ctx context.Context, q Getter, cardID string) (int, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM card_transactions
		WHERE card_id = $1
	`, cardID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
