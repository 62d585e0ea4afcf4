package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CardKindDebit  = "DEBIT"
	CardKindCredit = "CREDIT"

	CardStatusPending   = "PENDING"
	CardStatusActivated = "ACTIVATED"

	TransactionKindPurchase = "PURCHASE"
	TransactionKindPayment  = "PAYMENT"
	TransactionKindSaving   = "SAVING"
)

type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Card struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Kind      string           `db:"kind" json:"kind"`
	Status    string           `db:"status" json:"status"`
	Balance   decimal.Decimal  `db:"balance" json:"balance"`
	Limit     *decimal.Decimal `db:"credit_limit" json:"limit,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID        string          `db:"id" json:"id"`
	CardID    string          `db:"card_id" json:"card_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Merchant  string          `db:"merchant" json:"merchant"`
	Kind      string          `db:"kind" json:"kind"`
	Approved  bool            `db:"approved" json:"approved"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
