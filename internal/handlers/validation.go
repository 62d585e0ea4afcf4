package handlers

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"cardbank/internal/money"
)

// Amounts arrive as JSON numbers or strings; both parse through the money
// package's two-decimal rule.
func parseAmount(raw json.Number) (decimal.Decimal, error) {
	return money.Parse(raw.String())
}
