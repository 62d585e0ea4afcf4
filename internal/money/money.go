package money

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// Parse accepts a positive decimal amount with at most two fractional
// digits. Trailing zeros are fine; "10.500" is exactly 10.50.
func Parse(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, ErrTooManyDecimals
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

var (
	creditLimitFloor = decimal.NewFromInt(100)
	creditLimitSpan  = decimal.NewFromInt(10000000 - 100)
	hundred          = decimal.NewFromInt(100)
)

// RandomCreditLimit scores the holder 0..100 and maps the score linearly
// onto [100, 10_000_000), rounded to cents.
func RandomCreditLimit() decimal.Decimal {
	score := decimal.NewFromInt(int64(rand.Intn(101)))
	limit := creditLimitFloor.Add(score.Div(hundred).Mul(creditLimitSpan))
	return Round2(limit)
}
