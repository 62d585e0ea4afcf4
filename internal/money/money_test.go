package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseValid(t *testing.T) {
	amount, err := Parse("10.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected amount: %s", amount)
	}
}

func TestParseWholeNumber(t *testing.T) {
	amount, err := Parse("150")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Format(amount) != "150.00" {
		t.Fatalf("unexpected format: %s", Format(amount))
	}
}

func TestParseTooManyDecimals(t *testing.T) {
	if _, err := Parse("10.505"); err != ErrTooManyDecimals {
		t.Fatalf("expected ErrTooManyDecimals, got %v", err)
	}
}

func TestParseTrailingZeros(t *testing.T) {
	amount, err := Parse("10.500")
	if err != nil {
		t.Fatalf("trailing zeros are exact at two decimals: %v", err)
	}
	if Format(amount) != "10.50" {
		t.Fatalf("unexpected format: %s", Format(amount))
	}
}

func TestParseRejectsNonPositive(t *testing.T) {
	for _, raw := range []string{"0", "-5", "0.00"} {
		if _, err := Parse(raw); err != ErrInvalidAmount {
			t.Fatalf("expected ErrInvalidAmount for %q, got %v", raw, err)
		}
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("ten"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRound2HalfUp(t *testing.T) {
	cases := map[string]string{
		"1.005":  "1.01",
		"2.675":  "2.68",
		"0.994":  "0.99",
		"100.00": "100.00",
	}
	for input, expected := range cases {
		rounded := Round2(decimal.RequireFromString(input))
		if Format(rounded) != expected {
			t.Fatalf("Round2(%s) = %s, expected %s", input, Format(rounded), expected)
		}
	}
}

func TestRandomCreditLimitRange(t *testing.T) {
	floor := decimal.NewFromInt(100)
	ceiling := decimal.NewFromInt(10000000)
	for i := 0; i < 100; i++ {
		limit := RandomCreditLimit()
		if limit.LessThan(floor) || limit.GreaterThan(ceiling) {
			t.Fatalf("limit %s out of range", limit)
		}
		if limit.Exponent() < -2 {
			t.Fatalf("limit %s has more than two decimal places", limit)
		}
	}
}
