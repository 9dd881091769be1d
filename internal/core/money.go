// Package core provides the domain types of the budget tracker.
//
// Money is stored as integer cents. Parsing and JSON encoding go through
// shopspring/decimal so values like 12.5 and "12,50" are read exactly.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount with two fractional digits.
type Money struct {
	Cents int64
}

// MaxAmount bounds the magnitude of any amount read from input.
var MaxAmount = Money{Cents: 1_000_000_000_000_000}

// ParseMoney converts a decimal string to Money.
//
// Both dot (12.34) and comma (12,34) separators are accepted. A leading sign is
// allowed; negative amounts are valid input for transactions and saving deltas.
// Amounts with more than two significant fractional digits are rejected
// rather than rounded.
//
// Examples:
//
//	ParseMoney("12.34")  -> 1234 cents
//	ParseMoney("12,50")  -> 1250 cents
//	ParseMoney("-5")     -> -500 cents
//	ParseMoney("12.345") -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal converts d to Money. It fails with ErrInvalidAmount when d
// has sub-cent digits or exceeds MaxAmount in magnitude.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return Money{}, fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	if cents.Abs().GreaterThan(decimal.NewFromInt(MaxAmount.Cents)) {
		return Money{}, fmt.Errorf("%w: magnitude above %s", ErrInvalidAmount, MaxAmount)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the amount as a decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a bare JSON number (500, 12.5).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return ErrInvalidAmount
	}
	if strings.HasPrefix(raw, `"`) {
		parsed, err := ParseMoney(strings.Trim(raw, `"`))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return ErrInvalidAmount
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
