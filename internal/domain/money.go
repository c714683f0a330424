package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the fixed display symbol; the system is single-currency.
const CurrencySymbol = "$"

// moneyPlaces is the number of fraction digits every stored amount carries.
const moneyPlaces = 2

// ParseAmount parses a monetary value from untrusted input into a decimal
// with exactly two fraction digits. It accepts an optional leading currency
// symbol and rounds half-up (decimal.Round is half away from zero, which is
// the same thing for the non-negative values accepted here). Negative or
// unparseable input fails with ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), CurrencySymbol))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative value %q", ErrInvalidAmount, raw)
	}
	return d.Round(moneyPlaces), nil
}

// FormatAmount renders an amount with the currency symbol and exactly two
// fraction digits. ParseAmount(FormatAmount(d)) round-trips.
func FormatAmount(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(moneyPlaces)
}

// Amount is a request-boundary decimal that unmarshals from either a JSON
// string or a JSON number, since the upstream clients send both. The decoded
// value is validated and normalized through ParseAmount.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a JSON string, treat it as a bare number.
		raw = string(data)
	}
	d, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// MarshalJSON implements json.Marshaler, always rendering two fraction digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(moneyPlaces))
}
