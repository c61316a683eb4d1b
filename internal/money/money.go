package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has more than 8 decimal places")
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

var satsPerBTC = decimal.NewFromInt(SatsPerBTC)

// ParseSats converts a decimal BTC string ("0.25") into satoshis.
func ParseSats(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value.Exponent() < -8 {
		return 0, ErrTooManyDecimals
	}
	sats := value.Mul(satsPerBTC)
	if !sats.IsInteger() {
		return 0, ErrTooManyDecimals
	}
	return sats.IntPart(), nil
}

// FormatBTC renders satoshis as a BTC string with eight decimal places.
func FormatBTC(sats int64) string {
	return decimal.NewFromInt(sats).Div(satsPerBTC).StringFixed(8)
}

// ToBTC returns the exact decimal BTC value of a satoshi amount.
func ToBTC(sats int64) decimal.Decimal {
	return decimal.NewFromInt(sats).Div(satsPerBTC)
}
