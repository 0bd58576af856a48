package production

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrQuantityEmpty     = errors.New("quantity is required")
	ErrQuantityNotNumber = errors.New("quantity is not a number")
	ErrQuantityNegative  = errors.New("quantity must not be negative")
	ErrQuantityPrecision = errors.New("quantity allows at most 2 decimal places")
	ErrQuantityTooLarge  = errors.New("quantity is too large")
)

// Column limits mirrored from the schema: NUMERIC(12,2) and NUMERIC(5,2).
const (
	QuantityIntDigits   = 10
	ShiftHoursIntDigits = 3
	quantityScale       = 2
)

// ParseQuantity turns form/JSON text into a validated NUMERIC(12,2) value.
func ParseQuantity(s string) (decimal.Decimal, error) {
	return parseFixed(s, QuantityIntDigits)
}

// ParseShiftHours turns text into a validated NUMERIC(5,2) value.
func ParseShiftHours(s string) (decimal.Decimal, error) {
	return parseFixed(s, ShiftHoursIntDigits)
}

func parseFixed(s string, intDigits int) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrQuantityEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrQuantityNotNumber
	}
	if d.IsNegative() {
		return decimal.Zero, ErrQuantityNegative
	}
	if !d.Equal(d.Truncate(quantityScale)) {
		return decimal.Zero, ErrQuantityPrecision
	}
	limit := decimal.New(1, int32(intDigits))
	if d.GreaterThanOrEqual(limit) {
		return decimal.Zero, ErrQuantityTooLarge
	}
	return d.Round(quantityScale), nil
}
