package service

import (
	"github.com/shopspring/decimal"

	"go-jewelry-pos/internal/apperror"
)

// parseDecimal converts a decimal string from a request payload.
// Prices and weights travel as strings so clients never round them
// through floats. Empty input yields zero unless the field is
// required; negative amounts are always rejected.
func parseDecimal(field, raw string, required bool) (decimal.Decimal, error) {
	if raw == "" {
		if required {
			return decimal.Zero, apperror.Validationf("%s is required", field)
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperror.Validationf("%s is not a valid decimal: %q", field, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, apperror.Validationf("%s must not be negative", field)
	}
	return d, nil
}
