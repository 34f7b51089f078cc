package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumeric coerces the text form of a NUMERIC column to float64.
// Absent or malformed values become 0.
func ParseNumeric(raw *string) float64 {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return 0
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
