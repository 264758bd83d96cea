package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const maxReferenceLength = 128

// ValidateReference checks that a merchant reference is usable as a store key
func ValidateReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("reference is required")
	}
	if len(reference) > maxReferenceLength {
		return fmt.Errorf("reference must be at most %d characters", maxReferenceLength)
	}
	return nil
}

// ValidateAmountBounds checks that amountCents lies within [minCents, maxCents]
func ValidateAmountBounds(amountCents, minCents, maxCents int64, currency string) error {
	if amountCents < minCents {
		return fmt.Errorf("amount must be at least %s %s", FormatCents(minCents), currency)
	}
	if amountCents > maxCents {
		return fmt.Errorf("amount must be at most %s %s", FormatCents(maxCents), currency)
	}
	return nil
}

// FormatCents renders an amount in minor units as a fixed two-decimal string
func FormatCents(amountCents int64) string {
	return decimal.New(amountCents, -2).StringFixed(2)
}
