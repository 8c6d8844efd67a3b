// Package money handles whole-rupee amounts as they appear in catalogs, estimates and
// customer-facing text.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Symbol = "₹"

var printer = message.NewPrinter(language.English)

// ParseAmount converts user or catalog input ("450", "450.00", "₹1,100") into whole
// rupees. Fractional and negative amounts are rejected.
func ParseAmount(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, Symbol)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", raw)
	}
	if !value.IsInteger() {
		return 0, fmt.Errorf("amount %q must be whole rupees", raw)
	}
	return int(value.IntPart()), nil
}

// Format renders an amount with the rupee symbol and thousands grouping, e.g. ₹2,000.
func Format(amount int) string {
	return Symbol + printer.Sprintf("%d", amount)
}

// Plain renders an amount with the rupee symbol and no grouping, e.g. ₹2000.
func Plain(amount int) string {
	return fmt.Sprintf("%s%d", Symbol, amount)
}
