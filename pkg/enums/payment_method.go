package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a customer intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodOnline      PaymentMethod = "online"
	PaymentMethodPayAtOutlet PaymentMethod = "payatoutlet"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodOnline,
	PaymentMethodPayAtOutlet,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsOnline reports whether the method settles through the online payment widget.
func (p PaymentMethod) IsOnline() bool {
	return p == PaymentMethodOnline
}

// ParsePaymentMethod converts raw input into a PaymentMethod. Matching ignores case
// so "PayAtOutlet" and "PAYATOUTLET" resolve to the same method.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
