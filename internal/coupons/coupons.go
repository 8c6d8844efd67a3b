// Package coupons validates storefront discount codes of the form DA<amount>.
package coupons

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

var codePattern = regexp.MustCompile(`^DA(\d+)$`)

const (
	MessageInvalidFormat = "Invalid coupon format. Coupon should start with DA followed by a number."
	MessageInvalidAmount = "Invalid discount amount."
)

// Policy bounds the amounts a coupon may carry.
type Policy struct {
	Step int
	Max  int
}

// DefaultPolicy accepts multiples of 50 up to 500.
func DefaultPolicy() Policy {
	return Policy{Step: 50, Max: 500}
}

// Result is the outcome of validating a code. Code holds the normalized input.
type Result struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code"`
	Amount  int    `json:"amount,omitempty"`
	Message string `json:"message,omitempty"`
}

// Discount is an applied coupon.
type Discount struct {
	Code   string `json:"couponCode"`
	Amount int    `json:"couponDiscount"`
}

// Normalize trims and uppercases raw coupon input.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Validate checks a code against the policy. Rules run in order: format, non-zero
// amount, step multiple, ceiling.
func (p Policy) Validate(raw string) Result {
	code := Normalize(raw)
	match := codePattern.FindStringSubmatch(code)
	if match == nil {
		return Result{Code: code, Message: MessageInvalidFormat}
	}

	amount, err := strconv.Atoi(match[1])
	if errors.Is(err, strconv.ErrRange) {
		return Result{Code: code, Message: p.maxMessage()}
	}
	if err != nil || amount == 0 {
		return Result{Code: code, Message: MessageInvalidAmount}
	}
	if p.Step > 0 && amount%p.Step != 0 {
		return Result{Code: code, Message: fmt.Sprintf("Discount amount must be a multiple of %d.", p.Step)}
	}
	if p.Max > 0 && amount > p.Max {
		return Result{Code: code, Message: p.maxMessage()}
	}
	return Result{Valid: true, Code: code, Amount: amount}
}

func (p Policy) maxMessage() string {
	return fmt.Sprintf("Maximum discount amount is %d.", p.Max)
}

// Validate checks a code against the default policy.
func Validate(raw string) Result {
	return DefaultPolicy().Validate(raw)
}

// Discount returns the applied coupon for a valid result.
func (r Result) Discount() (*Discount, error) {
	if r.Valid {
		return &Discount{Code: r.Code, Amount: r.Amount}, nil
	}
	code := pkgerrors.CodeRange
	if r.Message == MessageInvalidFormat {
		code = pkgerrors.CodeFormat
	}
	return nil, pkgerrors.New(code, r.Message).WithDetails(map[string]any{
		"field": "coupon",
		"code":  r.Code,
	})
}
