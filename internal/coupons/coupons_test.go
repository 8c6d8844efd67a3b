package coupons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

func TestValidateAcceptsSteppedAmounts(t *testing.T) {
	for code, amount := range map[string]int{"DA50": 50, "DA100": 100, "da200": 200, " DA500 ": 500} {
		result := Validate(code)
		require.True(t, result.Valid, code)
		assert.Equal(t, amount, result.Amount, code)
		assert.Equal(t, Normalize(code), result.Code)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		code    string
		message string
	}{
		{"ABC123", MessageInvalidFormat},
		{"ABC100", MessageInvalidFormat},
		{"123456", MessageInvalidFormat},
		{"DA", MessageInvalidFormat},
		{"DAabc", MessageInvalidFormat},
		{"DA-100", MessageInvalidFormat},
		{"DA0", MessageInvalidAmount},
		{"DA000", MessageInvalidAmount},
		{"DA44", "Discount amount must be a multiple of 50."},
		{"DA75", "Discount amount must be a multiple of 50."},
		{"DA125", "Discount amount must be a multiple of 50."},
		{"DA1001", "Discount amount must be a multiple of 50."},
		{"DA600", "Maximum discount amount is 500."},
	}
	for _, tc := range cases {
		result := Validate(tc.code)
		assert.False(t, result.Valid, tc.code)
		assert.Equal(t, tc.message, result.Message, tc.code)
		assert.Zero(t, result.Amount, tc.code)
	}
}

func TestValidateHugeDigitsIsOverMaximum(t *testing.T) {
	result := Validate("DA99999999999999999999999")
	assert.False(t, result.Valid)
	assert.Equal(t, "Maximum discount amount is 500.", result.Message)

	_, err := result.Discount()
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRange, pkgerrors.As(err).Code())
}

func TestCustomPolicy(t *testing.T) {
	policy := Policy{Step: 100, Max: 1000}
	assert.True(t, policy.Validate("DA900").Valid)
	assert.Equal(t, "Discount amount must be a multiple of 100.", policy.Validate("DA150").Message)
	assert.Equal(t, "Maximum discount amount is 1000.", policy.Validate("DA1100").Message)
}

func TestResultDiscount(t *testing.T) {
	discount, err := Validate("DA100").Discount()
	require.NoError(t, err)
	assert.Equal(t, &Discount{Code: "DA100", Amount: 100}, discount)

	_, err = Validate("ABC100").Discount()
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeFormat, pkgerrors.As(err).Code())

	_, err = Validate("DA600").Discount()
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRange, pkgerrors.As(err).Code())
}
