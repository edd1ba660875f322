package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/payment/models"
)

// fixedNow pins the clock so expiry rules are deterministic.
var fixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func validRequest() models.PaymentRequest {
	return models.PaymentRequest{
		CardNumber:  "1234567890123457",
		ExpiryMonth: 12,
		ExpiryYear:  2027,
		Currency:    "GBP",
		Amount:      1000,
		CVV:         "123",
	}
}

func TestValidate_ValidRequestHasNoViolations(t *testing.T) {
	outcome := validateAt(validRequest(), fixedNow)

	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Violations)
}

func TestValidate_CardNumberLength(t *testing.T) {
	for _, tc := range []struct {
		name string
		pan  string
		ok   bool
	}{
		{"too short", "123", false},
		{"13 digits", "1234567890123", false},
		{"14 digits", "12345678901234", true},
		{"19 digits", "1234567890123456789", true},
		{"20 digits", "12345678901234567890", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.CardNumber = tc.pan
			outcome := validateAt(req, fixedNow)
			if tc.ok {
				assert.True(t, outcome.Valid)
			} else {
				assert.False(t, outcome.Valid)
				assert.Contains(t, outcome.Violations, "card number must be between 14 and 19 digits")
			}
		})
	}
}

func TestValidate_CardNumberNonDigit(t *testing.T) {
	req := validRequest()
	req.CardNumber = "123456789012345a"

	outcome := validateAt(req, fixedNow)

	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Violations, "card number must contain only digits")
}

func TestValidate_EmptyCardNumberReportsEachViolation(t *testing.T) {
	req := validRequest()
	req.CardNumber = ""

	outcome := validateAt(req, fixedNow)

	require.False(t, outcome.Valid)
	assert.Contains(t, outcome.Violations, "card number is required")
	assert.Contains(t, outcome.Violations, "card number must be between 14 and 19 digits")
	assert.Contains(t, outcome.Violations, "card number must contain only digits")
}

func TestValidate_ExpiryMonthRange(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		req := validRequest()
		req.ExpiryMonth = month
		outcome := validateAt(req, fixedNow)
		assert.False(t, outcome.Valid, "month %d", month)
		assert.Contains(t, outcome.Violations, "expiry month must be between 1 and 12")
	}
}

func TestValidate_MonthOutOfRangeWithFutureYearYieldsOnlyRangeError(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = 13
	req.ExpiryYear = fixedNow.Year() + 1

	outcome := validateAt(req, fixedNow)

	assert.Equal(t, []string{"expiry month must be between 1 and 12"}, outcome.Violations)
}

func TestValidate_CurrentMonthIsNotExpired(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = int(fixedNow.Month())
	req.ExpiryYear = fixedNow.Year()

	outcome := validateAt(req, fixedNow)

	assert.True(t, outcome.Valid)
}

func TestValidate_PastYearFailsRegardlessOfMonth(t *testing.T) {
	for month := 1; month <= 12; month++ {
		req := validRequest()
		req.ExpiryMonth = month
		req.ExpiryYear = fixedNow.Year() - 1

		outcome := validateAt(req, fixedNow)

		assert.False(t, outcome.Valid, "month %d", month)
		assert.Contains(t, outcome.Violations, "expiry year must be in the future")
	}
}

func TestValidate_PastMonthInCurrentYearFails(t *testing.T) {
	req := validRequest()
	req.ExpiryMonth = int(fixedNow.Month()) - 1
	req.ExpiryYear = fixedNow.Year()

	outcome := validateAt(req, fixedNow)

	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Violations, "card expiry must not be in the past")
}

func TestValidate_Currency(t *testing.T) {
	for _, tc := range []struct {
		currency  string
		violation string
	}{
		{"", "currency is required"},
		{"GB", "currency must be a 3-letter code"},
		{"POUNDS", "currency must be a 3-letter code"},
		{"JPY", "currency must be one of GBP, USD, EUR"},
	} {
		req := validRequest()
		req.Currency = tc.currency

		outcome := validateAt(req, fixedNow)

		assert.False(t, outcome.Valid, "currency %q", tc.currency)
		assert.Contains(t, outcome.Violations, tc.violation)
	}
}

func TestValidate_CurrencyIsCaseInsensitive(t *testing.T) {
	for _, currency := range []string{"gbp", "Usd", "eUR"} {
		req := validRequest()
		req.Currency = currency
		outcome := validateAt(req, fixedNow)
		assert.True(t, outcome.Valid, "currency %q", currency)
	}
}

func TestValidate_MembershipNotCheckedWhenLengthWrong(t *testing.T) {
	req := validRequest()
	req.Currency = "ZZZZ"

	outcome := validateAt(req, fixedNow)

	assert.Contains(t, outcome.Violations, "currency must be a 3-letter code")
	assert.NotContains(t, outcome.Violations, "currency must be one of GBP, USD, EUR")
}

func TestValidate_Amount(t *testing.T) {
	for _, amount := range []int64{0, -1, -1000} {
		req := validRequest()
		req.Amount = amount
		outcome := validateAt(req, fixedNow)
		assert.False(t, outcome.Valid, "amount %d", amount)
		assert.Contains(t, outcome.Violations, "amount must be at least 1")
	}

	req := validRequest()
	req.Amount = 1
	assert.True(t, validateAt(req, fixedNow).Valid)
}

func TestValidate_CVV(t *testing.T) {
	for _, tc := range []struct {
		cvv       string
		violation string
	}{
		{"", "cvv is required"},
		{"12", "cvv must be between 3 and 4 digits"},
		{"12345", "cvv must be between 3 and 4 digits"},
		{"12a", "cvv must contain only digits"},
	} {
		req := validRequest()
		req.CVV = tc.cvv

		outcome := validateAt(req, fixedNow)

		assert.False(t, outcome.Valid, "cvv %q", tc.cvv)
		assert.Contains(t, outcome.Violations, tc.violation)
	}

	req := validRequest()
	req.CVV = "1234"
	assert.True(t, validateAt(req, fixedNow).Valid)
}

func TestValidate_CollectsAllViolationsInRuleOrder(t *testing.T) {
	req := models.PaymentRequest{
		CardNumber:  "12ab",
		ExpiryMonth: 0,
		ExpiryYear:  fixedNow.Year() - 2,
		Currency:    "XYZ",
		Amount:      0,
		CVV:         "1",
	}

	outcome := validateAt(req, fixedNow)

	require.False(t, outcome.Valid)
	assert.Equal(t, []string{
		"card number must be between 14 and 19 digits",
		"card number must contain only digits",
		"expiry month must be between 1 and 12",
		"expiry year must be in the future",
		"currency must be one of GBP, USD, EUR",
		"amount must be at least 1",
		"cvv must be between 3 and 4 digits",
	}, outcome.Violations)
}

func TestValidate_Idempotent(t *testing.T) {
	req := validRequest()
	req.CardNumber = "bad"

	first := validateAt(req, fixedNow)
	second := validateAt(req, fixedNow)

	assert.Equal(t, first, second)
}

func TestValidate_UsesCurrentClock(t *testing.T) {
	req := validRequest()
	req.ExpiryYear = time.Now().UTC().Year() + 1

	outcome := Validate(req)

	assert.True(t, outcome.Valid, fmt.Sprintf("violations: %v", outcome.Violations))
}
