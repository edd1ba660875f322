// Package validation implements the payment request rule set.
//
// Every rule is evaluated independently and appends its violation to a single
// ordered list; a failing rule never suppresses the ones after it, so callers
// always receive the complete picture in one pass.
package validation

import (
	"fmt"
	"strings"
	"time"

	"paygate/internal/payment/models"
)

const (
	cardNumberMinLen = 14
	cardNumberMaxLen = 19
	cvvMinLen        = 3
	cvvMaxLen        = 4
)

// supportedCurrencies is the fixed set of accepted ISO currency codes.
// Membership is checked case-insensitively, and only once the length is correct.
var supportedCurrencies = map[string]struct{}{
	"GBP": {},
	"USD": {},
	"EUR": {},
}

// Outcome is the result of validating a payment request. Valid is true
// exactly when Violations is empty. Violations preserve rule evaluation order.
type Outcome struct {
	Valid      bool
	Violations []string
}

// Validate checks req against the full rule set using the current UTC date
// for expiry rules. It is pure apart from reading the clock: validating the
// same request twice in the same month yields identical outcomes.
func Validate(req models.PaymentRequest) Outcome {
	return validateAt(req, time.Now().UTC())
}

func validateAt(req models.PaymentRequest, now time.Time) Outcome {
	var violations []string

	violations = appendCardNumberViolations(violations, req.CardNumber)
	violations = appendExpiryViolations(violations, req.ExpiryMonth, req.ExpiryYear, now)
	violations = appendCurrencyViolations(violations, req.Currency)

	if req.Amount < 1 {
		violations = append(violations, "amount must be at least 1")
	}

	violations = appendCVVViolations(violations, req.CVV)

	return Outcome{Valid: len(violations) == 0, Violations: violations}
}

func appendCardNumberViolations(violations []string, cardNumber string) []string {
	if strings.TrimSpace(cardNumber) == "" {
		violations = append(violations, "card number is required")
	}
	if n := len(cardNumber); n < cardNumberMinLen || n > cardNumberMaxLen {
		violations = append(violations,
			fmt.Sprintf("card number must be between %d and %d digits", cardNumberMinLen, cardNumberMaxLen))
	}
	if !isDigits(cardNumber) {
		violations = append(violations, "card number must contain only digits")
	}
	return violations
}

func appendExpiryViolations(violations []string, month, year int, now time.Time) []string {
	if month < 1 || month > 12 {
		violations = append(violations, "expiry month must be between 1 and 12")
	}

	// A card expiring in the current month is still valid: it expires at
	// month-end, not on a specific day.
	switch {
	case year < now.Year():
		violations = append(violations, "expiry year must be in the future")
	case year == now.Year() && month < int(now.Month()):
		violations = append(violations, "card expiry must not be in the past")
	}
	return violations
}

func appendCurrencyViolations(violations []string, currency string) []string {
	if strings.TrimSpace(currency) == "" {
		violations = append(violations, "currency is required")
		return violations
	}
	if len(currency) != 3 {
		violations = append(violations, "currency must be a 3-letter code")
		return violations
	}
	if _, ok := supportedCurrencies[strings.ToUpper(currency)]; !ok {
		violations = append(violations, "currency must be one of GBP, USD, EUR")
	}
	return violations
}

func appendCVVViolations(violations []string, cvv string) []string {
	if strings.TrimSpace(cvv) == "" {
		violations = append(violations, "cvv is required")
	}
	if n := len(cvv); n < cvvMinLen || n > cvvMaxLen {
		violations = append(violations,
			fmt.Sprintf("cvv must be between %d and %d digits", cvvMinLen, cvvMaxLen))
	}
	if !isDigits(cvv) {
		violations = append(violations, "cvv must contain only digits")
	}
	return violations
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
