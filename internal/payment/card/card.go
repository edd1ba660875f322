// Package card holds pure helpers for card data masking and formatting.
package card

import "fmt"

// MaskSuffix returns the last 4 characters of cardNumber, byte for byte, so
// leading zeros are preserved. It returns "" when the input is shorter than
// 4 characters or contains a non-digit; validated requests never hit that
// branch.
func MaskSuffix(cardNumber string) string {
	if len(cardNumber) < 4 || !isDigits(cardNumber) {
		return ""
	}
	return cardNumber[len(cardNumber)-4:]
}

// FormatExpiry renders an expiry as "MM/YYYY" with a zero-padded month.
func FormatExpiry(month, year int) string {
	return fmt.Sprintf("%02d/%04d", month, year)
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
