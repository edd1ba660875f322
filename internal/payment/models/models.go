// Package models defines the payment domain types.
package models

// PaymentRequest is a request to authorize a card payment. It is transient:
// it exists for one pipeline invocation and is never persisted or logged in
// raw form.
type PaymentRequest struct {
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	Currency    string
	// Amount is in minor currency units (pence, cents).
	Amount int64
	CVV    string
}

// Status is the terminal outcome of a payment.
type Status string

const (
	StatusAuthorized Status = "Authorized"
	StatusDeclined   Status = "Declined"
)

// Payment is the persisted record of a completed payment. It is created only
// after the downstream bank returned a terminal outcome, and is immutable
// once created. CardSuffix is exactly the last 4 characters of the original
// card number, stored as a string so leading zeros survive; the full card
// number and CVV are never retained.
type Payment struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	CardSuffix  string `json:"card_suffix"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
}
