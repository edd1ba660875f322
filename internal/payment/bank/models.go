package bank

import (
	"paygate/internal/payment/card"
	"paygate/internal/payment/models"
)

// AuthorizationRequest is the wire-shaped projection of a payment request.
// Never mutated after construction.
type AuthorizationRequest struct {
	CardNumber string `json:"card_number"`
	// ExpiryDate is the combined "MM/YYYY" expiry with a zero-padded month.
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

// NewAuthorizationRequest builds the wire request from a validated payment
// request, copying card number, currency, amount, and CVV verbatim.
func NewAuthorizationRequest(req models.PaymentRequest) AuthorizationRequest {
	return AuthorizationRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: card.FormatExpiry(req.ExpiryMonth, req.ExpiryYear),
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	}
}

// AuthorizationResult is the terminal outcome of a successful bank exchange.
// AuthorizationCode is empty when the payment was not authorized.
type AuthorizationResult struct {
	Authorized        bool
	AuthorizationCode string
}

// authorizationResponse is the bank's 200 response body.
type authorizationResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}
