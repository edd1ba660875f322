package handler

import "paygate/internal/payment/models"

// authorizeRequest is the wire shape of a payment authorization request.
type authorizeRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
}

func (r authorizeRequest) toModel() models.PaymentRequest {
	return models.PaymentRequest{
		CardNumber:  r.CardNumber,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		Currency:    r.Currency,
		Amount:      r.Amount,
		CVV:         r.CVV,
	}
}
