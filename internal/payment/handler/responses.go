package handler

import "paygate/internal/payment/models"

// paymentResponse is the wire shape of a stored payment. The card number is
// never echoed back, only its masked suffix.
type paymentResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CardSuffix  string `json:"card_number_last_four"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
}

func newPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		Status:      string(p.Status),
		CardSuffix:  p.CardSuffix,
		ExpiryMonth: p.ExpiryMonth,
		ExpiryYear:  p.ExpiryYear,
		Currency:    p.Currency,
		Amount:      p.Amount,
	}
}
