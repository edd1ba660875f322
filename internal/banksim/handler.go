// Package banksim implements a simulated acquiring bank used for local
// development and end to end tests. Behaviour is keyed off the card number so
// callers can provoke every downstream outcome deterministically:
//
//	card ends in "0"          -> 503 service unavailable
//	last digit odd            -> authorized
//	last digit even (not 0)   -> declined
//	missing request fields    -> 400 bad request
package banksim

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type authorizationRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

type authorizationResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the simulated bank API.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Register mounts the simulator routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments", h.Authorize)
}

func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req authorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if missing := missingFields(req); len(missing) > 0 {
		h.logger.Info("rejecting request with missing fields", "fields", missing)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}

	last := req.CardNumber[len(req.CardNumber)-1]
	switch {
	case last == '0':
		h.logger.Info("simulating acquirer outage", "card_suffix", suffix(req.CardNumber))
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service unavailable"})
	case (last-'0')%2 == 1:
		h.writeJSON(w, http.StatusOK, authorizationResponse{
			Authorized:        true,
			AuthorizationCode: uuid.New().String(),
		})
	default:
		h.writeJSON(w, http.StatusOK, authorizationResponse{Authorized: false})
	}
}

func missingFields(req authorizationRequest) []string {
	var missing []string
	if req.CardNumber == "" {
		missing = append(missing, "card_number")
	}
	if req.ExpiryDate == "" {
		missing = append(missing, "expiry_date")
	}
	if req.Currency == "" {
		missing = append(missing, "currency")
	}
	if req.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if req.CVV == "" {
		missing = append(missing, "cvv")
	}
	return missing
}

func suffix(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
