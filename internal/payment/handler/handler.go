package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paygate/internal/payment/models"
	"paygate/internal/platform/middleware"
	"paygate/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for payment operations.
type Service interface {
	Authorize(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
}

// Handler handles payment endpoints.
type Handler struct {
	logger   *slog.Logger
	payments Service
}

// New creates a new payment Handler.
func New(payments Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		payments: payments,
	}
}

// Register registers the payment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments", h.handleAuthorizePayment)
	r.Get("/payments/{id}", h.handleGetPayment)
}

func (h *Handler) handleAuthorizePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[authorizeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	payment, err := h.payments.Authorize(ctx, req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "payment authorization failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, newPaymentResponse(payment))
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	payment, err := h.payments.GetPayment(ctx, id)
	if err != nil {
		h.logger.InfoContext(ctx, "payment lookup failed",
			"request_id", requestID,
			"payment_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newPaymentResponse(payment))
}
