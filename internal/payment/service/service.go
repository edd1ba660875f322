// Package service orchestrates the payment pipeline: validation, masking,
// the downstream bank call, and record persistence, with exact failure
// semantics at every step.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"paygate/internal/payment/bank"
	"paygate/internal/payment/card"
	"paygate/internal/payment/metrics"
	"paygate/internal/payment/models"
	"paygate/internal/payment/tracer"
	"paygate/internal/payment/validation"
	"paygate/internal/sentinel"
	dErrors "paygate/pkg/domain-errors"
)

// Store defines the persistence interface for payment records.
// Error Contract:
// - Get returns sentinel.ErrNotFound (optionally wrapped) when no record exists
// - Add returns sentinel.ErrInvalidInput for nil/incomplete records
type Store interface {
	Add(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id string) (*models.Payment, error)
}

// BankClient defines the downstream authorization interface. On failure the
// error chain carries a *bank.Error with a normalized Kind.
type BankClient interface {
	Authorize(ctx context.Context, req bank.AuthorizationRequest) (*bank.AuthorizationResult, error)
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer for pipeline spans. Default is a no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Service sequences the payment pipeline. Each invocation runs independently;
// only the store and the bank client's resilience state are shared.
type Service struct {
	store   Store
	bank    BankClient
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// NewService creates a payment service.
func NewService(store Store, bankClient BankClient, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		bank:   bankClient,
		logger: logger,
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Authorize runs the pipeline for one payment request.
//
// An invalid request fails with CodeValidation carrying every violation; the
// bank is never called and nothing is stored. A bank-side failure propagates
// with a generic, non-sensitive message and nothing is stored. Only a
// terminal bank outcome (authorized or declined) produces a record, which is
// persisted exactly once under a freshly generated identifier.
func (s *Service) Authorize(ctx context.Context, req models.PaymentRequest) (result *models.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAuthorize,
		tracer.String(tracer.AttrCurrency, req.Currency),
		tracer.Int64(tracer.AttrAmount, req.Amount),
	)
	defer func() { span.End(err) }()

	outcome := validation.Validate(req)
	if !outcome.Valid {
		s.metrics.RecordFailure("validation")
		s.logger.WarnContext(ctx, "payment request rejected",
			"violation_count", len(outcome.Violations),
		)
		err = dErrors.NewWithDetails(dErrors.CodeValidation, "invalid payment request", outcome.Violations)
		return nil, err
	}

	paymentID := uuid.New().String()
	suffix := card.MaskSuffix(req.CardNumber)
	span.SetAttributes(
		tracer.String(tracer.AttrPaymentID, paymentID),
		tracer.String(tracer.AttrCardSuffix, suffix),
	)

	bankCtx, bankSpan := s.tracer.Start(ctx, tracer.SpanBankCall)
	authResult, bankErr := s.bank.Authorize(bankCtx, bank.NewAuthorizationRequest(req))
	bankSpan.End(bankErr)
	if bankErr != nil {
		kind := bank.KindOf(bankErr)
		s.metrics.RecordFailure(string(kind))
		span.SetAttributes(tracer.String(tracer.AttrErrorKind, string(kind)))
		s.logger.ErrorContext(ctx, "bank authorization failed",
			"payment_id", paymentID,
			"kind", string(kind),
			"error", bankErr,
		)
		err = mapBankError(bankErr, kind)
		return nil, err
	}

	status := models.StatusDeclined
	if authResult.Authorized {
		status = models.StatusAuthorized
	}

	payment := &models.Payment{
		ID:          paymentID,
		Status:      status,
		CardSuffix:  suffix,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Currency:    req.Currency,
		Amount:      req.Amount,
	}

	if addErr := s.store.Add(ctx, payment); addErr != nil {
		s.metrics.RecordFailure("store")
		s.logger.ErrorContext(ctx, "failed to persist payment record",
			"payment_id", paymentID,
			"error", addErr,
		)
		err = dErrors.Wrap(addErr, dErrors.CodeInvariantViolation, "failed to persist payment record")
		return nil, err
	}

	s.metrics.RecordPayment(strings.ToLower(string(status)))
	span.SetAttributes(tracer.String(tracer.AttrStatus, string(status)))
	s.logger.InfoContext(ctx, "payment completed",
		"payment_id", paymentID,
		"status", string(status),
		"card_suffix", suffix,
	)
	return payment, nil
}

// GetPayment retrieves a completed payment record by identifier. The empty
// identifier short-circuits to not-found without touching the store.
func (s *Service) GetPayment(ctx context.Context, id string) (result *models.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLookup,
		tracer.String(tracer.AttrPaymentID, id),
	)
	defer func() { span.End(err) }()

	if id == "" {
		err = dErrors.New(dErrors.CodeNotFound, "payment not found")
		return nil, err
	}

	payment, getErr := s.store.Get(ctx, id)
	if getErr != nil {
		if errors.Is(getErr, sentinel.ErrNotFound) {
			err = dErrors.New(dErrors.CodeNotFound, "payment not found")
			return nil, err
		}
		err = dErrors.Wrap(getErr, dErrors.CodeInternal, "failed to load payment record")
		return nil, err
	}
	return payment, nil
}

// mapBankError translates the bank error taxonomy into caller-visible domain
// errors. Messages stay generic: the raw downstream body is never surfaced,
// and callers only distinguish "service unavailable" from "an error occurred".
func mapBankError(err error, kind bank.Kind) error {
	switch kind {
	case bank.KindUnavailable, bank.KindConnection:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "payment service unavailable")
	case bank.KindTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "an error occurred while processing the payment")
	default:
		// BadRequest and MalformedResponse: the request already validated,
		// so this is an integration fault, not a caller error.
		return dErrors.Wrap(err, dErrors.CodeInternal, "an error occurred while processing the payment")
	}
}
