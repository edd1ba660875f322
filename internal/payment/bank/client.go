// Package bank implements the resilient HTTP client for the downstream
// authorization service: per-call timeout, retry with exponential backoff,
// circuit breaking, and a normalized error taxonomy.
package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"paygate/internal/payment/metrics"
	"paygate/pkg/platform/circuit"
)

// authorizePath is the fixed path appended to the configured base URL.
const authorizePath = "/payments"

const (
	defaultMaxRetries  = 3
	defaultBackoffBase = 2 * time.Second
	defaultCooldown    = 30 * time.Second
	breakerThreshold   = 5
)

// Client calls the downstream authorization service. The circuit breaker
// state is shared across all concurrent callers of one instance; the backoff
// delay suspends only the calling invocation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuit.Breaker
	maxRetries int
	backoff    time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBreaker injects a pre-configured circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithMaxRetries sets the retry budget for transient failures. Default is 3.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoffBase sets the first retry delay; subsequent delays double.
// Default is 2s, giving the 2s/4s/8s ladder.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// WithSleep injects the backoff sleep function so tests run without waiting.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithMetrics wires pipeline metrics into the client.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a bank client for the given base URL. The timeout is the
// per-call deadline; a request that receives no response within it fails as
// KindTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: circuit.New("bank",
			circuit.WithFailureThreshold(breakerThreshold),
			circuit.WithCooldown(defaultCooldown),
		),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoffBase,
		sleep:      sleepCtx,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authorize issues a single logical authorization call, retrying transient
// failures up to the retry budget with exponential backoff. On failure the
// returned error is always a *Error carrying a normalized Kind.
func (c *Client) Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error) {
	delay := c.backoff
	for attempt := 0; ; attempt++ {
		result, err := c.attempt(ctx, req)
		if err == nil {
			return result, nil
		}

		if !IsTransient(err) || attempt >= c.maxRetries {
			return nil, err
		}

		c.metrics.RecordRetry()
		c.logger.WarnContext(ctx, "retrying bank authorization",
			"attempt", attempt+1,
			"delay", delay.String(),
			"kind", string(KindOf(err)),
		)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, err
		}
		delay *= 2
	}
}

// attempt performs one gate-call-record cycle against the circuit breaker.
func (c *Client) attempt(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error) {
	if !c.breaker.Allow() {
		// Rejected without a call; not recorded as a breaker failure.
		return nil, NewError(KindUnavailable, "circuit breaker open", nil)
	}

	start := time.Now()
	result, err := c.do(ctx, req)
	if err != nil {
		c.metrics.ObserveBankRequest(string(KindOf(err)), time.Since(start).Seconds())
		if IsTransient(err) {
			if change := c.breaker.RecordFailure(); change.Opened {
				c.metrics.RecordCircuitOpen()
				c.logger.ErrorContext(ctx, "bank circuit breaker opened",
					"circuit", c.breaker.Name(),
					"error", err,
				)
			}
		}
		return nil, err
	}

	c.metrics.ObserveBankRequest("success", time.Since(start).Seconds())
	if change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "bank circuit breaker closed",
			"circuit", c.breaker.Name(),
		)
	}
	return result, nil
}

// do executes one HTTP exchange and classifies every failure mode.
func (c *Client) do(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewError(KindBadRequest, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authorizePath, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(KindConnection, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	// Read fully before parsing so a truncated body is classified, not leaked
	// as a raw decode error.
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindConnection, "failed to read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var parsed authorizationResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, NewError(KindMalformedResponse, "failed to parse response body", err)
		}
		return &AuthorizationResult{
			Authorized:        parsed.Authorized,
			AuthorizationCode: parsed.AuthorizationCode,
		}, nil

	case resp.StatusCode == http.StatusBadRequest:
		// Never retried: the bank says the payload is wrong, and resending
		// the same payload cannot succeed.
		return nil, NewError(KindBadRequest, fmt.Sprintf("bank rejected request: %s", string(respBody)), nil)

	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, NewError(KindUnavailable, "bank unavailable", nil)

	case resp.StatusCode >= 500:
		return nil, NewError(KindUnavailable, fmt.Sprintf("bank returned status %d", resp.StatusCode), nil)

	default:
		return nil, NewError(KindMalformedResponse, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
}

// classifyTransportError maps low-level call failures onto the taxonomy:
// deadline expiry is a timeout, everything else is a connection failure.
func classifyTransportError(ctx context.Context, err error) *Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewError(KindTimeout, "request deadline exceeded", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(KindTimeout, "request timed out", err)
	}
	return NewError(KindConnection, "failed to reach bank", err)
}

// BreakerState exposes the circuit state for health checks.
func (c *Client) BreakerState() circuit.State {
	return c.breaker.State()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
