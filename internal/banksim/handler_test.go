package banksim

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func authorize(t *testing.T, srv *httptest.Server, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/payments", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func fullRequest(cardNumber string) map[string]any {
	return map[string]any{
		"card_number": cardNumber,
		"expiry_date": "12/2030",
		"currency":    "GBP",
		"amount":      1000,
		"cvv":         "123",
	}
}

func TestAuthorize_OddLastDigitAuthorized(t *testing.T) {
	srv := newTestServer(t)

	resp := authorize(t, srv, fullRequest("1234567890123457"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body authorizationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Authorized)
	_, err := uuid.Parse(body.AuthorizationCode)
	assert.NoError(t, err, "authorization code is a UUID")
}

func TestAuthorize_EvenLastDigitDeclined(t *testing.T) {
	srv := newTestServer(t)

	resp := authorize(t, srv, fullRequest("1234567890123456"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body authorizationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Authorized)
	assert.Empty(t, body.AuthorizationCode)
}

func TestAuthorize_CardEndingZeroUnavailable(t *testing.T) {
	srv := newTestServer(t)

	resp := authorize(t, srv, fullRequest("1234567890123450"))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAuthorize_MissingFieldsRejected(t *testing.T) {
	srv := newTestServer(t)

	req := fullRequest("1234567890123457")
	delete(req, "cvv")
	req["amount"] = 0

	resp := authorize(t, srv, req)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "missing required fields", body.Error)
}

func TestAuthorize_MalformedBodyRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/payments", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
