package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PAYGATE_ADDR", "")
	t.Setenv("PAYGATE_BANK_URL", "")
	t.Setenv("PAYGATE_BANK_TIMEOUT", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DefaultBankURL, cfg.BankURL)
	assert.Equal(t, 10*time.Second, cfg.BankTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PAYGATE_ADDR", ":9090")
	t.Setenv("PAYGATE_BANK_URL", "http://bank.internal:9000")
	t.Setenv("PAYGATE_BANK_TIMEOUT", "2s")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "http://bank.internal:9000", cfg.BankURL)
	assert.Equal(t, 2*time.Second, cfg.BankTimeout)
}

func TestFromEnv_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("PAYGATE_BANK_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 10*time.Second, cfg.BankTimeout)
}
