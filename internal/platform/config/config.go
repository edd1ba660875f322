package config

import (
	"os"
	"time"
)

// DefaultBankURL is used when PAYGATE_BANK_URL is unset. It matches the
// default listen address of cmd/banksim so a local pair of processes works
// out of the box.
const DefaultBankURL = "http://localhost:8081"

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string

	// BankURL is the base URL of the downstream authorization service.
	BankURL string
	// BankTimeout is the per-call deadline for downstream requests.
	BankTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PAYGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("PAYGATE_ENV")
	if env == "" {
		env = "development"
	}

	bankURL := os.Getenv("PAYGATE_BANK_URL")
	if bankURL == "" {
		bankURL = DefaultBankURL
	}

	bankTimeout := 10 * time.Second
	if raw := os.Getenv("PAYGATE_BANK_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			bankTimeout = d
		}
	}

	return Server{
		Addr:        addr,
		Environment: env,
		BankURL:     bankURL,
		BankTimeout: bankTimeout,
	}
}
