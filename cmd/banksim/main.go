// Command banksim runs the simulated acquiring bank as a standalone process
// for local development against cmd/server.
package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"paygate/internal/banksim"
	"paygate/internal/platform/logger"
)

const defaultAddr = ":8081"

func main() {
	addr := os.Getenv("BANKSIM_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	log := logger.New()

	router := chi.NewRouter()
	banksim.NewHandler(log).Register(router)

	log.Info("starting simulated bank", "addr", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
