package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"paygate/internal/payment/bank"
	"paygate/internal/payment/handler"
	"paygate/internal/payment/metrics"
	"paygate/internal/payment/service"
	"paygate/internal/payment/store"
	"paygate/internal/payment/tracer"
	"paygate/internal/platform/config"
	"paygate/internal/platform/health"
	"paygate/internal/platform/logger"
	"paygate/internal/platform/middleware"
	"paygate/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing paygate",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"bank_url", cfg.BankURL,
		"bank_timeout", cfg.BankTimeout,
	)

	m := metrics.New()

	bankClient := bank.NewClient(cfg.BankURL, cfg.BankTimeout, log,
		bank.WithBreaker(circuit.New("bank")),
		bank.WithMetrics(m),
	)

	paymentStore := store.NewInMemory()
	svc := service.NewService(paymentStore, bankClient, log,
		service.WithMetrics(m),
		service.WithTracer(tracer.NewOTel()),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("bank_circuit", func() error {
		if bankClient.BreakerState() == circuit.StateOpen {
			return errors.New("bank circuit breaker is open")
		}
		return nil
	})

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))

	healthHandler.Register(router)
	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
