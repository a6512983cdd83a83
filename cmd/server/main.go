// Command server runs the unusualpills checkout API: it validates carts,
// computes the Buy 2 Get 2 shirt promotion, and creates Stripe Checkout
// sessions for the storefront.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/TheWizler/unusualpills-site/internal/checkout"
	"github.com/TheWizler/unusualpills-site/internal/circuitbreaker"
	"github.com/TheWizler/unusualpills-site/internal/config"
	"github.com/TheWizler/unusualpills-site/internal/httpserver"
	"github.com/TheWizler/unusualpills-site/internal/logger"
	"github.com/TheWizler/unusualpills-site/internal/metrics"
	stripesvc "github.com/TheWizler/unusualpills-site/internal/stripe"
)

func main() {
	configPath := flag.String("config", os.Getenv("UP_CONFIG"), "path to YAML config file (optional)")
	flag.Parse()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Format: "console", Service: "checkout-server"})
		bootLog.Fatal().Err(err).Msg("config.load_failed")
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Service:     "checkout-server",
		Environment: cfg.Logging.Environment,
	})

	breaker := circuitbreaker.New(cfg.CircuitBreaker, appLogger)

	provider, err := stripesvc.NewProvider(cfg.Stripe, cfg.Checkout.CouponTTL.Duration, breaker)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("stripe.provider_init_failed")
	}

	metricsCollector := metrics.New(prometheus.DefaultRegisterer)
	checkoutSvc := checkout.NewService(cfg.Checkout, provider, metricsCollector)

	server := httpserver.New(cfg, checkoutSvc, breaker, metricsCollector, appLogger)

	go func() {
		appLogger.Info().
			Str("address", cfg.Server.Address).
			Str("stripe_mode", cfg.Stripe.Mode).
			Msg("server.listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server.listen_failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	appLogger.Info().Msg("server.shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server.shutdown_failed")
	}
	appLogger.Info().Msg("server.stopped")
}
