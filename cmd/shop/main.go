package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shoe_shop/internal/catalog"
	"github.com/Skotchmaster/shoe_shop/internal/config"
	"github.com/Skotchmaster/shoe_shop/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/internal/logging"
	loggingmw "github.com/Skotchmaster/shoe_shop/internal/middleware/logging"
	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/mykafka"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
	"github.com/Skotchmaster/shoe_shop/internal/storage"
	"github.com/Skotchmaster/shoe_shop/internal/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	st, closeStorage, err := storage.Open(openCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("storage open: %v", err)
	}

	client, err := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
	if err != nil {
		log.Fatalf("catalog client: %v", err)
	}

	deps := store.Deps{Storage: st, Catalog: client, Logger: logger}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		deps.Publisher = producer
	} else {
		logger.Info("events_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	s, err := store.New(ctx, deps)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	s.Subscribe(func(state models.AppState) {
		logger.Debug("state_changed",
			"products", len(state.Products),
			"cart_count", shop.CartCount(state.CartItems),
			"has_loaded", state.Loading.HasLoaded,
		)
	})

	storeErr := make(chan error, 1)
	go func() { storeErr <- s.Run(ctx) }()

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.RegisterShop(e, &httpserver.Deps{
		ShopHandler: &httpserver.ShopHTTP{Store: s},
		Ready:       func() bool { return s.Loading().HasLoaded },
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("shop_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutting_down")
	case err := <-storeErr:
		if err != nil {
			logger.Error("store_stopped_unexpectedly", "error", err)
			exitCode = 1
		}
	}
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	<-s.Done()

	if err := closeStorage(); err != nil {
		logger.Error("storage_close_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}

	logger.Info("shutdown_complete")
	if exitCode != 0 {
		shutdownCancel()
		os.Exit(exitCode)
	}
}
