package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shoe_shop/internal/catalog"
	"github.com/Skotchmaster/shoe_shop/internal/config"
	"github.com/Skotchmaster/shoe_shop/internal/db"
	"github.com/Skotchmaster/shoe_shop/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/internal/logging"
	loggingmw "github.com/Skotchmaster/shoe_shop/internal/middleware/logging"
)

const defaultPort = 8081

// databaseTarget picks the gorm driver for CATALOG_DATABASE_URL. Postgres
// URLs go to postgres, anything else is a sqlite path and an empty value
// keeps the catalog in memory.
func databaseTarget(url string) (driver, dsn string) {
	switch {
	case url == "":
		return db.DriverSQLite, ":memory:"
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return db.DriverPostgres, url
	default:
		return db.DriverSQLite, url
	}
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if os.Getenv("SERVICE_NAME") == "" {
		cfg.ServiceName = "catalog"
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.ServerPort = defaultPort
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	driver, dsn := databaseTarget(cfg.CatalogDatabaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, driver, dsn)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	repo := &catalog.GormRepo{DB: gdb}
	if err := repo.Migrate(); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	seed, err := catalog.LoadSeed(cfg.CatalogSeed)
	if err != nil {
		log.Fatalf("catalog seed: %v", err)
	}
	n, err := repo.Seed(context.Background(), seed)
	if err != nil {
		log.Fatalf("catalog seed: %v", err)
	}
	logger.Info("catalog_seeded", "inserted", n, "driver", driver)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.RegisterCatalog(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &catalog.Service{Repo: repo}},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("catalog_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("catalog_stopped")
}
