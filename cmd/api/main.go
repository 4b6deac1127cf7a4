package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/app"
	"github.com/georgemunganga/retail-ordering/internal/config"
	"github.com/georgemunganga/retail-ordering/internal/modules/admin"
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/platform/httpx"
	"github.com/georgemunganga/retail-ordering/internal/platform/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	seed := flag.Bool("seed", false, "load demo data when running on memory storage")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("start application", zap.Error(err))
	}
	defer a.Close(context.Background())

	if *seed && a.Memory != nil {
		if err := a.Memory.SeedDemo(ctx); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(httpx.RequestLogger(logger))
	router.Use(middleware.Recoverer)

	// ── Identity ────────────────────────────────────────────
	user.NewHandler(a.Services.Users).RegisterRoutes(router)
	auth.NewHandler(a.Services.Auth).RegisterRoutes(router)

	// ── Authenticated ───────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(a.Services.Auth))

		catalog.NewHandler(a.Services.Catalog).RegisterRoutes(r)
		order.NewHandler(a.Services.Orders, a.Guard, logger).RegisterRoutes(r)
		inventory.NewHandler(a.Services.Inventory).RegisterRoutes(r)
		supply.NewHandler(a.Services.Supply).RegisterRoutes(r)
		analytics.NewHandler(a.Services.Analytics).RegisterRoutes(r)
		admin.NewHandler(a.Services.Admin).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("retail API server starting", zap.String("addr", server.Addr), zap.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
}
