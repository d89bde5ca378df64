package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"paystructure/internal/domain/audit"
	"paystructure/internal/domain/salary"
	"paystructure/internal/platform/config"
	"paystructure/internal/platform/logging"
	"paystructure/internal/platform/metrics"
	"paystructure/internal/platform/storage"
	"paystructure/internal/requestctx"
	"paystructure/internal/transport/http/api"
	salaryhandler "paystructure/internal/transport/http/handlers/salary"
	"paystructure/internal/transport/http/middleware"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config  config.Config
	Router  http.Handler
	Store   *salary.Store
	Metrics *metrics.Collector
	Audit   *audit.Service

	backend     storage.Backend
	logger      *slog.Logger
	unsubscribe func()
}

// New wires configuration, storage, the salary store and the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	collector := metrics.New()
	store, err := salary.NewStore(ctx, backend,
		salary.WithKey(cfg.StorageKey),
		salary.WithLogger(logger),
		salary.WithObserver(collector.ObserveMutation),
	)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("load salary state: %w", err)
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Metrics: collector,
		Audit:   audit.New(logger, 0),
		backend: backend,
		logger:  logger,
	}
	app.unsubscribe = store.Subscribe(func(state salary.State) {
		logger.Debug("salary state changed",
			"components", len(state.Components),
			"structures", len(state.Structures),
		)
	})
	app.Router = app.routes()

	logger.Info("salary service initialised",
		"driver", cfg.StorageDriver,
		"storageKey", cfg.StorageKey,
		"authRequired", cfg.AuthRequired,
	)
	return app, nil
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.logger, a.Metrics))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.backend.Ping(ctx); err != nil {
			requestctx.Logger(r.Context(), a.logger).Warn("storage not ready", "err", err)
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(a.Config.RateLimitPerMinute, time.Minute))
		salaryhandler.NewHandler(a.Store, a.Audit, a.Config.AuthRequired, a.logger).RegisterRoutes(r)
	})

	return router
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("salary service listening", "addr", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a.backend.Close()
}
