// tempyd is the forwarding proxy behind tempy's keyless mode. It holds the
// weatherapi.com key, caches recent forecasts, rate limits anonymous clients,
// and records usage so operators can see what the shared key is spent on.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/noprobelm/tempy/internal/cache"
	"github.com/noprobelm/tempy/internal/config"
	"github.com/noprobelm/tempy/internal/httpapi"
	"github.com/noprobelm/tempy/internal/observability"
	"github.com/noprobelm/tempy/internal/ratelimit"
	"github.com/noprobelm/tempy/internal/store"
	"github.com/noprobelm/tempy/internal/weatherapi"
)

const serviceName = "tempyd"

func main() {
	// Initialize structured logger (JSON if LOG_FORMAT=json)
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.WeatherAPIKey == "" {
		slog.Error("missing required env", "key", "WEATHERAPI_KEY")
		os.Exit(1)
	}

	shutdownObs, promHandler, tracer := observability.SetupObservability(serviceName, cfg.ZipkinEndpoint)
	defer shutdownObs()

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Postgres.Enabled() {
		db, err = store.OpenPostgres(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.SSLMode)
	} else {
		db, err = store.OpenSQLite(cfg.DBPath)
	}
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	repo, err := store.New(db)
	if err != nil {
		slog.Error("db migrate failed", "error", err)
		os.Exit(1)
	}

	client := weatherapi.New(weatherapi.Options{APIKey: cfg.WeatherAPIKey})
	forecastCache := cache.New(cfg.CacheTTL)
	srv := httpapi.NewServer(client, forecastCache, repo)

	var limited func(http.Handler) http.Handler
	if cfg.RateLimitEnabled && cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		limiter := ratelimit.New(rdb, ratelimit.LimiterConfig{RPS: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst})
		limited = ratelimit.Middleware(limiter, serviceName, ratelimit.KeyByIP)
		slog.Info("rate limiter enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Location"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(observability.MetricsAndTracingMiddleware(tracer, serviceName))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promHandler)

	r.Group(func(r chi.Router) {
		if limited != nil {
			r.Use(limited)
		}
		srv.RegisterRoutes(r)
	})

	c := cron.New()
	if _, err := c.AddFunc("@every "+cfg.CacheTTL.String(), func() {
		if removed := forecastCache.Sweep(); removed > 0 {
			slog.Debug("cache swept", "removed", removed, "remaining", forecastCache.Len())
		}
	}); err != nil {
		slog.Warn("cache sweep schedule rejected", "error", err)
	}
	if _, err := c.AddFunc("@daily", func() {
		cutoff := time.Now().UTC().AddDate(0, 0, -cfg.RetentionDays)
		removed, err := repo.PurgeOlderThan(context.Background(), cutoff)
		if err != nil {
			slog.Warn("retention purge failed", "error", err)
			return
		}
		slog.Info("retention purge", "removed", removed, "cutoff", cutoff)
	}); err != nil {
		slog.Warn("retention schedule rejected", "error", err)
	}
	c.Start()
	defer c.Stop()

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("tempyd started", "addr", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
