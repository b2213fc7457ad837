package main

import (
	"context"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/apptintake/internal/config"
	"github.com/md-rashed-zaman/apptintake/internal/db"
	"github.com/md-rashed-zaman/apptintake/internal/handlers"
	"github.com/md-rashed-zaman/apptintake/internal/httpx"
	"github.com/md-rashed-zaman/apptintake/internal/intake"
	"github.com/md-rashed-zaman/apptintake/internal/kafkax"
	"github.com/md-rashed-zaman/apptintake/internal/metrics"
	"github.com/md-rashed-zaman/apptintake/internal/otelx"
	"github.com/md-rashed-zaman/apptintake/internal/outbox"
	"github.com/md-rashed-zaman/apptintake/internal/runtime"
	"github.com/md-rashed-zaman/apptintake/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "intake-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service, config.String("LOG_LEVEL", "info"))

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	if config.Bool("AUTO_MIGRATE", true) {
		if err := storage.RunMigrations(dbURL); err != nil {
			logger.Error("migration failed", "err", err)
			panic(err)
		}
	}

	pool, err := db.Open(ctx, dbURL, db.PoolConfig{
		MaxConns: int32(config.Int("DB_MAX_CONNS", 10)),
		MinConns: int32(config.Int("DB_MIN_CONNS", 2)),
	})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	outboxRepo := outbox.NewRepository(pool)
	repo := storage.NewAppointmentRepository(pool, outboxRepo)

	brokers := config.String("KAFKA_BROKERS", "")
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	svc := intake.NewService(repo, intake.Config{
		SlotGridMinutes: config.Int("SLOT_GRID_MINUTES", 15),
		DurationMinutes: config.Int("SERVICE_DURATION_MINUTES", intake.DefaultDurationMinutes),
	})

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	intakeHandler := handlers.NewIntakeHandler(svc, logger, collector, handlers.IntakeHandlerConfig{
		ExposeTokens: config.Bool("DEBUG_EXPOSE_TOKENS", false),
		Production:   config.IsProduction(),
	})

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	mux.Handle("/metrics", metrics.Handler(registry))
	mux.HandleFunc("/api/v1/public/book", intakeHandler.Book)

	rateLimit := httpx.Middleware(nil)
	limit := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()
		rateLimit = httpx.NewRedisRateLimiter(rdb, limit, time.Minute, service).Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
	} else if limit > 0 {
		rateLimit = httpx.NewRateLimiter(limit, time.Minute).Middleware()
	}

	middlewares := []httpx.Middleware{
		httpx.WithRecovery(logger),
		httpx.WithSecurityHeaders,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 32*1024))),
		httpx.WithTimeout(time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second),
	}
	if origins := config.List("CORS_ALLOWED_ORIGINS", ""); len(origins) > 0 {
		middlewares = append(middlewares, httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   origins,
			AllowedMethods:   config.List("CORS_ALLOWED_METHODS", "POST,OPTIONS"),
			AllowedHeaders:   config.List("CORS_ALLOWED_HEADERS", "Content-Type"),
			AllowCredentials: config.Bool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           time.Duration(config.Int("CORS_MAX_AGE_SECONDS", 600)) * time.Second,
		}))
	}
	if rateLimit != nil {
		middlewares = append(middlewares, rateLimit)
	}

	httpHandler := httpx.Chain(mux, middlewares...)
	httpHandler = otelhttp.NewHandler(httpHandler, "intake")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "environment", config.Environment())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
