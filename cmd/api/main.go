package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-track/internal/carrier"
	"github.com/noah-isme/backend-track/internal/common"
	"github.com/noah-isme/backend-track/internal/config"
	"github.com/noah-isme/backend-track/internal/health"
	"github.com/noah-isme/backend-track/internal/obs"
	"github.com/noah-isme/backend-track/internal/ratelimit"
	"github.com/noah-isme/backend-track/internal/scrape"
	"github.com/noah-isme/backend-track/internal/security"
	"github.com/noah-isme/backend-track/internal/track"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "track")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName: "track-api",
			Endpoint:    envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:    envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			Environment: cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if tracingEnabled {
			if err := redisotel.InstrumentTracing(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis tracing")
			}
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	} else {
		logger.Warn().Msg("REDIS_URL not set; result cache and rate limiting disabled")
	}

	registry := carrier.NewRegistry()

	var fetcher track.PageFetcher
	if cfg.ScrapeEnabled {
		browser, closeBrowser, err := scrape.Connect(cfg.BrowserControlURL, cfg.BrowserNoSandbox)
		if err != nil {
			logger.Fatal().Err(err).Msg("start browser")
		}
		defer closeBrowser()
		fetcher = &scrape.Fetcher{
			Browser:       browser,
			NavTimeout:    cfg.ScrapeNavTimeout,
			SettleTimeout: cfg.ScrapeSettleTimeout,
			Log:           logger.With().Str("component", "scrape").Logger(),
		}
		logger.Info().Msg("scraping enabled")
	} else {
		logger.Info().Msg("scraping disabled; serving link-only results")
	}

	trackSvc := &track.Service{
		Registry:      registry,
		Cache:         track.NewCache(redisClient, cfg.TrackCacheTTL),
		Fetcher:       fetcher,
		ScrapeEnabled: cfg.ScrapeEnabled,
		Log:           logger.With().Str("component", "track").Logger(),
	}
	trackHandler := &track.Handler{Svc: trackSvc, Validate: validator.New(), Log: logger}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		RedisTimeout:  300 * time.Millisecond,
		ScrapeEnabled: cfg.ScrapeEnabled,
	}
	if redisClient != nil {
		healthHandler.Checker = readinessChecker{redis: redisClient}
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/carriers", trackHandler.Carriers)
		v.Group(func(g chi.Router) {
			if redisClient != nil {
				limit := ratelimit.Handler{
					Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "rl:track:"},
					Config: ratelimit.Config{
						Key:    func(req *http.Request) string { return common.ClientIP(req) },
						Window: cfg.RateLimitWindow,
						Max:    cfg.RateLimitMax,
					},
					OnError: func(err error) {
						logger.Warn().Err(err).Msg("rate limiter unavailable")
					},
				}
				g.Use(limit.Middleware)
			}
			g.Get("/track", trackHandler.Track)
		})
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := serve(ctx, srv, logger); err != nil {
		logger.Error().Err(err).Msg("server exited unexpectedly")
	}
}

// serve runs the HTTP server until it fails or ctx is cancelled. On
// cancellation the server drains in-flight requests before returning, so the
// deferred browser and Redis shutdowns in main still run.
func serve(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	redis *redis.Client
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}
