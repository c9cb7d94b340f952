package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nmm-portal/nmm-api/config"
	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/database/memory"
	"github.com/nmm-portal/nmm-api/internal/database/postgres"
	"github.com/nmm-portal/nmm-api/internal/handlers"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/middleware"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/db"
	"github.com/nmm-portal/nmm-api/pkg/httpclient"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/profiling"
	"github.com/nmm-portal/nmm-api/pkg/storage"
	"github.com/nmm-portal/nmm-api/pkg/tracing"
	"github.com/nmm-portal/nmm-api/pkg/trigger"
)

const filesRoute = "/api/v1/files"

// redisPinger lets the healthcheck probe redis
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Name() string { return "redis" }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// openStore selects the record store backend
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.Database.Backend != config.BackendPostgres {
		logger.Info("Using in-memory store with seed data",
			zap.Duration("mock_latency", cfg.Mock.Latency()))
		return memory.NewStore(memory.WithLatency(cfg.Mock.Latency())), nil
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, err
	}
	// Migrations run separately: ./migrate -direction up
	return postgres.NewStore(pool), nil
}

// openFileStore uses the configured bucket, or process memory served from filesRoute
func openFileStore(cfg *config.Config) (storage.FileStore, error) {
	if !cfg.ObjectStorage.Enabled() {
		return storage.NewMemoryStore(cfg.Server.BaseURL + filesRoute), nil
	}

	return storage.NewS3Store(storage.S3Config{
		AccessKeyID:     cfg.ObjectStorage.AccessKeyID,
		SecretAccessKey: cfg.ObjectStorage.SecretAccessKey,
		BucketName:      cfg.ObjectStorage.BucketName,
		Endpoint:        cfg.ObjectStorage.Endpoint,
		Region:          cfg.ObjectStorage.Region,
		PublicBaseURL:   cfg.ObjectStorage.PublicBaseURL,
	})
}

// openPreferenceStore uses redis when configured and reachable
func openPreferenceStore(ctx context.Context, cfg *config.Config) (services.PreferenceStore, *redis.Client) {
	if cfg.Redis.Addr == "" {
		return services.NewMemoryPreferenceStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, keeping preferences in memory",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = client.Close()
		return services.NewMemoryPreferenceStore(), nil
	}

	logger.Info("Preferences stored in redis", zap.String("addr", cfg.Redis.Addr))
	return services.NewRedisPreferenceStore(client), client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting NMM portal API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("backend", cfg.Database.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
		SampleRatio:       cfg.Observability.TraceSampleRatio,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(profiling.Options{
		Enabled:        cfg.Profiling.Enabled,
		Endpoint:       cfg.Profiling.Endpoint,
		AppName:        cfg.Profiling.AppName,
		SampleTypes:    cfg.Profiling.SampleTypes,
		UploadInterval: time.Duration(cfg.Profiling.UploadIntervalSeconds) * time.Second,
		Labels: map[string]string{
			"env":     cfg.Server.AppEnv,
			"backend": cfg.Database.Backend,
		},
	})
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init()
	metrics.RecordInfrastructureMetrics(ctx)

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer store.Close()

	files, err := openFileStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	prefStore, redisClient := openPreferenceStore(ctx, cfg)
	healthDeps := []handlers.Pinger{store}
	if redisClient != nil {
		defer redisClient.Close()
		healthDeps = append(healthDeps, redisPinger{client: redisClient})
	}

	// Binding tags and their translations live on gin's validator
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Fatal("Unexpected binding validator engine")
	}
	if err := validation.RegisterBindingValidators(validate); err != nil {
		logger.Fatal("Failed to register binding validators", zap.Error(err))
	}
	translator, err := i18n.New(validate)
	if err != nil {
		logger.Fatal("Failed to build message catalogues", zap.Error(err))
	}

	httpClient := httpclient.NewStandardClient()

	dashboardCache := cache.NewDashboardCache(cfg.Cache.DashboardTTLSeconds)
	categoryCache := cache.NewCategoryCache(store, cfg.Cache.ResourceTTLSeconds)
	otpStore := cache.NewOTPStore(time.Duration(cfg.OTP.TTLMinutes) * time.Minute)

	authService := services.NewAuthService(store, otpStore, cfg,
		trigger.NewNotifier(cfg.EventTriggers.OTPRequestedTriggerURL, httpClient))
	registrationService := services.NewRegistrationService(store, files, dashboardCache,
		trigger.NewNotifier(cfg.EventTriggers.UserRegisteredTriggerURL, httpClient))
	dashboardService := services.NewDashboardService(store, store, dashboardCache)
	sessionService := services.NewSessionService(store, store, dashboardCache)
	resourceService := services.NewResourceService(store, files, categoryCache)
	helpdeskService := services.NewHelpdeskService(store,
		trigger.NewNotifier(cfg.EventTriggers.TicketCreatedTriggerURL, httpClient))
	preferencesService := services.NewPreferencesService(prefStore)

	h := handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authService, translator),
		Registration: handlers.NewRegistrationHandler(registrationService, translator),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, translator),
		Sessions:     handlers.NewSessionHandler(sessionService, translator),
		Resources:    handlers.NewResourceHandler(resourceService, translator),
		Helpdesk:     handlers.NewHelpdeskHandler(helpdeskService, translator),
		Preferences:  handlers.NewPreferencesHandler(preferencesService, translator, cfg.Auth.CookieDomain, cfg.Auth.CookieSecure),
		Meta:         handlers.NewMetaHandler(),
	}
	healthHandler := handlers.NewHealthHandler(healthDeps...)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	maxBody := int64(cfg.Server.MaxBodyMB) << 20
	uploadBody := int64(services.MaxResourceMB+1) << 20

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	router.Use(middleware.BodySizeLimitMiddleware(maxBody, map[string]int64{
		"/api/v1/register":  uploadBody,
		"/api/v1/resources": uploadBody,
	}))

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Language", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(0.2, 5)          // 1 req/5s, burst of 5
	registrationRateLimiter := middleware.NewRateLimiter(0.05, 3) // 3 req/min, burst of 3
	defer generalRateLimiter.Stop()
	defer authRateLimiter.Stop()
	defer registrationRateLimiter.Stop()

	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	handlers.RegisterV1Routes(router.Group("/api/v1"), h, authService, handlers.RateLimits{
		General:      generalRateLimiter,
		Auth:         authRateLimiter,
		Registration: registrationRateLimiter,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
