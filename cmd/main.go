package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/health"
	invalidateCacheHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/invalidate_cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/consumer/write_events"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	redisCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/availability"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	cacheRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability_cache"
	timeBlockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeblock"
	providerDirectoryClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerdirectory"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
	invalidateCacheUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

// availabilityCache хранилище кэша доступности (redis или postgres)
type availabilityCache interface {
	Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, bool, error)
	Set(ctx context.Context, key domain.CacheKey, entry *domain.CacheEntry) error
	Delete(ctx context.Context, key domain.CacheKey) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трассировка
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (otlp=%s, ratio=%.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории поверх обёртки с метриками или без
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	appointmentRepository := appointmentRepo.NewRepository(executor)
	timeBlockRepository := timeBlockRepo.NewRepository(executor)

	readiness := map[string]healthHandler.Pinger{"postgres": db}

	// Хранилище кэша доступности
	retention := time.Duration(cfg.Cache.RetentionHours) * time.Hour
	var cacheStore availabilityCache

	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		c := redisCache.NewCache(rdb, cfg.Cache.KeyPrefix, retention)
		if err := c.Ping(ctx); err != nil {
			log.Warn("Redis is not reachable at %s, cache lookups will miss until it recovers: %v", cfg.Redis.Addr, err)
		}
		readiness["redis"] = healthHandler.PingFunc(c.Ping)
		cacheStore = c
		log.Info("Availability cache: redis (addr=%s, prefix=%s, ttl=%s)", cfg.Redis.Addr, cfg.Cache.KeyPrefix, retention)
	default:
		cacheStore = cacheRepo.NewRepository(executor, retention)
		log.Info("Availability cache: postgres (retention=%s)", retention)
	}

	// Интеграционный клиент каталога специалистов и услуг
	directoryClient := providerDirectoryClient.NewClient(
		cfg.ProviderDirectory.URL,
		time.Duration(cfg.ProviderDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProviderDirectory=%s timeout=%ds)",
		cfg.ProviderDirectory.URL, cfg.ProviderDirectory.Timeout)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		directoryClient,
		appointmentRepository,
		timeBlockRepository,
		cacheStore,
		cfg.Cache.Driver,
		metricsCollector,
		log,
	)
	invalidateCacheUseCase := invalidateCacheUC.NewUseCase(cacheStore, metricsCollector, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	invalidateCache := invalidateCacheHandler.NewHandler(invalidateCacheUseCase, log)
	health := healthHandler.NewHandler(readiness, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(mux.MiddlewareFunc(gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.CORSOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderRequestID}),
	)))

	// Доступные слоты специалиста для услуги на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet, http.MethodOptions)

	// ============================================================
	// INTERNAL ROUTES (писатели записей и блокировок)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()

	// Инвалидация кэша после изменения записи или блокировки
	internal.HandleFunc("/availability-cache/invalidate", invalidateCache.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr: addr,
		Handler: gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(
			otelhttp.NewHandler(r, "http.server"),
		),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	var wg sync.WaitGroup

	// Консьюмер событий записи
	if cfg.Kafka.Enabled {
		consumer := write_events.NewConsumer(write_events.Config{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.Topic,
		}, invalidateCacheUseCase, log)

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("Write-event consumer started (topic=%s, group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
			if err := consumer.Run(ctx); err != nil {
				log.Error("Write-event consumer stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
