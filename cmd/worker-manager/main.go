// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"projectflow-workers/internal/common/cache"
	"projectflow-workers/internal/common/camunda"
	"projectflow-workers/internal/common/config"
	"projectflow-workers/internal/common/database"
	"projectflow-workers/internal/common/logger"
	"projectflow-workers/internal/common/observability"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/querybuilder"
	"projectflow-workers/internal/nlq/store/postgres"
	"projectflow-workers/internal/nlq/vocabulary"

	eqp "projectflow-workers/internal/workers/assistant/execute-query-plan"
	puq "projectflow-workers/internal/workers/assistant/parse-user-query"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := loadConfig()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format).With(
		zap.String("service", cfg.Observability.ServiceName),
		zap.String("environment", cfg.App.Environment),
	)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("version", cfg.App.Version))

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}
	defer func() {
		if err := obs.Shutdown(); err != nil {
			zapLog.Warn("observability shutdown", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis (shared plan cache) ---
	var rdb *database.RedisClient
	if cfg.Query.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, time.Second, zapLog, "Redis connection")
		if err != nil {
			// The memory layer still serves; plans run uncached on a miss.
			zapLog.Warn("redis unavailable, using memory cache only", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Query pipeline ---
	table := vocabulary.DefaultTable()
	if path := cfg.Query.VocabularyPath; path != "" {
		table, err = vocabulary.Load(path)
		if err != nil {
			zapLog.Fatal("vocabulary load failed", zap.String("path", path), zap.Error(err))
		}
	}
	zapLog.Info("vocabulary loaded",
		zap.Int("actionWords", table.Len()),
		zap.Int("triggers", table.TriggerCount()),
	)

	proc := processor.New(table)
	builder := querybuilder.New(postgres.New(pg.GetDB()), querybuilder.WithLimits(queryLimits(cfg.Query.Limits)))
	planCache := newPlanCache(cfg.Query.Cache, rdb)

	// --- Workers ---
	workers := camunda.NewWorkers(zeebe.GetClient(), zapLog)

	{
		taskType := puq.TaskType
		wcfg := config.GetWorkerConfig(cfg, taskType)
		handlerCfg := puq.LoadConfig()
		handlerCfg.Timeout = config.GetDuration(wcfg.Timeout)
		handlerCfg.MaxRetries = wcfg.MaxRetries
		handlerCfg.CompleteRetry = zeebe.RetryConfig()
		handler := puq.NewHandler(handlerCfg, proc, obs, &parseUserQueryLoggerAdapter{log})
		workers.Start(taskType, wcfg, handler.Handle)
	}

	{
		taskType := eqp.TaskType
		wcfg := config.GetWorkerConfig(cfg, taskType)
		handlerCfg := &eqp.Config{
			Timeout:       config.GetDuration(wcfg.Timeout),
			MaxRetries:    wcfg.MaxRetries,
			CompleteRetry: zeebe.RetryConfig(),
			CacheEnabled:  cfg.Query.Cache.Enabled,
			KeyPrefix:     cfg.Query.Cache.KeyPrefix,
			CacheTTL:      config.GetDuration(cfg.Query.Cache.RedisTTL),
		}
		handler := eqp.NewHandler(handlerCfg, proc, builder, planCache, obs, &executeQueryPlanLoggerAdapter{log})
		workers.Start(taskType, wcfg, handler.Handle)
	}
	zapLog.Info("workers registered", zap.Strings("running", workers.Running()))

	// --- Health & Metrics Server ---
	pingers := []database.Pinger{zeebe, pg}
	if rdb != nil {
		pingers = append(pingers, rdb)
	}
	srv := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           newOpsMux(pingers),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// loadConfig reads WORKER_CONFIG_FILE when set, otherwise the configs/
// search path.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("WORKER_CONFIG_FILE"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func queryLimits(l config.QueryLimits) querybuilder.Limits {
	return querybuilder.Limits{
		Projects:    l.Projects,
		Tasks:       l.Tasks,
		Resources:   l.Resources,
		General:     l.General,
		AvailableAt: l.AvailableAt,
		BusyBelow:   l.BusyBelow,
	}
}

// newPlanCache returns nil when caching is off. Without redis only the
// process-local layer is used.
func newPlanCache(cfg config.CacheConfig, rdb *database.RedisClient) cache.Cache {
	if !cfg.Enabled {
		return nil
	}
	memTTL := config.GetDuration(cfg.MemoryTTL)
	memory := cache.NewMemoryCache(memTTL, 2*memTTL)

	var shared cache.Cache
	if rdb != nil {
		shared = cache.NewRedisCache(rdb.GetClient())
	}
	return cache.NewLayeredCache(memory, shared, memTTL)
}

func newOpsMux(pingers []database.Pinger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		failures := database.CheckAll(r.Context(), 2*time.Second, pingers...)
		status := http.StatusOK
		checks := make(map[string]string, len(pingers))
		for _, p := range pingers {
			checks[p.Name()] = "ok"
		}
		for name, err := range failures {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]interface{}{
			"status": database.Summary(failures),
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Logger adapters for workers that declare their own Logger interfaces
type parseUserQueryLoggerAdapter struct {
	logger.Logger
}

func (a *parseUserQueryLoggerAdapter) With(fields map[string]interface{}) puq.Logger {
	return &parseUserQueryLoggerAdapter{a.Logger.With(fields)}
}

type executeQueryPlanLoggerAdapter struct {
	logger.Logger
}

func (a *executeQueryPlanLoggerAdapter) With(fields map[string]interface{}) eqp.Logger {
	return &executeQueryPlanLoggerAdapter{a.Logger.With(fields)}
}
