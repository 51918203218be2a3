// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// applies environment overrides and validates the result for the worker
// manager.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads and validates configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ReadFile loads path with defaults applied but without the worker-manager
// validation, for tools that only need the query section. An empty path
// yields the defaults.
func ReadFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// bindEnvKeys registers the keys that may only come from the environment, so
// AutomaticEnv can see them during Unmarshal.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"camunda.broker_address",
		"database.postgres.host",
		"database.postgres.port",
		"database.postgres.database",
		"database.postgres.user",
		"database.postgres.password",
		"database.redis.address",
		"database.redis.password",
		"logging.level",
		"observability.jaeger_endpoint",
		"query.vocabulary_path",
	} {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("database.postgres.user", "DATABASE_POSTGRES_USER", "DB_USER")
	_ = v.BindEnv("database.postgres.password", "DATABASE_POSTGRES_PASSWORD", "DB_PASSWORD")
}

func decode(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking from the working directory
// up to the module root.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} placeholders in string values. Unset
// variables expand to "", so required keys fail validation instead of
// carrying the literal placeholder.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if !strings.Contains(strVal, "${") && !(strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "projectflow-workers"
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "worker-manager"
	}
	if cfg.Observability.MetricsAddress == "" {
		cfg.Observability.MetricsAddress = ":8080"
	}
	if cfg.Observability.SampleRatio <= 0 || cfg.Observability.SampleRatio > 1 {
		cfg.Observability.SampleRatio = 1
	}

	applyQueryDefaults(&cfg.Query)

	// max_retries is left as written; 0 means a retryable failure is thrown
	// as a BPMN error straight away.
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		if worker.Timeout == 0 {
			worker.Timeout = cfg.Camunda.Timeout
		}
		cfg.Workers[key] = worker
	}
}

func applyQueryDefaults(q *QueryConfig) {
	l := &q.Limits
	if l.Projects == 0 {
		l.Projects = 10
	}
	if l.Tasks == 0 {
		l.Tasks = 20
	}
	if l.Resources == 0 {
		l.Resources = 20
	}
	if l.General == 0 {
		l.General = 5
	}
	if l.AvailableAt == 0 {
		l.AvailableAt = 50
	}
	if l.BusyBelow == 0 {
		l.BusyBelow = 30
	}

	if q.Cache.KeyPrefix == "" {
		q.Cache.KeyPrefix = "nlq:plan"
	}
	if q.Cache.MemoryTTL == 0 {
		q.Cache.MemoryTTL = 60000
	}
	if q.Cache.RedisTTL == 0 {
		q.Cache.RedisTTL = 300000
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}

	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Query.Cache.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when query.cache is enabled")
	}

	if cfg.Query.Limits.BusyBelow > cfg.Query.Limits.AvailableAt {
		return fmt.Errorf("query.limits.busy_below (%v) must not exceed available_at (%v)",
			cfg.Query.Limits.BusyBelow, cfg.Query.Limits.AvailableAt)
	}

	return nil
}

// DefaultMaxRetries is the retry budget of a worker with no config entry.
const DefaultMaxRetries = 3

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
		MaxRetries:    DefaultMaxRetries,
	}
}
