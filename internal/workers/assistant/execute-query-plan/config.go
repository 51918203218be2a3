// internal/workers/assistant/execute-query-plan/config.go
package executequeryplan

import (
	"time"

	"projectflow-workers/internal/common/camunda"
)

type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	CompleteRetry *camunda.RetryConfig

	CacheEnabled bool
	KeyPrefix    string
	CacheTTL     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		MaxRetries:    3,
		CompleteRetry: camunda.DefaultRetryConfig,
		CacheEnabled:  true,
		KeyPrefix:     "nlq:plan",
		CacheTTL:      5 * time.Minute,
	}
}
