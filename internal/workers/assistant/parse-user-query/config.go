// internal/workers/assistant/parse-user-query/config.go
package parseuserquery

import (
	"time"

	"projectflow-workers/internal/common/camunda"
)

type Config struct {
	Timeout           time.Duration
	MaxQuestionLength int
	MaxRetries        int
	CompleteRetry     *camunda.RetryConfig
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           5 * time.Second,
		MaxQuestionLength: 500,
		MaxRetries:        0,
		CompleteRetry:     camunda.DefaultRetryConfig,
	}
}
