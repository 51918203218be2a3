// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidQueryInput ErrorCode = "INVALID_QUERY_INPUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeVocabularyLoadFailed ErrorCode = "VOCABULARY_LOAD_FAILED"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeEngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"
	ErrCodeEngineTimeout     ErrorCode = "ENGINE_TIMEOUT"
	ErrCodeEngineRejected    ErrorCode = "ENGINE_REJECTED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to Metadata and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidQueryInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryInput,
		Message:   "Invalid query input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error for
// the named plan.
func NewQueryExecutionFailedError(plan string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("plan: %s, error: %s", plan, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"plan": plan},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewQueryTimeoutError(plan string, err error) *StandardError {
	details := fmt.Sprintf("plan: %s", plan)
	if err != nil {
		details = fmt.Sprintf("%s, error: %s", details, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   details,
		Retryable: true,
		Metadata:  map[string]interface{}{"plan": plan},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewVocabularyLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVocabularyLoadFailed,
		Message:   "Action word vocabulary could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCacheUnavailableError(layer string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   fmt.Sprintf("Cache layer '%s' unavailable", layer),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Workflow engine (Zeebe gateway) errors.

func NewEngineUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineUnavailable,
		Message:   fmt.Sprintf("Zeebe operation '%s' failed: gateway unavailable", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewEngineTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineTimeout,
		Message:   fmt.Sprintf("Zeebe operation '%s' timed out", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewEngineRejectedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEngineRejected,
		Message:   fmt.Sprintf("Zeebe operation '%s' was rejected", operation),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by boundary
// events in the process models.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidQueryInput:        "INVALID_QUERY_INPUT",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeVocabularyLoadFailed:     "VOCABULARY_LOAD_FAILED",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
	ErrCodeEngineUnavailable:        "ENGINE_UNAVAILABLE",
	ErrCodeEngineTimeout:            "ENGINE_TIMEOUT",
	ErrCodeEngineRejected:           "ENGINE_REJECTED",
}

// GetRetryCount returns the recommended retry count for code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeCacheUnavailable,
		ErrCodeEngineUnavailable,
		ErrCodeEngineTimeout:
		return 2

	default:
		return 0 // business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a *StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.HasPrefix(codeStr, "QUERY_"):
		return "DATABASE"
	case strings.Contains(codeStr, "VOCABULARY"):
		return "VOCABULARY"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.HasPrefix(codeStr, "ENGINE_"):
		return "ENGINE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
