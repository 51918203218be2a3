package executequeryplan

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"

	"projectflow-workers/internal/common/cache"
	"projectflow-workers/internal/common/camunda"
	"projectflow-workers/internal/common/errors"
	"projectflow-workers/internal/common/metrics"
	"projectflow-workers/internal/common/observability"
	"projectflow-workers/internal/common/validation"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/querybuilder"
)

const (
	TaskType = "execute-query-plan"
)

var inputSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {
    "question":       {"type": "string", "minLength": 1},
    "processedQuery": {"type": "object"},
    "workspaceId":    {"type": "string", "minLength": 1}
  },
  "required": ["workspaceId"],
  "anyOf": [
    {"required": ["question"]},
    {"required": ["processedQuery"]}
  ]
}`)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config     *Config
	processor  *processor.Processor
	builder    *querybuilder.Builder
	cache      cache.Cache
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     Logger
	now        func() time.Time
}

// NewHandler builds the handler. planCache and obs may be nil.
func NewHandler(
	config *Config,
	proc *processor.Processor,
	builder *querybuilder.Builder,
	planCache cache.Cache,
	obs *observability.Observability,
	log Logger,
) *Handler {
	if obs == nil {
		obs = observability.NewWithTracerProvider(TaskType, noop.NewTracerProvider())
	}
	if !config.CacheEnabled {
		planCache = nil
	}
	logger := log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
		processor:  proc,
		builder:    builder,
		cache:      planCache,
		obs:        obs,
		errHandler: errors.NewErrorHandler(logger, config.MaxRetries),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	track := metrics.TrackJob(TaskType)
	done := func(errorCode string) {
		track(errorCode)
		status := "completed"
		if errorCode != "" {
			status = "failed"
		}
		h.obs.RecordJobProcessed(context.Background(), TaskType, status)
		h.obs.RecordJobDuration(context.Background(), TaskType, time.Since(start), status)
	}

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(client, job, errors.NewInvalidQueryInputError(fmt.Sprintf("parse input: %v", err)), done)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(client, job, err, done)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

// fail reports on a fresh context; the job context may already be expired.
func (h *Handler) fail(client worker.JobClient, job entities.Job, err error, done func(string)) {
	stdErr := errors.Normalize(err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
	done(string(stdErr.Code))
}

// Execute runs the plan for the question. Results are served from the plan
// cache when present; cache failures are logged and skipped.
func (h *Handler) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("workspace.id", input.WorkspaceID))
	defer func() { observability.EndSpan(span, err) }()

	if result := inputSchema.Validate(input); !result.Valid {
		return nil, errors.NewInvalidQueryInputError(result.Summary())
	}

	processed := h.processedQuery(input)
	plan := querybuilder.PlanFor(processed.Intent.Intent)
	span.SetAttributes(
		attribute.String("nlq.intent", processed.Intent.Intent),
		attribute.String("nlq.plan", plan),
	)

	key := h.cacheKey(input.WorkspaceID, processed.Intent.Intent)
	if cached, ok := h.lookup(ctx, key); ok {
		span.SetAttributes(attribute.Bool("nlq.cached", true))
		return h.output(cached, true), nil
	}

	start := time.Now()
	result, err := h.builder.Execute(ctx, processed, input.WorkspaceID)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObservePlan(plan, "error", elapsed)
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewQueryTimeoutError(plan, err)
		}
		return nil, errors.NewQueryExecutionFailedError(plan, err)
	}
	metrics.ObservePlan(plan, "ok", elapsed)

	h.store(ctx, key, result)

	output := h.output(result, false)
	h.logger.Info("query plan executed", map[string]interface{}{
		"workspaceId": input.WorkspaceID,
		"intent":      processed.Intent.Intent,
		"plan":        result.PlanUsed,
		"rowCount":    output.RowCount,
		"duration_ms": elapsed.Milliseconds(),
		"queryRunId":  output.QueryRunID,
	})
	return output, nil
}

func (h *Handler) processedQuery(input *Input) processor.ProcessedQuery {
	if input.ProcessedQuery != nil {
		return *input.ProcessedQuery
	}
	return h.processor.Process(input.Question)
}

func (h *Handler) output(result *querybuilder.QueryResult, cached bool) *Output {
	return &Output{
		QueryResult: *result,
		RowCount:    result.RowCount(),
		Cached:      cached,
		QueryRunID:  uuid.NewString(),
	}
}

// cacheKey is <prefix>:<workspace>:<intent>:<UTC date>.
func (h *Handler) cacheKey(workspaceID, intentID string) string {
	return cache.Key(h.config.KeyPrefix, workspaceID, intentID, h.now().UTC().Format("2006-01-02"))
}

func (h *Handler) lookup(ctx context.Context, key string) (*querybuilder.QueryResult, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, found, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("plan cache lookup failed, bypassing", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	if !found {
		return nil, false
	}

	var result querybuilder.QueryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		h.logger.Warn("discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = h.cache.Delete(ctx, key)
		return nil, false
	}
	return &result, true
}

func (h *Handler) store(ctx context.Context, key string, result *querybuilder.QueryResult) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		h.logger.Warn("plan result not cacheable", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := h.cache.Set(ctx, key, raw, h.config.CacheTTL); err != nil {
		h.logger.Warn("plan cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	if err := camunda.CompleteJob(ctx, client, job, output, h.config.CompleteRetry); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}
