package parseuserquery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"

	"projectflow-workers/internal/common/camunda"
	"projectflow-workers/internal/common/errors"
	"projectflow-workers/internal/common/metrics"
	"projectflow-workers/internal/common/observability"
	"projectflow-workers/internal/common/validation"
	"projectflow-workers/internal/nlq/entity"
	"projectflow-workers/internal/nlq/processor"
)

const (
	TaskType = "parse-user-query"
)

const inputSchema = `{
  "type": "object",
  "properties": {
    "question":    {"type": "string", "minLength": 1, "maxLength": %d},
    "workspaceId": {"type": "string", "minLength": 1}
  },
  "required": ["question", "workspaceId"]
}`

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
	schema     *validation.Schema
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     Logger
}

// NewHandler builds the handler. A nil obs disables tracing.
func NewHandler(config *Config, proc *processor.Processor, obs *observability.Observability, log Logger) *Handler {
	if obs == nil {
		obs = observability.NewWithTracerProvider(TaskType, noop.NewTracerProvider())
	}
	logger := log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
		processor:  proc,
		schema:     validation.MustCompile(fmt.Sprintf(inputSchema, config.MaxQuestionLength)),
		obs:        obs,
		errHandler: errors.NewErrorHandler(logger, config.MaxRetries),
		logger:     logger,
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
		h.fail(ctx, client, job, errors.NewInvalidQueryInputError(fmt.Sprintf("parse input: %v", err)), done)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err, done)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, done func(string)) {
	stdErr := errors.Normalize(err)
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
	done(string(stdErr.Code))
}

// Execute validates input and runs the processor over the question. It only
// fails on invalid input.
func (h *Handler) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	_, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("workspace.id", input.WorkspaceID),
		attribute.Int("question.length", len(input.Question)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if result := h.schema.Validate(input); !result.Valid {
		return nil, errors.NewInvalidQueryInputError(result.Summary())
	}

	processed := h.processor.Process(input.Question)
	metrics.IntentsClassified.WithLabelValues(processed.Intent.Intent, string(processed.Intent.Source)).Inc()
	span.SetAttributes(
		attribute.String("nlq.intent", processed.Intent.Intent),
		attribute.Float64("nlq.confidence", processed.Intent.Confidence),
	)

	output := &Output{
		ProcessedQuery: processed.Compact(),
		IntentAnalysis: IntentAnalysis{
			PrimaryIntent: processed.Intent.Intent,
			Confidence:    processed.Intent.Confidence,
			Source:        string(processed.Intent.Source),
		},
		Entities:       processed.Entities,
		MatchedActions: processed.ActionIDs(),
	}

	h.logger.Info("question parsed", map[string]interface{}{
		"workspaceId":    input.WorkspaceID,
		"intent":         output.IntentAnalysis.PrimaryIntent,
		"confidence":     output.IntentAnalysis.Confidence,
		"source":         output.IntentAnalysis.Source,
		"entityCount":    len(output.Entities),
		"projects":       entity.Values(output.Entities, entity.TypeProject),
		"statuses":       entity.Values(output.Entities, entity.TypeStatus),
		"matchedActions": output.MatchedActions,
	})

	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	if err := camunda.CompleteJob(ctx, client, job, output, h.config.CompleteRetry); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}
