// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws a job according to the error code.
type ErrorHandler struct {
	logger     Logger
	maxRetries int
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// NewErrorHandler caps the retries of every failed job at maxRetries, the
// worker's configured budget.
func NewErrorHandler(logger Logger, maxRetries int) *ErrorHandler {
	return &ErrorHandler{logger: logger, maxRetries: maxRetries}
}

// Decision is what HandleJobError did with a job.
type Decision string

const (
	DecisionFail  Decision = "fail"
	DecisionThrow Decision = "throw"
)

// Decide reports whether a job activated with retriesLeft should be failed
// for another attempt or have a BPMN error thrown. The retries handed back to
// Zeebe are always below retriesLeft and never above the code's budget or
// maxRetries, so a persistently failing job ends in a throw.
func Decide(stdErr *StandardError, retriesLeft int32, maxRetries int) (Decision, int) {
	if !stdErr.Retryable {
		return DecisionThrow, 0
	}

	next := int(retriesLeft) - 1
	if budget := GetRetryCount(stdErr.Code); next > budget {
		next = budget
	}
	if next > maxRetries {
		next = maxRetries
	}
	if next <= 0 {
		return DecisionThrow, 0
	}
	return DecisionFail, next
}

// HandleJobError handles any error in a worker job.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Decision {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)

	decision, retries := Decide(stdErr, job.Retries, h.maxRetries)
	if decision == DecisionFail {
		h.failJobWithRetries(ctx, client, job, bpmnErr, retries)
	} else {
		h.throwBPMNError(ctx, client, job, bpmnErr)
	}
	return decision
}

// Normalize returns the StandardError in err's chain, or wraps err as an
// internal error.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          bpmnErr.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
