package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectflow-workers/internal/common/camunda/camundatest"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
}

// ==========================
// HandleJobError
// ==========================

func TestHandleJobError_FailsWithFewerRetries(t *testing.T) {
	client := camundatest.NewJobClient()
	log := &recordingLogger{}
	h := NewErrorHandler(log, 3)
	job := camundatest.NewJob(42, "execute-query-plan", 3, map[string]interface{}{})

	decision := h.HandleJobError(context.Background(), client, job,
		NewQueryExecutionFailedError("overdue_tasks", stderrors.New("connection reset")))

	assert.Equal(t, DecisionFail, decision)
	require.Len(t, client.Failed, 1)
	assert.Empty(t, client.Thrown)
	assert.Equal(t, int64(42), client.Failed[0].JobKey)
	assert.Equal(t, int32(2), client.Failed[0].Retries)
	assert.Equal(t, []string{"Job failed"}, log.messages)
}

func TestHandleJobError_ThrowsOnLastAttempt(t *testing.T) {
	client := camundatest.NewJobClient()
	h := NewErrorHandler(&recordingLogger{}, 3)
	job := camundatest.NewJob(7, "execute-query-plan", 1, map[string]interface{}{})

	decision := h.HandleJobError(context.Background(), client, job,
		NewQueryExecutionFailedError("overdue_tasks", stderrors.New("connection reset")))

	assert.Equal(t, DecisionThrow, decision)
	assert.Empty(t, client.Failed)
	require.Len(t, client.Thrown, 1)
	assert.Equal(t, "QUERY_EXECUTION_FAILED", client.Thrown[0].ErrorCode)
}

func TestHandleJobError_PlainErrorIsInternal(t *testing.T) {
	client := camundatest.NewJobClient()
	h := NewErrorHandler(&recordingLogger{}, 3)
	job := camundatest.NewJob(9, "parse-user-query", 3, map[string]interface{}{})

	decision := h.HandleJobError(context.Background(), client, job, stderrors.New("boom"))

	assert.Equal(t, DecisionThrow, decision)
	require.Len(t, client.Thrown, 1)
	assert.Equal(t, string(ErrCodeInternal), client.Thrown[0].ErrorCode)
}
