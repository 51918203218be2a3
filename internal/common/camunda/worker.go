// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"projectflow-workers/internal/common/config"
)

// HandlerFunc matches worker.JobHandler; every assistant worker's Handle
// method has this shape.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Workers keeps the opened job workers so they can be closed together.
type Workers struct {
	client  zbc.Client
	log     *zap.Logger
	workers map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, log *zap.Logger) *Workers {
	return &Workers{client: client, log: log, workers: make(map[string]worker.JobWorker)}
}

// Start opens a job worker for taskType unless it is disabled. It reports
// whether a worker was opened.
func (w *Workers) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) bool {
	if !wcfg.Enabled {
		w.log.Info("worker disabled", zap.String("taskType", taskType))
		return false
	}

	jw := w.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		PollInterval(100 * time.Millisecond).
		Open()
	w.workers[taskType] = jw

	w.log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return true
}

// Running lists the task types with an open worker.
func (w *Workers) Running() []string {
	out := make([]string, 0, len(w.workers))
	for taskType := range w.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (w *Workers) Close() {
	for taskType, jw := range w.workers {
		w.log.Info("stopping worker", zap.String("taskType", taskType))
		jw.Close()
		jw.AwaitClose()
	}
	w.workers = make(map[string]worker.JobWorker)
}

// CompleteJob completes job with variables. Transient gateway errors are
// retried with rc; the returned error is mapped like Retry's.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, variables interface{}, rc *RetryConfig) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(variables)
	if err != nil {
		return fmt.Errorf("complete job %d: %w", job.Key, err)
	}

	return Retry(ctx, rc, "complete job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}
