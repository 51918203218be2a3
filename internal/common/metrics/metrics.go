// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	IntentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlq_intents_classified_total",
			Help: "Questions classified, by resulting intent and tier",
		},
		[]string{"intent", "source"},
	)

	PlansExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlq_plans_executed_total",
			Help: "Query plans executed, by plan and outcome",
		},
		[]string{"plan", "status"},
	)

	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlq_plan_duration_seconds",
			Help:    "Store time spent per query plan",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"plan"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlq_cache_lookups_total",
			Help: "Plan result cache lookups, by layer and result",
		},
		[]string{"layer", "result"},
	)
)

// TrackJob marks a job active and returns a func that records its outcome.
// An empty errorCode means the job completed.
func TrackJob(taskType string) func(errorCode string) {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()

	return func(errorCode string) {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if errorCode == "" {
			WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			return
		}
		WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	}
}

func ObservePlan(plan, status string, d time.Duration) {
	PlansExecuted.WithLabelValues(plan, status).Inc()
	PlanDuration.WithLabelValues(plan).Observe(d.Seconds())
}
