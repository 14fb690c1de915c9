package monitoring

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// JobExecutionStatus represents different job execution states
type JobExecutionStatus string

const (
	JobStatusPending JobExecutionStatus = "pending"
	JobStatusRunning JobExecutionStatus = "running"
	JobStatusSuccess JobExecutionStatus = "success"
	JobStatusFailed  JobExecutionStatus = "failed"
	JobStatusStalled JobExecutionStatus = "stalled"
)

// JobStatus contains complete status information for a polling job
type JobStatus struct {
	JobName             string             `json:"job_name"`
	Status              JobExecutionStatus `json:"status"`
	LastRunTime         time.Time          `json:"last_run_time"`
	LastSuccessTime     time.Time          `json:"last_success_time"`
	LastDuration        time.Duration      `json:"last_duration_ms"`
	SuccessCount        int64              `json:"success_count"`
	FailureCount        int64              `json:"failure_count"`
	ConsecutiveFailures int64              `json:"consecutive_failures"`
	LastError           string             `json:"last_error,omitempty"`
	LastErrorType       string             `json:"last_error_type,omitempty"`
	AverageExecution    time.Duration      `json:"average_execution_ms"`
	MaxExecutionTime    time.Duration      `json:"max_execution_ms"`
	MinExecutionTime    time.Duration      `json:"min_execution_ms"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// JobsSummary provides an overview of all job statuses
type JobsSummary struct {
	TotalJobs      int       `json:"total_jobs"`
	RunningJobs    int       `json:"running_jobs"`
	HealthyJobs    int       `json:"healthy_jobs"`
	UnhealthyJobs  int       `json:"unhealthy_jobs"`
	StalledJobs    int       `json:"stalled_jobs"`
	LastUpdateTime time.Time `json:"last_update_time"`
}

// JobStatusManager manages job status tracking with thread-safe operations
type JobStatusManager struct {
	mu               sync.RWMutex
	statuses         map[string]*JobStatus
	logger           *logger.Logger
	metrics          *BackgroundJobMetrics
	stalledThreshold time.Duration
}

func NewJobStatusManager(logger *logger.Logger, metrics *BackgroundJobMetrics) *JobStatusManager {
	return &JobStatusManager{
		statuses:         make(map[string]*JobStatus),
		logger:           logger,
		metrics:          metrics,
		stalledThreshold: 5 * time.Minute,
	}
}

// Run flags stalled jobs once a minute until ctx is done.
func (jsm *JobStatusManager) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jsm.detectStalledJobs()
		case <-ctx.Done():
			return
		}
	}
}

// RegisterJob registers a new job for monitoring
func (jsm *JobStatusManager) RegisterJob(jobName string) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	if _, exists := jsm.statuses[jobName]; !exists {
		jsm.statuses[jobName] = newJobStatus(jobName, JobStatusPending)

		jsm.logger.Debug("Job registered for monitoring", map[string]string{
			"job_name": jobName,
		})
	}
}

func newJobStatus(jobName string, status JobExecutionStatus) *JobStatus {
	now := time.Now()
	return &JobStatus{
		JobName:          jobName,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
		MinExecutionTime: time.Duration(math.MaxInt64),
	}
}

// StartJob marks a job as started and updates its status
func (jsm *JobStatusManager) StartJob(jobName string) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	status, exists := jsm.statuses[jobName]
	if !exists {
		status = newJobStatus(jobName, JobStatusRunning)
		jsm.statuses[jobName] = status
	}
	status.Status = JobStatusRunning
	status.LastRunTime = time.Now()
	status.UpdatedAt = status.LastRunTime

	jsm.metrics.activeJobs.Inc()
}

// CompleteJob marks a job as completed and updates all relevant statistics
func (jsm *JobStatusManager) CompleteJob(jobName string, err error) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	status, exists := jsm.statuses[jobName]
	if !exists {
		jsm.logger.Error("Attempted to complete unregistered job", map[string]string{
			"job_name": jobName,
		})
		return
	}

	duration := time.Since(status.LastRunTime)
	status.LastDuration = duration
	status.UpdatedAt = time.Now()

	if duration < status.MinExecutionTime {
		status.MinExecutionTime = duration
	}
	if duration > status.MaxExecutionTime {
		status.MaxExecutionTime = duration
	}

	totalRuns := status.SuccessCount + status.FailureCount
	if totalRuns > 0 {
		totalTime := status.AverageExecution*time.Duration(totalRuns) + duration
		status.AverageExecution = totalTime / time.Duration(totalRuns+1)
	} else {
		status.AverageExecution = duration
	}

	if err != nil {
		status.Status = JobStatusFailed
		status.FailureCount++
		status.ConsecutiveFailures++
		status.LastError = err.Error()
		status.LastErrorType = classifyJobError(err)

		jsm.metrics.jobRuns.WithLabelValues(jobName, "error").Inc()
		jsm.metrics.jobDuration.WithLabelValues(jobName, "failed").Observe(duration.Seconds())

		jsm.logger.Error("Job failed", map[string]string{
			"job_name":             jobName,
			"duration":             duration.String(),
			"error":                err.Error(),
			"consecutive_failures": fmt.Sprintf("%d", status.ConsecutiveFailures),
		})
	} else {
		status.Status = JobStatusSuccess
		status.SuccessCount++
		status.ConsecutiveFailures = 0
		status.LastError = ""
		status.LastErrorType = ""
		status.LastSuccessTime = status.UpdatedAt

		jsm.metrics.jobRuns.WithLabelValues(jobName, "success").Inc()
		jsm.metrics.jobDuration.WithLabelValues(jobName, "success").Observe(duration.Seconds())

		jsm.logger.Debug("Job completed successfully", map[string]string{
			"job_name": jobName,
			"duration": duration.String(),
		})
	}

	jsm.metrics.activeJobs.Dec()
}

// GetJobStatus returns a copy of the current status of a specific job
func (jsm *JobStatusManager) GetJobStatus(jobName string) (*JobStatus, bool) {
	jsm.mu.RLock()
	defer jsm.mu.RUnlock()

	if status, exists := jsm.statuses[jobName]; exists {
		statusCopy := *status
		return &statusCopy, true
	}

	return nil, false
}

// GetAllJobStatuses returns the current status of all jobs
func (jsm *JobStatusManager) GetAllJobStatuses() map[string]JobStatus {
	jsm.mu.RLock()
	defer jsm.mu.RUnlock()

	result := make(map[string]JobStatus, len(jsm.statuses))
	currentTime := time.Now()

	for name, status := range jsm.statuses {
		statusCopy := *status
		if status.Status == JobStatusRunning &&
			currentTime.Sub(status.LastRunTime) > jsm.stalledThreshold {
			statusCopy.Status = JobStatusStalled
		}
		result[name] = statusCopy
	}

	return result
}

// GetJobsSummary returns a summary of all job statuses
func (jsm *JobStatusManager) GetJobsSummary() JobsSummary {
	statuses := jsm.GetAllJobStatuses()

	summary := JobsSummary{
		TotalJobs:      len(statuses),
		LastUpdateTime: time.Now(),
	}

	for _, status := range statuses {
		switch status.Status {
		case JobStatusRunning:
			summary.RunningJobs++
		case JobStatusSuccess:
			summary.HealthyJobs++
		case JobStatusFailed:
			summary.UnhealthyJobs++
		case JobStatusStalled:
			summary.StalledJobs++
		}
	}

	return summary
}

func (jsm *JobStatusManager) detectStalledJobs() {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	currentTime := time.Now()
	stalledCount := 0

	for jobName, status := range jsm.statuses {
		if status.Status == JobStatusRunning &&
			currentTime.Sub(status.LastRunTime) > jsm.stalledThreshold {

			status.Status = JobStatusStalled
			status.UpdatedAt = currentTime
			stalledCount++

			jsm.logger.Error("Job detected as stalled", map[string]string{
				"job_name":      jobName,
				"last_run_time": status.LastRunTime.Format(time.RFC3339),
				"duration":      currentTime.Sub(status.LastRunTime).String(),
			})
		}
	}

	jsm.metrics.stalledJobs.Set(float64(stalledCount))
}

// InstrumentedJob wraps a job function with monitoring and error handling
type InstrumentedJob struct {
	jobName       string
	jobFunc       func(ctx context.Context) error
	statusManager *JobStatusManager
	logger        *logger.Logger
	timeout       time.Duration
}

// NewInstrumentedJob registers jobName and wraps jobFunc. A zero timeout
// leaves the job bounded only by its own transport.
func NewInstrumentedJob(
	jobName string,
	jobFunc func(ctx context.Context) error,
	statusManager *JobStatusManager,
	logger *logger.Logger,
	timeout time.Duration,
) *InstrumentedJob {
	statusManager.RegisterJob(jobName)

	return &InstrumentedJob{
		jobName:       jobName,
		jobFunc:       jobFunc,
		statusManager: statusManager,
		logger:        logger,
		timeout:       timeout,
	}
}

// Execute runs the job with monitoring, optional timeout, and panic recovery.
// The returned error has already been recorded and logged.
func (ij *InstrumentedJob) Execute(ctx context.Context) error {
	ij.statusManager.StartJob(ij.jobName)

	if ij.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ij.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ij.logger.Error("Job panicked", map[string]string{
					"job_name":    ij.jobName,
					"panic":       fmt.Sprintf("%v", r),
					"stack_trace": string(debug.Stack()),
				})
				done <- fmt.Errorf("job panicked: %v", r)
			}
		}()
		done <- ij.jobFunc(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		if ij.timeout > 0 {
			ij.statusManager.metrics.jobTimeouts.WithLabelValues(ij.jobName).Inc()
		}
		err = fmt.Errorf("job %s aborted: %w", ij.jobName, ctx.Err())
	}

	ij.statusManager.CompleteJob(ij.jobName, err)
	return err
}

// BackgroundJobMetrics contains all Prometheus metrics for polling jobs
type BackgroundJobMetrics struct {
	jobDuration *prometheus.HistogramVec
	jobRuns     *prometheus.CounterVec
	activeJobs  prometheus.Gauge
	stalledJobs prometheus.Gauge
	jobTimeouts *prometheus.CounterVec
}

func NewBackgroundJobMetrics() *BackgroundJobMetrics {
	return &BackgroundJobMetrics{
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "node_dashboard_poll_duration_seconds",
				Help:    "Polling cycle duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"job_name", "status"},
		),
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "node_dashboard_poll_runs_total",
				Help: "Total number of polling cycles",
			},
			[]string{"job_name", "status"},
		),
		activeJobs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "node_dashboard_polls_active",
				Help: "Number of polling cycles currently running",
			},
		),
		stalledJobs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "node_dashboard_polls_stalled",
				Help: "Number of stalled polling cycles",
			},
		),
		jobTimeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "node_dashboard_poll_timeouts_total",
				Help: "Total polling cycle timeouts",
			},
			[]string{"job_name"},
		),
	}
}

// MustRegister registers all polling metrics with the provided registry
func (m *BackgroundJobMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.jobDuration,
		m.jobRuns,
		m.activeJobs,
		m.stalledJobs,
		m.jobTimeouts,
	)
}

// classifyJobError buckets poll failures for the status display
func classifyJobError(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline"):
		return "timeout"
	case strings.Contains(errStr, "panic"):
		return "panic"
	case strings.Contains(errStr, "connection"), strings.Contains(errStr, "network"), strings.Contains(errStr, "dial"):
		return "network"
	case strings.Contains(errStr, "status"):
		return "http"
	case strings.Contains(errStr, "decode"), strings.Contains(errStr, "json"):
		return "decode"
	default:
		return "unknown"
	}
}
