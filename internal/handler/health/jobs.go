package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/node-dashboard/internal/monitoring"
)

// failingThreshold is the number of consecutive failures after which a
// polling job makes the whole dashboard unhealthy
const failingThreshold = 2

// Jobs handles the polling jobs health check endpoint
// @Summary Polling jobs health check
// @Description Reports the dashboard polling cycles and their recent outcomes
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} JobsHealthResponse
// @Success 206 {object} JobsHealthResponse
// @Failure 503 {object} JobsHealthResponse
// @Router /api/v1/health/jobs [get]
func (h *HealthHandler) Jobs(c *gin.Context) {
	start := time.Now()

	if h.jobStatusManager == nil {
		response := JobsHealthResponse{
			Status:     "unhealthy",
			Timestamp:  time.Now(),
			Jobs:       make(map[string]monitoring.JobStatus),
			Summary:    monitoring.JobsSummary{},
			DurationMs: time.Since(start).Milliseconds(),
		}
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	jobs := h.jobStatusManager.GetAllJobStatuses()
	summary := h.jobStatusManager.GetJobsSummary()

	overallStatus := "healthy"
	if summary.StalledJobs > 0 {
		overallStatus = "unhealthy"
	} else if summary.UnhealthyJobs > 0 {
		overallStatus = "degraded"
		for _, jobStatus := range jobs {
			if jobStatus.Status == monitoring.JobStatusFailed &&
				jobStatus.ConsecutiveFailures > failingThreshold {
				overallStatus = "unhealthy"
				break
			}
		}
	}

	response := JobsHealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Jobs:       jobs,
		Summary:    summary,
		DurationMs: time.Since(start).Milliseconds(),
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	} else if overallStatus == "degraded" {
		statusCode = http.StatusPartialContent
	}

	h.logger.Debug("Jobs health check completed", map[string]string{
		"overall_status": overallStatus,
		"duration":       fmt.Sprintf("%dms", response.DurationMs),
		"total_jobs":     fmt.Sprintf("%d", summary.TotalJobs),
		"unhealthy_jobs": fmt.Sprintf("%d", summary.UnhealthyJobs),
		"stalled_jobs":   fmt.Sprintf("%d", summary.StalledJobs),
	})

	c.JSON(statusCode, response)
}
