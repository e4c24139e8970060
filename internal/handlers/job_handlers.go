package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/common"
	"storefront/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobRunner is satisfied by *background.JobScheduler
type JobRunner interface {
	JobNames() []string
	RunNow(name string) error
}

type JobHandlers struct {
	runner JobRunner
}

func NewJobHandlers(runner JobRunner) *JobHandlers {
	return &JobHandlers{runner: runner}
}

type JobListResponse struct {
	Jobs []string `json:"jobs"`
}

// ListJobs handles GET /api/authority/jobs
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, JobListResponse{Jobs: h.runner.JobNames()})
}

// RunJob handles POST /api/authority/jobs/:name/run
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.runner.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return c.JSON(http.StatusNotFound, common.CreateErrorResponse("UNKNOWN_JOB", common.MsgGenericError, map[string]string{"name": name}))
		}
		c.Logger().Errorf("run job %s: %v", name, err)
		return common.SendServerError(c, common.MsgGenericError)
	}
	return c.JSON(http.StatusAccepted, common.MessageResponse{Msg: name})
}
