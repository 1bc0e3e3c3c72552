package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"rbf-backend/internal/usecase/monitoring"
)

// MetricsJobRunner triggers the monthly collection job. Satisfied by
// usecase/monitoring.Usecase.
type MetricsJobRunner interface {
	RunMonthlyJob(ctx context.Context) ([]monitoring.JobResult, error)
	RunJobForPeriod(ctx context.Context, period string) ([]monitoring.JobResult, error)
}

type MonitoringHandler struct{ uc MetricsJobRunner }

func NewMonitoringHandler(uc MetricsJobRunner) *MonitoringHandler {
	return &MonitoringHandler{uc: uc}
}

type runMetricsJobReq struct {
	// Empty body targets the prior calendar month; a period backfills
	// that explicit month instead.
	Period string `json:"period" validate:"omitempty,period"`
}

type runMetricsJobResp struct {
	Processed int                    `json:"processed"`
	Failed    int                    `json:"failed"`
	Results   []monitoring.JobResult `json:"results"`
}

func (h *MonitoringHandler) RunMetricsJob(c echo.Context) error {
	var req runMetricsJobReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	var (
		results []monitoring.JobResult
		err     error
	)
	if req.Period != "" {
		results, err = h.uc.RunJobForPeriod(c.Request().Context(), req.Period)
	} else {
		results, err = h.uc.RunMonthlyJob(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	resp := runMetricsJobResp{Results: results}
	for _, r := range results {
		if r.Status == monitoring.JobOK {
			resp.Processed++
		} else {
			resp.Failed++
		}
	}
	return c.JSON(http.StatusOK, resp)
}
