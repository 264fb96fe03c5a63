package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
	"github.com/pennywiseapp/penny_wise_app/internal/middleware"
)

// scheduleHandler handles HTTP requests for the projected payment schedule.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func newScheduleHandler(svc portssvc.ScheduleSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleService: svc}
}

// registerScheduleRoutes registers routes related to the schedule.
func registerScheduleRoutes(rg *gin.RouterGroup, svc portssvc.ScheduleSvcFacade) {
	h := newScheduleHandler(svc)

	schedule := rg.Group("/schedule")
	{
		schedule.GET("", h.getMonthSchedule)
		schedule.GET("/range", h.getRangeSchedule)
	}
}

// getMonthSchedule godoc
// @Summary Get the schedule for one month
// @Description Projects all expected due dates within a calendar month, with resolved statuses
// @Tags schedule
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month query int true "Calendar month (1-12)"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to project schedule"
// @Router /schedule [get]
func (h *scheduleHandler) getMonthSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ScheduleMonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for month schedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	occurrences, err := h.scheduleService.GetScheduleForMonth(c.Request.Context(), params.Year, time.Month(params.Month))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to project schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(occurrences))
}

// getRangeSchedule godoc
// @Summary Get the schedule for a date range
// @Description Projects all expected due dates within [from, to] inclusive, with resolved statuses
// @Tags schedule
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or inverted range"
// @Failure 500 {object} map[string]string "Failed to project schedule"
// @Router /schedule/range [get]
func (h *scheduleHandler) getRangeSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ScheduleRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for range schedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	occurrences, err := h.scheduleService.GetScheduleForRange(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to project schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(occurrences))
}
