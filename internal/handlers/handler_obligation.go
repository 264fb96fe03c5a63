package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
	"github.com/pennywiseapp/penny_wise_app/internal/middleware"
)

// obligationHandler handles HTTP requests related to recurring obligations.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

func newObligationHandler(svc portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: svc}
}

// registerObligationRoutes registers routes related to obligations.
func registerObligationRoutes(rg *gin.RouterGroup, svc portssvc.ObligationSvcFacade) {
	h := newObligationHandler(svc)

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", h.createObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/:id", h.getObligation)
		obligations.PUT("/:id", h.updateObligation)
		obligations.DELETE("/:id", h.deactivateObligation)
	}
}

// createObligation godoc
// @Summary Create a new recurring obligation
// @Description Registers a recurring payment commitment that will project scheduled occurrences
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create obligation"
// @Router /obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), req, defaultUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create obligation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

// listObligations godoc
// @Summary List obligations
// @Description Retrieves a paginated list of obligations, optionally active only
// @Tags obligations
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Param   activeOnly query bool false "Return only active obligations"
// @Success 200 {object} dto.ListObligationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list obligations"
// @Router /obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListObligations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	obligations, err := h.obligationService.ListObligations(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list obligations")
		return
	}

	resp := dto.ListObligationsResponse{Obligations: make([]dto.ObligationResponse, len(obligations))}
	for i := range obligations {
		resp.Obligations[i] = dto.ToObligationResponse(&obligations[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Description Retrieves details for a specific obligation
// @Tags obligations
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve obligation"
// @Router /obligations/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	obligation, err := h.obligationService.GetObligationByID(c.Request.Context(), obligationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// updateObligation godoc
// @Summary Update an obligation
// @Description Updates the mutable fields of an obligation; only provided fields change
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Param   obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to update obligation"
// @Router /obligations/{id} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), obligationID, req, defaultUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// deactivateObligation godoc
// @Summary Deactivate an obligation
// @Description Marks an obligation inactive so it stops projecting occurrences; history is kept
// @Tags obligations
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to deactivate obligation"
// @Router /obligations/{id} [delete]
func (h *obligationHandler) deactivateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	if err := h.obligationService.DeactivateObligation(c.Request.Context(), obligationID, defaultUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate obligation")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
