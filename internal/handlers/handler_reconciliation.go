package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
	"github.com/pennywiseapp/penny_wise_app/internal/middleware"
)

// reconciliationHandler handles HTTP requests for matching transactions
// against the projected schedule.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(svc portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: svc}
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, svc portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(svc)

	recon := rg.Group("/reconciliation")
	{
		recon.POST("/automatch", h.autoMatch)
		recon.POST("/diagnose", h.diagnose)
		recon.POST("/links", h.confirmMatch)
		recon.DELETE("/links/:occurrenceID", h.unlink)
	}
}

// autoMatch godoc
// @Summary Run an automatic reconciliation pass
// @Description Matches unpaid occurrences in the window against transactions; high-confidence matches are applied, medium ones returned for review
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   window body dto.AutoMatchRequest true "Date window"
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 400 {object} map[string]string "Invalid input or inverted window"
// @Failure 500 {object} map[string]string "Reconciliation failed"
// @Router /reconciliation/automatch [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AutoMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	outcome, err := h.reconciliationService.RunAutoMatch(c.Request.Context(), req.From, req.To, defaultUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Reconciliation failed")
		return
	}

	c.JSON(http.StatusOK, dto.ToAutoMatchResponse(outcome.Applied, outcome.ForReview))
}

// diagnose godoc
// @Summary Explain match candidates for one occurrence
// @Description Scores every transaction in the window against an occurrence under relaxed gates, with per-factor breakdowns
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   request body dto.DiagnoseRequest true "Occurrence and window"
// @Success 200 {object} dto.DiagnoseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Diagnosis failed"
// @Router /reconciliation/diagnose [post]
func (h *reconciliationHandler) diagnose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Diagnose", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	occurrenceID, candidates, err := h.reconciliationService.Diagnose(c.Request.Context(), req.ObligationID, req.DueDate, req.From, req.To)
	if err != nil {
		respondServiceError(c, logger, err, "Diagnosis failed")
		return
	}

	c.JSON(http.StatusOK, dto.DiagnoseResponse{
		OccurrenceID: occurrenceID,
		Candidates:   candidates,
	})
}

// confirmMatch godoc
// @Summary Manually confirm a match
// @Description Links a reviewed transaction to the occurrence of an obligation due on a given date
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   request body dto.ConfirmMatchRequest true "Pair to link"
// @Success 201 {object} dto.LinkResponse
// @Failure 400 {object} map[string]string "Invalid input or pending transaction"
// @Failure 404 {object} map[string]string "Obligation or transaction not found"
// @Failure 409 {object} map[string]string "Transaction or occurrence already linked"
// @Failure 500 {object} map[string]string "Failed to confirm match"
// @Router /reconciliation/links [post]
func (h *reconciliationHandler) confirmMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	link, err := h.reconciliationService.ConfirmMatch(c.Request.Context(), req.ObligationID, req.DueDate, req.TransactionID, defaultUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to confirm match")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLinkResponse(link))
}

// unlink godoc
// @Summary Remove a link
// @Description Unlinks an occurrence from its transaction, returning both to the unmatched pool
// @Tags reconciliation
// @Produce  json
// @Param   occurrenceID path string true "Occurrence ID"
// @Success 204 "Unlinked"
// @Failure 404 {object} map[string]string "Link not found"
// @Failure 500 {object} map[string]string "Failed to remove link"
// @Router /reconciliation/links/{occurrenceID} [delete]
func (h *reconciliationHandler) unlink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	occurrenceID := c.Param("occurrenceID")

	if err := h.reconciliationService.Unlink(c.Request.Context(), occurrenceID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove link")
		return
	}

	c.Status(http.StatusNoContent)
}
