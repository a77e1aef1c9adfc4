package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expenses/internal/errors"
	"expenses/internal/services"
)

// RestoreHandler handles legacy backup restore requests.
type RestoreHandler struct {
	restoreService services.RestoreServicer
}

// NewRestoreHandler creates a new RestoreHandler.
func NewRestoreHandler(restoreService services.RestoreServicer) *RestoreHandler {
	return &RestoreHandler{restoreService: restoreService}
}

// StartImportRequest represents the request payload for starting an import.
type StartImportRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// StartFinancistoImport starts a background import of a Financisto backup
// file. The existing database contents are replaced. Returns 202 with the
// job; poll GetJob for the terminal outcome.
func (h *RestoreHandler) StartFinancistoImport(c *gin.Context) {
	var req StartImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	job, err := h.restoreService.StartImport(req.FilePath)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

// GetJob returns the state of a restore job.
func (h *RestoreHandler) GetJob(c *gin.Context) {
	job, err := h.restoreService.GetJob(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// FixIntegrity recomputes account balances and last-transaction timestamps
// from the transaction history.
func (h *RestoreHandler) FixIntegrity(c *gin.Context) {
	if err := h.restoreService.FixIntegrity(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
