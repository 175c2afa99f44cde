package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/service"
)

// maxImportBytes bounds the size of an uploaded snapshot.
const maxImportBytes = 16 << 20

// TransferHandler serves export, import, clear-all and backups.
type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Export downloads the full-state snapshot as a JSON attachment.
func (h *TransferHandler) Export(c *gin.Context) {
	snapshot := h.transferService.Export(c.Request.Context())
	filename := fmt.Sprintf("coachos-export-%s.json", snapshot.ExportDate.Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, snapshot)
}

// Import godoc
// @Summary Restore a snapshot
// @Description Applies history/activeCycle, equipment and benchmarks when present.
// @Tags Transfer
// @Accept json
// @Produce json
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} gin.H "Malformed snapshot"
// @Failure 413 {object} gin.H "Snapshot too large"
// @Router /transfer/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, "Snapshot too large")
			return
		}
		abortWithError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	result, err := h.transferService.Import(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Backup uploads the snapshot to object storage.
func (h *TransferHandler) Backup(c *gin.Context) {
	backup, err := h.transferService.Backup(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, backup)
}

// ClearAll wipes every slot. Requires ?confirm=true.
func (h *TransferHandler) ClearAll(c *gin.Context) {
	if err := h.transferService.ClearAll(c.Request.Context(), confirmed(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
