package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HistoryHandler exposes the session calculation history.
type HistoryHandler struct {
	common *CommonServices
}

// NewHistoryHandler creates a handler with interface dependencies
func NewHistoryHandler(common *CommonServices) *HistoryHandler {
	return &HistoryHandler{common: common}
}

// ListHistory returns the retained calculation records
// @Summary List calculation history
// @Description Returns the session's calculation records, newest first
// @Tags history
// @Produce json
// @Success 200 {object} responses.HistoryResponse
// @Router /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	sendList(c, h.common.HistoryService.List())
}

// ExportHistory downloads the history as CSV
// @Summary Export calculation history
// @Description Streams the session history as a CSV attachment, newest first
// @Tags history
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /history/export [get]
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	data, err := h.common.HistoryService.ExportCSV()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to export history", err)
		return
	}

	filename := fmt.Sprintf("salary-calculations-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ClearHistory drops every retained record
// @Summary Clear calculation history
// @Description Removes all calculation records from the session
// @Tags history
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /history [delete]
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	h.common.HistoryService.Clear()
	sendSuccessMessage(c, http.StatusOK, "History cleared")
}
