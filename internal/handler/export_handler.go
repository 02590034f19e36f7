package handler

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/padidar/visitor-analytics-go/internal/report"
	"github.com/padidar/visitor-analytics-go/internal/service"
	"github.com/padidar/visitor-analytics-go/pkg/response"
)

// ExportHandler serializes report exports. The row contract lives in the
// report package; this layer only renders it.
type ExportHandler struct {
	reports *service.ReportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(reports *service.ReportService) *ExportHandler {
	return &ExportHandler{reports: reports}
}

// ExportRows handles GET /api/v1/reports/export
func (h *ExportHandler) ExportRows(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.reports.ExportRows(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"columns": report.ExportColumns,
		"rows":    rows,
		"count":   len(rows),
	})
}

// ExportCSV handles GET /api/v1/reports/export.csv. The header row is
// written even when no records match.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.reports.ExportRows(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("visits-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	if err := w.Write(report.ExportColumns); err != nil {
		return
	}
	for _, row := range rows {
		if err := w.Write(report.RowStrings(row)); err != nil {
			return
		}
	}
	w.Flush()
}
