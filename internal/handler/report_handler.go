package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
	"github.com/padidar/visitor-analytics-go/internal/service"
	"github.com/padidar/visitor-analytics-go/pkg/response"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ReportHandler handles HTTP requests for aggregation reports
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RankZones handles GET /api/v1/reports/rank
func (h *ReportHandler) RankZones(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}
	dir, err := report.ParseDirection(c.DefaultQuery("direction", string(report.DirectionMost)))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.RankZones(c.Request.Context(), window, dir)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// RankZonesToday handles GET /api/v1/reports/rank/today
func (h *ReportHandler) RankZonesToday(c *gin.Context) {
	dir, err := report.ParseDirection(c.DefaultQuery("direction", string(report.DirectionMost)))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.RankZonesForLatestDay(c.Request.Context(), dir)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// RankZonesPerSlot handles GET /api/v1/reports/rank/today/slots
func (h *ReportHandler) RankZonesPerSlot(c *gin.Context) {
	dir, err := report.ParseDirection(c.DefaultQuery("direction", string(report.DirectionMost)))
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.reports.RankZonesPerSlot(c.Request.Context(), dir)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"slots": results,
		"count": len(results),
	})
}

// BestSlot handles GET /api/v1/reports/rank/today/best-slot
func (h *ReportHandler) BestSlot(c *gin.Context) {
	dir, err := report.ParseDirection(c.DefaultQuery("direction", string(report.DirectionMost)))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.BestSlotAcrossDay(c.Request.Context(), dir)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// DemographicsByAge handles GET /api/v1/reports/demographics/age
func (h *ReportHandler) DemographicsByAge(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.reports.DemographicsByAge(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, results)
}

// DemographicsByGender handles GET /api/v1/reports/demographics/gender
func (h *ReportHandler) DemographicsByGender(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.reports.DemographicsByGender(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, results)
}

// Totals handles GET /api/v1/reports/totals
func (h *ReportHandler) Totals(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.Totals(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// DwellDistribution handles GET /api/v1/reports/durations/distribution
func (h *ReportHandler) DwellDistribution(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.DwellDistribution(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// PerZoneCounts handles GET /api/v1/reports/zones/counts
func (h *ReportHandler) PerZoneCounts(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.reports.PerZoneCounts(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, results)
}

// PerZoneDurations handles GET /api/v1/reports/zones/durations
func (h *ReportHandler) PerZoneDurations(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.reports.PerZoneDurations(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, results)
}

// ZoneDetail handles GET /api/v1/reports/zones/:id/detail
func (h *ReportHandler) ZoneDetail(c *gin.Context) {
	counterID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: counter id must be an integer", report.ErrValidation))
		return
	}

	detail, err := h.reports.ZoneDetail(c.Request.Context(), counterID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// ListVisits handles GET /api/v1/visits
func (h *ReportHandler) ListVisits(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, err)
		return
	}

	records, err := h.reports.ListVisits(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  records,
		"count": len(records),
	})
}

// parseWindow builds the record filter from query parameters. Date and time
// strings are validated strictly; any malformed value is a caller error.
func parseWindow(c *gin.Context) (models.ReportWindow, error) {
	var window models.ReportWindow

	if v := c.Query("start_date"); v != "" {
		start, err := parseDateTime(v, c.DefaultQuery("start_time", "00:00:00"))
		if err != nil {
			return window, err
		}
		window.Start = start
	}
	if v := c.Query("end_date"); v != "" {
		end, err := parseDateTime(v, c.DefaultQuery("end_time", "23:59:59"))
		if err != nil {
			return window, err
		}
		window.End = end
	}
	if !window.Start.IsZero() && !window.End.IsZero() && window.End.Before(window.Start) {
		return window, fmt.Errorf("%w: end must not be before start", report.ErrValidation)
	}

	if v := c.Query("counter_id"); v != "" {
		id, err := parsePositiveInt(v, "counter_id")
		if err != nil {
			return window, err
		}
		window.Counter = &id
	}
	if v := c.Query("cam_id"); v != "" {
		id, err := parsePositiveInt(v, "cam_id")
		if err != nil {
			return window, err
		}
		window.Cam = &id
	}
	if v := c.Query("event_id"); v != "" {
		id, err := parsePositiveInt(v, "event_id")
		if err != nil {
			return window, err
		}
		window.Event = &id
	}
	if v := c.Query("age_group"); v != "" {
		age, err := models.ParseAgeGroup(v)
		if err != nil {
			return window, fmt.Errorf("%w: %v", report.ErrValidation, err)
		}
		window.Age = &age
	}
	if v := c.Query("gender"); v != "" {
		gender, err := models.ParseGender(v)
		if err != nil {
			return window, fmt.Errorf("%w: %v", report.ErrValidation, err)
		}
		window.Gender = &gender
	}
	return window, nil
}

// parseDateRange reads the mandatory start_date/end_date pair used by the
// demographic endpoints.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date are required", report.ErrValidation)
	}

	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date %q", report.ErrValidation, startStr)
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date %q", report.ErrValidation, endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must not be before start_date", report.ErrValidation)
	}
	return start, end, nil
}

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, dateStr+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date/time %q %q", report.ErrValidation, dateStr, timeStr)
	}
	return t, nil
}

func parsePositiveInt(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", report.ErrValidation, name)
	}
	return v, nil
}

// respondError maps the core error taxonomy onto HTTP statuses: validation
// 400, no data 404, store unavailable 503 (retryable), anything else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, report.ErrNoData):
		response.NotFound(c, err.Error())
	case errors.Is(err, report.ErrStoreUnavailable):
		response.ServiceUnavailable(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
