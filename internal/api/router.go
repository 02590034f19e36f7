package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/padidar/visitor-analytics-go/internal/config"
	"github.com/padidar/visitor-analytics-go/internal/handler"
	"github.com/padidar/visitor-analytics-go/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Reports *handler.ReportHandler
	Export  *handler.ExportHandler
	Catalog *handler.CatalogHandler
	Auth    *handler.AuthHandler
}

// SetupRouter wires middleware and routes. Everything under /api/v1 except
// login requires a bearer token; health and metrics are open.
func SetupRouter(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Visitor Analytics API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(10, time.Minute))
	{
		auth.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(cfg.Auth.JWTSecret))
	{
		reports := protected.Group("/reports")
		{
			reports.GET("/rank", h.Reports.RankZones)
			reports.GET("/rank/today", h.Reports.RankZonesToday)
			reports.GET("/rank/today/slots", h.Reports.RankZonesPerSlot)
			reports.GET("/rank/today/best-slot", h.Reports.BestSlot)
			reports.GET("/demographics/age", h.Reports.DemographicsByAge)
			reports.GET("/demographics/gender", h.Reports.DemographicsByGender)
			reports.GET("/totals", h.Reports.Totals)
			reports.GET("/durations/distribution", h.Reports.DwellDistribution)
			reports.GET("/zones/counts", h.Reports.PerZoneCounts)
			reports.GET("/zones/durations", h.Reports.PerZoneDurations)
			reports.GET("/zones/:id/detail", h.Reports.ZoneDetail)
			reports.GET("/export", h.Export.ExportRows)
			reports.GET("/export.csv", h.Export.ExportCSV)
		}

		protected.GET("/visits", h.Reports.ListVisits)
		protected.GET("/counters", h.Catalog.ListCounters)
		protected.GET("/cameras", h.Catalog.ListCameras)
		protected.GET("/rois", h.Catalog.ListROIs)
		protected.GET("/events", h.Catalog.ListEvents)
	}

	return r
}
