package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/padidar/visitor-analytics-go/internal/service"
	"github.com/padidar/visitor-analytics-go/pkg/response"
)

// CatalogHandler serves the reference lists
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCounters handles GET /api/v1/counters
func (h *CatalogHandler) ListCounters(c *gin.Context) {
	counters, err := h.catalog.ListCounters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, counters)
}

// ListCameras handles GET /api/v1/cameras
func (h *CatalogHandler) ListCameras(c *gin.Context) {
	cameras, err := h.catalog.ListCameras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, cameras)
}

// ListROIs handles GET /api/v1/rois
func (h *CatalogHandler) ListROIs(c *gin.Context) {
	rois, err := h.catalog.ListROIs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, rois)
}

// ListEvents handles GET /api/v1/events
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	events, err := h.catalog.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, events)
}
