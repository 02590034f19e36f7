package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/repository"
	"github.com/padidar/visitor-analytics-go/internal/spatial"
)

// CatalogService serves the reference lists: counters, cameras, ROIs, and
// grouping events.
type CatalogService struct {
	catalog *repository.CatalogRepository
	timeout time.Duration
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *repository.CatalogRepository, timeout time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, timeout: timeout, logger: logger}
}

// ListCounters returns all counting zones.
func (s *CatalogService) ListCounters(ctx context.Context) ([]models.Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.catalog.ListCounters(ctx)
}

// ListCameras returns all cameras.
func (s *CatalogService) ListCameras(ctx context.Context) ([]models.Camera, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.catalog.ListCameras(ctx)
}

// ListROIs returns all regions of interest, each annotated with its pixel
// area when its coordinate text parses. Unparseable coordinates are logged
// and passed through with a zero area; the raw text stays available.
func (s *CatalogService) ListROIs(ctx context.Context) ([]models.ROI, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rois, err := s.catalog.ListROIs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rois {
		rect, err := spatial.ParseRegionRect(rois[i].Coordinates)
		if err != nil {
			s.logger.Warn("unparseable roi coordinates",
				zap.Int("roi_id", rois[i].ROIID), zap.Error(err))
			continue
		}
		rois[i].Area = spatial.RectArea(rect)
	}
	return rois, nil
}

// ListEvents returns all grouping events.
func (s *CatalogService) ListEvents(ctx context.Context) ([]models.GroupEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.catalog.ListEvents(ctx)
}
