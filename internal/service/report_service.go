package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
	"github.com/padidar/visitor-analytics-go/internal/repository"
)

// ReportService fronts the aggregation engine for the HTTP layer. Each call
// gets its own deadline-scoped context; a timed-out store query surfaces as a
// retryable store failure, never as an empty result.
type ReportService struct {
	engine  *report.Engine
	visits  *repository.VisitRepository
	catalog *repository.CatalogRepository
	timeout time.Duration
	logger  *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(engine *report.Engine, visits *repository.VisitRepository,
	catalog *repository.CatalogRepository, timeout time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		engine:  engine,
		visits:  visits,
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *ReportService) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// RankZones ranks zones over an arbitrary window.
func (s *ReportService) RankZones(ctx context.Context, window models.ReportWindow, dir report.Direction) (models.RankedResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.RankZones(ctx, window, dir)
}

// RankZonesForLatestDay ranks zones over the latest day in the store.
func (s *ReportService) RankZonesForLatestDay(ctx context.Context, dir report.Direction) (models.RankedResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.RankZonesForLatestDay(ctx, dir)
}

// RankZonesPerSlot ranks zones per operating-hour slot of the latest day.
func (s *ReportService) RankZonesPerSlot(ctx context.Context, dir report.Direction) ([]models.RankedResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.RankZonesPerSlotForLatestDay(ctx, dir)
}

// BestSlotAcrossDay returns the extremal slot/zone pair of the latest day.
func (s *ReportService) BestSlotAcrossDay(ctx context.Context, dir report.Direction) (models.RankedResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.BestSlotAcrossDay(ctx, dir)
}

// DemographicsByAge aggregates age bracket counts per zone for a date range.
func (s *ReportService) DemographicsByAge(ctx context.Context, startDate, endDate time.Time) ([]models.DemographicResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.DemographicsByAge(ctx, startDate, endDate)
}

// DemographicsByGender aggregates gender counts per zone for a date range.
func (s *ReportService) DemographicsByGender(ctx context.Context, startDate, endDate time.Time) ([]models.DemographicResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.DemographicsByGender(ctx, startDate, endDate)
}

// Totals returns window-wide count and duration totals.
func (s *ReportService) Totals(ctx context.Context, window models.ReportWindow) (models.TotalsResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.Totals(ctx, window)
}

// PerZoneCounts returns per-zone visit counts.
func (s *ReportService) PerZoneCounts(ctx context.Context, window models.ReportWindow) ([]models.CountResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.PerZoneCounts(ctx, window)
}

// PerZoneDurations returns per-zone dwell duration sums.
func (s *ReportService) PerZoneDurations(ctx context.Context, window models.ReportWindow) ([]models.CountResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.PerZoneDurations(ctx, window)
}

// DwellDistribution summarizes dwell durations in a window.
func (s *ReportService) DwellDistribution(ctx context.Context, window models.ReportWindow) (models.DistributionResult, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.engine.DwellDistribution(ctx, window)
}

// ZoneDetail composes the single-zone summary. A zone with no records is
// only an error when the zone itself is unknown to the catalog; a known zone
// that nobody visited yet reports its explicit zero state.
func (s *ReportService) ZoneDetail(ctx context.Context, counterID int) (models.ZoneDetail, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	detail, err := s.engine.ZoneDetail(ctx, counterID)
	if err != nil {
		return models.ZoneDetail{}, err
	}
	if detail.TotalVisits == 0 {
		if _, err := s.catalog.GetCounter(ctx, counterID); err != nil {
			if errors.Is(err, report.ErrNoData) {
				s.logger.Debug("zone detail for unknown counter", zap.Int("counter_id", counterID))
			}
			return models.ZoneDetail{}, err
		}
	}
	return detail, nil
}

// ExportRows flattens the filtered record set into export rows, joined with
// grouping-event display names.
func (s *ReportService) ExportRows(ctx context.Context, window models.ReportWindow) ([]models.ExportRow, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	names, err := s.catalog.EventNames(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.ExportRows(ctx, window, names)
}

// ListVisits returns the raw filtered records.
func (s *ReportService) ListVisits(ctx context.Context, window models.ReportWindow) ([]models.VisitRecord, error) {
	ctx, cancel := s.scoped(ctx)
	defer cancel()
	return s.visits.Query(ctx, window)
}
