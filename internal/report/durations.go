package report

import (
	"context"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// Totals sums the window: visit count, total dwell seconds, and the zero-
// guarded two-decimal average. A window matching nothing is a populated zero,
// not an error; totals are a bulk operation.
func (e *Engine) Totals(ctx context.Context, window models.ReportWindow) (models.TotalsResult, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return models.TotalsResult{}, err
	}

	var total int64
	for _, r := range records {
		total += r.DurationSeconds
	}
	return models.TotalsResult{
		Count:           len(records),
		TotalDuration:   total,
		AverageDuration: averageDuration(total, len(records)),
	}, nil
}

// PerZoneCounts returns one row per zone with its visit count, ordered by
// counter id. Empty window, empty list.
func (e *Engine) PerZoneCounts(ctx context.Context, window models.ReportWindow) ([]models.CountResult, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return nil, err
	}

	aggs := aggregateByZone(records)
	results := make([]models.CountResult, 0, len(aggs))
	for _, a := range aggs {
		results = append(results, models.CountResult{CounterID: a.counterID, Value: int64(a.count)})
	}
	return results, nil
}

// PerZoneDurations returns one row per zone with its summed dwell seconds,
// ordered by counter id.
func (e *Engine) PerZoneDurations(ctx context.Context, window models.ReportWindow) ([]models.CountResult, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return nil, err
	}

	aggs := aggregateByZone(records)
	results := make([]models.CountResult, 0, len(aggs))
	for _, a := range aggs {
		results = append(results, models.CountResult{CounterID: a.counterID, Value: a.totalDuration})
	}
	return results, nil
}
