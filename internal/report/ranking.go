package report

import (
	"context"
	"fmt"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// RankZones returns the extremal zone over an arbitrary window with no date
// anchoring. ErrNoData when nothing matches: a singular ranking over an empty
// window has no zone to report.
func (e *Engine) RankZones(ctx context.Context, window models.ReportWindow, dir Direction) (models.RankedResult, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return models.RankedResult{}, err
	}
	aggs := aggregateByZone(records)
	if len(aggs) == 0 {
		return models.RankedResult{}, fmt.Errorf("%w: no visits in window", ErrNoData)
	}
	best := extremalZone(aggs, dir)
	return models.RankedResult{
		CounterID:       best.counterID,
		Count:           best.count,
		AverageDuration: averageDuration(best.totalDuration, best.count),
	}, nil
}

// RankZonesForLatestDay ranks zones over the whole calendar day of the most
// recent record in the store.
func (e *Engine) RankZonesForLatestDay(ctx context.Context, dir Direction) (models.RankedResult, error) {
	day, err := e.latestDay(ctx)
	if err != nil {
		return models.RankedResult{}, err
	}
	window := models.ReportWindow{
		Start: day,
		End:   day.AddDate(0, 0, 1).Add(-time.Second),
	}
	return e.RankZones(ctx, window, dir)
}

// RankZonesPerSlotForLatestDay ranks zones independently inside each
// operating-hour slot of the latest day. Every slot yields exactly one
// result; slots without records are marked NoVisitors instead of omitted so
// callers always see one entry per slot. Records outside operating hours are
// excluded because they fall in no slot.
func (e *Engine) RankZonesPerSlotForLatestDay(ctx context.Context, dir Direction) ([]models.RankedResult, error) {
	day, err := e.latestDay(ctx)
	if err != nil {
		return nil, err
	}
	slots := GenerateSlots(day, e.policy)
	if len(slots) == 0 {
		return nil, nil
	}

	// One query spanning the operating hours, bucketed in memory. The query
	// end is pulled one second inside the last slot's exclusive bound.
	window := models.ReportWindow{
		Start: slots[0].Start,
		End:   slots[len(slots)-1].End.Add(-time.Second),
	}
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return nil, err
	}

	results := make([]models.RankedResult, 0, len(slots))
	for i := range slots {
		slot := slots[i]
		var inSlot []models.VisitRecord
		for _, r := range records {
			if slot.Contains(r.VisitTime) {
				inSlot = append(inSlot, r)
			}
		}
		aggs := aggregateByZone(inSlot)
		if len(aggs) == 0 {
			results = append(results, models.RankedResult{NoVisitors: true, Slot: &slot})
			continue
		}
		best := extremalZone(aggs, dir)
		results = append(results, models.RankedResult{
			CounterID:       best.counterID,
			Count:           best.count,
			AverageDuration: averageDuration(best.totalDuration, best.count),
			Slot:            &slot,
		})
	}
	return results, nil
}

// BestSlotAcrossDay picks the single slot/zone pair with the extremal count
// across all slots of the latest day. This is the extreme of the per-slot
// extrema, not a re-aggregation across slots. Ties resolve by count, then
// lowest counter id, then earliest slot.
func (e *Engine) BestSlotAcrossDay(ctx context.Context, dir Direction) (models.RankedResult, error) {
	perSlot, err := e.RankZonesPerSlotForLatestDay(ctx, dir)
	if err != nil {
		return models.RankedResult{}, err
	}

	var best *models.RankedResult
	for i := range perSlot {
		r := &perSlot[i]
		if r.NoVisitors {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		if dir == DirectionMost && r.Count > best.Count {
			best = r
		}
		if dir == DirectionLeast && r.Count < best.Count {
			best = r
		}
		if r.Count == best.Count && r.CounterID < best.CounterID {
			best = r
		}
	}
	if best == nil {
		return models.RankedResult{}, fmt.Errorf("%w: no visits in any slot", ErrNoData)
	}
	return *best, nil
}

// latestDay resolves the calendar date of the most recent record.
func (e *Engine) latestDay(ctx context.Context) (time.Time, error) {
	ts, ok, err := e.store.LatestTimestamp(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: store holds no records", ErrNoData)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()), nil
}
