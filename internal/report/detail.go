package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// ZoneDetail composes the multi-metric summary for one counting zone: total
// visits, the timestamps with the highest and lowest co-occurring record
// counts, total dwell time in minutes, and the dominant age bracket. The
// counter id is validated before any store access. A zone with no records
// yields an explicit zero-valued detail and no error; whether that becomes a
// 404 is the boundary layer's call.
func (e *Engine) ZoneDetail(ctx context.Context, counterID int) (models.ZoneDetail, error) {
	if counterID <= 0 {
		return models.ZoneDetail{}, fmt.Errorf("%w: counter id must be positive, got %d", ErrValidation, counterID)
	}

	records, err := e.store.Query(ctx, models.ReportWindow{Counter: &counterID})
	if err != nil {
		return models.ZoneDetail{}, err
	}

	detail := models.ZoneDetail{CounterID: counterID, TotalVisits: len(records)}
	if len(records) == 0 {
		return detail, nil
	}

	var totalSeconds int64
	byTime := make(map[time.Time]int)
	byBracket := make(map[models.AgeGroup]int)
	for _, r := range records {
		totalSeconds += r.DurationSeconds
		byTime[r.VisitTime]++
		byBracket[r.AgeGroup]++
	}
	detail.TotalDurationMinutes = Round2(float64(totalSeconds) / 60)

	// Rank timestamps by group size; ties resolve to the earliest moment.
	times := make([]time.Time, 0, len(byTime))
	for t := range byTime {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	peak, trough := times[0], times[0]
	for _, t := range times[1:] {
		if byTime[t] > byTime[peak] {
			peak = t
		}
		if byTime[t] < byTime[trough] {
			trough = t
		}
	}
	detail.MostVisitedAt = peak.Format(models.TimeLayout)
	detail.LeastVisitedAt = trough.Format(models.TimeLayout)

	// Dominant bracket; ties resolve to the earlier bracket in canonical order.
	dominant := models.AgeGroups[0]
	for _, g := range models.AgeGroups[1:] {
		if byBracket[g] > byBracket[dominant] {
			dominant = g
		}
	}
	detail.DominantAgeGroup = string(dominant)

	return detail, nil
}
