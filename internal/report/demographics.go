package report

import (
	"context"
	"sort"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// DemographicsByAge counts visits per zone and age bracket between two dates.
// The range start time-of-day comes from the policy's RangeStartHour; the end
// date is taken through its last second. Every zone present in the range gets
// all four brackets, absent ones at zero. Zones with no records in range are
// omitted entirely — unlike slot rankings, which always emit every slot.
func (e *Engine) DemographicsByAge(ctx context.Context, startDate, endDate time.Time) ([]models.DemographicResult, error) {
	records, err := e.store.Query(ctx, e.rangeWindow(startDate, endDate))
	if err != nil {
		return nil, err
	}

	byZone := make(map[int]map[string]int)
	for _, r := range records {
		counts, ok := byZone[r.CounterID]
		if !ok {
			counts = make(map[string]int, len(models.AgeGroups))
			for _, g := range models.AgeGroups {
				counts[string(g)] = 0
			}
			byZone[r.CounterID] = counts
		}
		counts[string(r.AgeGroup)]++
	}

	results := make([]models.DemographicResult, 0, len(byZone))
	for id, counts := range byZone {
		results = append(results, models.DemographicResult{CounterID: id, AgeGroups: counts})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CounterID < results[j].CounterID })
	return results, nil
}

// DemographicsByGender is the gender counterpart of DemographicsByAge.
func (e *Engine) DemographicsByGender(ctx context.Context, startDate, endDate time.Time) ([]models.DemographicResult, error) {
	records, err := e.store.Query(ctx, e.rangeWindow(startDate, endDate))
	if err != nil {
		return nil, err
	}

	byZone := make(map[int]map[string]int)
	for _, r := range records {
		counts, ok := byZone[r.CounterID]
		if !ok {
			counts = make(map[string]int, len(models.Genders))
			for _, g := range models.Genders {
				counts[string(g)] = 0
			}
			byZone[r.CounterID] = counts
		}
		counts[string(r.Gender)]++
	}

	results := make([]models.DemographicResult, 0, len(byZone))
	for id, counts := range byZone {
		results = append(results, models.DemographicResult{CounterID: id, Genders: counts})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CounterID < results[j].CounterID })
	return results, nil
}

// rangeWindow expands two calendar dates into the demographic query window.
func (e *Engine) rangeWindow(startDate, endDate time.Time) models.ReportWindow {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(),
		e.policy.RangeStartHour, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(),
		23, 59, 59, 0, endDate.Location())
	return models.ReportWindow{Start: start, End: end}
}
