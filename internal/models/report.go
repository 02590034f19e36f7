package models

import "time"

// TimeSlot is a half-open [Start, End) interval inside one day's operating
// hours. Slots are generated, never persisted.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the slot. The end bound is
// exclusive so adjacent slots never double-count a record.
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// CountResult is one per-zone row of a grouped aggregation. Value is a visit
// count or a duration sum in seconds depending on the operation.
type CountResult struct {
	CounterID int   `json:"counter_id"`
	Value     int64 `json:"value"`
}

// RankedResult is the outcome of ranking zones inside a window. When the
// result is slot-scoped, Slot identifies the interval it was computed for.
// NoVisitors marks a slot that matched no records; such slots are emitted
// anyway so per-slot output keeps a stable shape.
type RankedResult struct {
	CounterID       int       `json:"counter_id"`
	Count           int       `json:"count"`
	AverageDuration float64   `json:"average_duration"`
	NoVisitors      bool      `json:"no_visitors,omitempty"`
	Slot            *TimeSlot `json:"slot,omitempty"`
}

// DemographicResult carries per-zone category counts for a date range.
// Exactly one of AgeGroups or Genders is populated. Every category of the
// populated dimension is present, absent ones at zero.
type DemographicResult struct {
	CounterID int            `json:"counter_id"`
	AgeGroups map[string]int `json:"age_groups,omitempty"`
	Genders   map[string]int `json:"genders,omitempty"`
}

// TotalsResult is the window-wide visit count and duration summary.
type TotalsResult struct {
	Count           int     `json:"count"`
	TotalDuration   int64   `json:"total_duration_seconds"`
	AverageDuration float64 `json:"average_duration"`
}

// ZoneDetail is the composed multi-metric summary for a single counting zone.
// When the zone has no records every field holds its explicit zero state; the
// timestamps are empty strings rather than a fabricated time.
type ZoneDetail struct {
	CounterID            int     `json:"counter_id"`
	TotalVisits          int     `json:"total_visits"`
	MostVisitedAt        string  `json:"most_visited_at,omitempty"`
	LeastVisitedAt       string  `json:"least_visited_at,omitempty"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	DominantAgeGroup     string  `json:"dominant_age_group,omitempty"`
}

// DistributionResult describes the shape of dwell durations in a window.
// All values are seconds, rounded to two decimals. A window matching nothing
// is a populated zero.
type DistributionResult struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min_seconds"`
	P25    float64 `json:"p25_seconds"`
	Median float64 `json:"median_seconds"`
	P75    float64 `json:"p75_seconds"`
	Max    float64 `json:"max_seconds"`
	Mean   float64 `json:"mean_seconds"`
	StdDev float64 `json:"stddev_seconds"`
}

// ExportRow is one flattened record of a tabular export, numbered from 1 in
// input order. EventName is empty when the record carries no grouping event.
type ExportRow struct {
	Seq             int    `json:"seq"`
	CounterID       int    `json:"counter_id"`
	CamID           int    `json:"cam_id"`
	PersonID        int    `json:"person_id"`
	DurationSeconds int64  `json:"duration_seconds"`
	Gender          string `json:"gender"`
	AgeGroup        string `json:"age_group"`
	ROIID           int    `json:"roi_id"`
	VisitTime       string `json:"visit_time"`
	EventName       string `json:"event_name,omitempty"`
}
