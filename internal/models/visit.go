package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the storage format for visit timestamps. Timestamps are naive
// local date-times; the perception pipeline reports wall-clock time at the site.
const TimeLayout = "2006-01-02 15:04:05"

// AgeGroup is the closed set of age brackets a detection can carry.
type AgeGroup string

const (
	AgeTeenager AgeGroup = "teenager"
	AgeYoung    AgeGroup = "young"
	AgeAdult    AgeGroup = "adult"
	AgeSenior   AgeGroup = "senior"
)

// AgeGroups lists all brackets in canonical order. Aggregations emit one entry
// per bracket in this order, and ties between brackets resolve to the earlier one.
var AgeGroups = []AgeGroup{AgeTeenager, AgeYoung, AgeAdult, AgeSenior}

// legacyAgeCodes maps the numeric codes used by early pipeline builds, which
// stored age as an enum index instead of a bracket name.
var legacyAgeCodes = map[string]AgeGroup{
	"0": AgeTeenager,
	"1": AgeAdult,
	"2": AgeSenior,
}

// ParseAgeGroup normalizes a stored age bracket value. It accepts canonical
// bracket names (case-insensitive) and legacy numeric codes. Anything else is
// an error; unknown values must never be grouped under a default bracket.
func ParseAgeGroup(s string) (AgeGroup, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch AgeGroup(v) {
	case AgeTeenager, AgeYoung, AgeAdult, AgeSenior:
		return AgeGroup(v), nil
	}
	if g, ok := legacyAgeCodes[v]; ok {
		return g, nil
	}
	return "", fmt.Errorf("unknown age group %q", s)
}

// StorageValues returns every representation of the bracket that may appear
// in stored rows: the canonical name plus any legacy numeric code. Store
// filters must match all of them, or legacy rows would count in unfiltered
// aggregations while vanishing from filtered ones.
func (g AgeGroup) StorageValues() []string {
	values := []string{string(g)}
	for code, bracket := range legacyAgeCodes {
		if bracket == g {
			values = append(values, code)
		}
	}
	return values
}

// Gender is the closed set of gender values a detection can carry.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists both values in canonical order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender normalizes a stored gender value.
func ParseGender(s string) (Gender, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch Gender(v) {
	case GenderMale, GenderFemale:
		return Gender(v), nil
	case "m":
		return GenderMale, nil
	case "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// StorageValues returns every stored representation of the gender: the
// canonical name plus the single-letter form early pipeline builds wrote.
func (g Gender) StorageValues() []string {
	switch g {
	case GenderMale:
		return []string{string(GenderMale), "m"}
	case GenderFemale:
		return []string{string(GenderFemale), "f"}
	}
	return []string{string(g)}
}

// VisitRecord is one observation of a person dwelling inside a region of
// interest. Records are append-only: the pipeline creates them at detection
// time and nothing updates them afterwards.
type VisitRecord struct {
	ID              int64     `json:"id" db:"id"`
	PersonID        int       `json:"person_id" db:"person_id"`
	ROIID           int       `json:"roi_id" db:"roi_id"`
	CounterID       int       `json:"counter_id" db:"counter_id"`
	CamID           int       `json:"cam_id" db:"cam_id"`
	DurationSeconds int64     `json:"duration_seconds" db:"duration_seconds"`
	AgeGroup        AgeGroup  `json:"age_group" db:"age_group"`
	Gender          Gender    `json:"gender" db:"gender"`
	VisitTime       time.Time `json:"visit_time" db:"visit_time"`
	EventID         *int      `json:"event_id,omitempty" db:"event_id"`
}

// ReportWindow is the per-request filter passed down to the visit store.
// A zero Start or End leaves that side of the time range unbounded; both
// bounds are inclusive. Nil pointer filters are absent.
type ReportWindow struct {
	Start   time.Time
	End     time.Time
	Counter *int
	Cam     *int
	Age     *AgeGroup
	Gender  *Gender
	Event   *int
}

// Matches reports whether a record falls inside the window. The repository
// applies the same predicate in SQL; this form exists for in-memory bucketing
// and for test doubles.
func (w ReportWindow) Matches(r VisitRecord) bool {
	if !w.Start.IsZero() && r.VisitTime.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && r.VisitTime.After(w.End) {
		return false
	}
	if w.Counter != nil && r.CounterID != *w.Counter {
		return false
	}
	if w.Cam != nil && r.CamID != *w.Cam {
		return false
	}
	if w.Age != nil && r.AgeGroup != *w.Age {
		return false
	}
	if w.Gender != nil && r.Gender != *w.Gender {
		return false
	}
	if w.Event != nil && (r.EventID == nil || *r.EventID != *w.Event) {
		return false
	}
	return true
}
