package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// fakeStore serves canned records, filtering with the same window predicate
// the repository expresses in SQL.
type fakeStore struct {
	records []models.VisitRecord
	err     error
}

func (f *fakeStore) Query(_ context.Context, w models.ReportWindow) ([]models.VisitRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.VisitRecord
	for _, r := range f.records {
		if w.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) LatestTimestamp(_ context.Context) (time.Time, bool, error) {
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	if len(f.records) == 0 {
		return time.Time{}, false, nil
	}
	latest := f.records[0].VisitTime
	for _, r := range f.records[1:] {
		if r.VisitTime.After(latest) {
			latest = r.VisitTime
		}
	}
	return latest, true, nil
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

func visit(t *testing.T, counter int, ts string, duration int64) models.VisitRecord {
	t.Helper()
	return models.VisitRecord{
		PersonID:        1,
		ROIID:           1,
		CounterID:       counter,
		CamID:           1,
		DurationSeconds: duration,
		AgeGroup:        models.AgeAdult,
		Gender:          models.GenderMale,
		VisitTime:       mustTime(t, ts),
	}
}

func newTestEngine(t *testing.T, records ...models.VisitRecord) *Engine {
	t.Helper()
	e, err := NewEngine(&fakeStore{records: records}, DefaultPolicy())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{"zero slot width", Policy{DayStart: 8 * time.Hour, DayEnd: 22 * time.Hour, SlotWidth: 0, RangeStartHour: 8}},
		{"end before start", Policy{DayStart: 22 * time.Hour, DayEnd: 8 * time.Hour, SlotWidth: 30 * time.Minute, RangeStartHour: 8}},
		{"range hour out of bounds", Policy{DayStart: 8 * time.Hour, DayEnd: 22 * time.Hour, SlotWidth: 30 * time.Minute, RangeStartHour: 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(&fakeStore{}, tt.policy)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("most"); err != nil {
		t.Errorf("most: %v", err)
	}
	if _, err := ParseDirection("least"); err != nil {
		t.Errorf("least: %v", err)
	}
	if _, err := ParseDirection("busiest"); !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation for unknown direction, got %v", err)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{0, 0},
		{123.456, 123.46},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	e, err := NewEngine(&fakeStore{err: storeErr}, DefaultPolicy())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if _, err := e.Totals(context.Background(), models.ReportWindow{}); !errors.Is(err, storeErr) {
		t.Errorf("Totals: want store error surfaced, got %v", err)
	}
	if _, err := e.RankZonesForLatestDay(context.Background(), DirectionMost); !errors.Is(err, storeErr) {
		t.Errorf("RankZonesForLatestDay: want store error surfaced, got %v", err)
	}
}
