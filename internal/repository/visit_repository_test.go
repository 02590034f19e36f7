package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/padidar/visitor-analytics-go/internal/database"
	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// In-memory databases vanish per connection, so pin the pool to one.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testVisit(t *testing.T, counter int, ts string) models.VisitRecord {
	t.Helper()
	parsed, err := time.ParseInLocation(models.TimeLayout, ts, time.Local)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", ts, err)
	}
	return models.VisitRecord{
		PersonID:        1,
		ROIID:           1,
		CounterID:       counter,
		CamID:           1,
		DurationSeconds: 60,
		AgeGroup:        models.AgeAdult,
		Gender:          models.GenderMale,
		VisitTime:       parsed,
	}
}

func TestVisitRepositoryInsertAndQuery(t *testing.T) {
	repo := NewVisitRepository(newTestDB(t))
	ctx := context.Background()

	ev := 7
	rec := testVisit(t, 1, "2024-09-19 10:00:00")
	rec.EventID = &ev

	id, err := repo.Insert(ctx, rec)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id <= 0 {
		t.Fatalf("want positive id, got %d", id)
	}

	got, err := repo.Query(ctx, models.ReportWindow{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 record, got %d", len(got))
	}
	r := got[0]
	if r.CounterID != 1 || r.AgeGroup != models.AgeAdult || r.Gender != models.GenderMale {
		t.Errorf("round-tripped record = %+v", r)
	}
	if r.EventID == nil || *r.EventID != 7 {
		t.Errorf("event id = %v, want 7", r.EventID)
	}
	if !r.VisitTime.Equal(rec.VisitTime) {
		t.Errorf("visit time = %v, want %v", r.VisitTime, rec.VisitTime)
	}
}

func TestVisitRepositoryQueryFilters(t *testing.T) {
	repo := NewVisitRepository(newTestDB(t))
	ctx := context.Background()

	records := []models.VisitRecord{
		testVisit(t, 1, "2024-09-19 09:00:00"),
		testVisit(t, 2, "2024-09-19 10:00:00"),
		testVisit(t, 2, "2024-09-19 11:00:00"),
		testVisit(t, 3, "2024-09-20 09:00:00"),
	}
	if err := repo.InsertBatch(ctx, records); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	counter := 2
	got, err := repo.Query(ctx, models.ReportWindow{Counter: &counter})
	if err != nil {
		t.Fatalf("Query by counter: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("counter filter: want 2, got %d", len(got))
	}

	start, _ := time.ParseInLocation(models.TimeLayout, "2024-09-19 10:00:00", time.Local)
	end, _ := time.ParseInLocation(models.TimeLayout, "2024-09-19 11:00:00", time.Local)
	got, err = repo.Query(ctx, models.ReportWindow{Start: start, End: end})
	if err != nil {
		t.Fatalf("Query by window: %v", err)
	}
	// Both bounds inclusive.
	if len(got) != 2 {
		t.Errorf("time window: want 2, got %d", len(got))
	}

	got, err = repo.Query(ctx, models.ReportWindow{Start: start.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatalf("Query empty window: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("future window: want empty result, got %d", len(got))
	}
}

func TestVisitRepositoryQueryOrderIsStable(t *testing.T) {
	repo := NewVisitRepository(newTestDB(t))
	ctx := context.Background()

	// Insert out of time order plus two records at the same instant.
	for _, ts := range []string{
		"2024-09-19 12:00:00",
		"2024-09-19 09:00:00",
		"2024-09-19 12:00:00",
	} {
		if _, err := repo.Insert(ctx, testVisit(t, 1, ts)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	first, err := repo.Query(ctx, models.ReportWindow{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("want 3 records, got %d", len(first))
	}
	if !first[0].VisitTime.Before(first[1].VisitTime) {
		t.Error("records not ordered by visit time")
	}
	if first[1].ID >= first[2].ID {
		t.Error("same-instant records not ordered by insertion id")
	}

	second, err := repo.Query(ctx, models.ReportWindow{})
	if err != nil {
		t.Fatalf("Query again: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("query order changed between calls at position %d", i)
		}
	}
}

func TestVisitRepositoryLatestTimestamp(t *testing.T) {
	repo := NewVisitRepository(newTestDB(t))
	ctx := context.Background()

	_, ok, err := repo.LatestTimestamp(ctx)
	if err != nil {
		t.Fatalf("LatestTimestamp empty: %v", err)
	}
	if ok {
		t.Error("empty store must report ok=false")
	}

	if _, err := repo.Insert(ctx, testVisit(t, 1, "2024-09-19 10:00:00")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, testVisit(t, 1, "2024-09-20 08:30:00")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ts, ok, err := repo.LatestTimestamp(ctx)
	if err != nil {
		t.Fatalf("LatestTimestamp: %v", err)
	}
	if !ok {
		t.Fatal("want ok=true")
	}
	if ts.Format(models.TimeLayout) != "2024-09-20 08:30:00" {
		t.Errorf("latest = %v", ts)
	}
}

func TestVisitRepositoryFiltersMatchLegacyCodes(t *testing.T) {
	// Early pipeline builds stored the bracket as a numeric code and gender
	// as a single letter. Such rows normalize on read, so they must also be
	// reachable through the categorical filters; otherwise a filtered count
	// silently undercounts while the unfiltered one does not.
	db := newTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO tbl_visits (person_id, roi_id, counter_id, cam_id,
			duration_seconds, age_group, gender, visit_time)
		VALUES (1, 1, 1, 1, 60, '1', 'm', '2024-09-19 10:00:00'),
		       (2, 1, 1, 1, 60, 'adult', 'male', '2024-09-19 11:00:00'),
		       (3, 1, 1, 1, 60, '0', 'f', '2024-09-19 12:00:00')
	`)
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	all, err := repo.Query(ctx, models.ReportWindow{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered: want 3 rows, got %d", len(all))
	}

	adult := models.AgeAdult
	got, err := repo.Query(ctx, models.ReportWindow{Age: &adult})
	if err != nil {
		t.Fatalf("Query by age: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("adult filter: want 2 rows (legacy '1' and canonical), got %d", len(got))
	}
	for _, r := range got {
		if r.AgeGroup != models.AgeAdult {
			t.Errorf("filtered row normalized to %q", r.AgeGroup)
		}
	}

	male := models.GenderMale
	got, err = repo.Query(ctx, models.ReportWindow{Gender: &male})
	if err != nil {
		t.Fatalf("Query by gender: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("male filter: want 2 rows (legacy 'm' and canonical), got %d", len(got))
	}

	teen := models.AgeTeenager
	female := models.GenderFemale
	got, err = repo.Query(ctx, models.ReportWindow{Age: &teen, Gender: &female})
	if err != nil {
		t.Fatalf("Query by age and gender: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("combined filter: want the legacy '0'/'f' row, got %d rows", len(got))
	}
}

func TestVisitRepositoryRejectsCorruptCategoricals(t *testing.T) {
	db := newTestDB(t)
	repo := NewVisitRepository(db)
	ctx := context.Background()

	// Bypass the repository to simulate a row written by a buggy producer.
	_, err := db.Exec(`
		INSERT INTO tbl_visits (person_id, roi_id, counter_id, cam_id,
			duration_seconds, age_group, gender, visit_time)
		VALUES (1, 1, 1, 1, 60, 'toddler', 'male', '2024-09-19 10:00:00')
	`)
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	_, err = repo.Query(ctx, models.ReportWindow{})
	if !errors.Is(err, report.ErrValidation) {
		t.Errorf("want ErrValidation for unknown age group, got %v", err)
	}
}
