package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
)

// VisitRepository is the SQLite-backed visit store. It implements
// report.VisitStore for the aggregation core and exposes the append-only
// insert path used by ingestion. It never updates or deletes records.
type VisitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Query returns the records matching the window, ordered by visit time then
// insertion id so repeated calls over an unchanged store return identical
// sequences. An empty match is an empty result, never an error.
func (r *VisitRepository) Query(ctx context.Context, window models.ReportWindow) ([]models.VisitRecord, error) {
	query := `SELECT id, person_id, roi_id, counter_id, cam_id,
		duration_seconds, age_group, gender, visit_time, event_id
		FROM tbl_visits`

	var conditions []string
	var args []interface{}

	if !window.Start.IsZero() {
		conditions = append(conditions, "visit_time >= ?")
		args = append(args, window.Start.Format(models.TimeLayout))
	}
	if !window.End.IsZero() {
		conditions = append(conditions, "visit_time <= ?")
		args = append(args, window.End.Format(models.TimeLayout))
	}
	if window.Counter != nil {
		conditions = append(conditions, "counter_id = ?")
		args = append(args, *window.Counter)
	}
	if window.Cam != nil {
		conditions = append(conditions, "cam_id = ?")
		args = append(args, *window.Cam)
	}
	// Categorical filters match every stored spelling, legacy codes
	// included, so a filtered count never undercounts legacy rows.
	if window.Age != nil {
		cond, vals := inCondition("age_group", window.Age.StorageValues())
		conditions = append(conditions, cond)
		args = append(args, vals...)
	}
	if window.Gender != nil {
		cond, vals := inCondition("gender", window.Gender.StorageValues())
		conditions = append(conditions, cond)
		args = append(args, vals...)
	}
	if window.Event != nil {
		conditions = append(conditions, "event_id = ?")
		args = append(args, *window.Event)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY visit_time, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query visits: %v", report.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	records := make([]models.VisitRecord, 0)
	for rows.Next() {
		rec, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate visits: %v", report.ErrStoreUnavailable, err)
	}
	return records, nil
}

// LatestTimestamp returns the most recent visit time in the store, with
// ok=false when the store is empty.
func (r *VisitRepository) LatestTimestamp(ctx context.Context) (time.Time, bool, error) {
	var latest sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT MAX(visit_time) FROM tbl_visits").Scan(&latest)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: failed to query latest timestamp: %v", report.ErrStoreUnavailable, err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	ts, err := time.ParseInLocation(models.TimeLayout, latest.String, time.Local)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: malformed visit_time %q", report.ErrValidation, latest.String)
	}
	return ts, true, nil
}

// Insert appends one visit record and returns its id.
func (r *VisitRepository) Insert(ctx context.Context, rec models.VisitRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO tbl_visits (person_id, roi_id, counter_id, cam_id,
			duration_seconds, age_group, gender, visit_time, event_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.PersonID, rec.ROIID, rec.CounterID, rec.CamID,
		rec.DurationSeconds, string(rec.AgeGroup), string(rec.Gender),
		rec.VisitTime.Format(models.TimeLayout), nullableInt(rec.EventID))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert visit: %v", report.ErrStoreUnavailable, err)
	}
	return result.LastInsertId()
}

// InsertBatch appends multiple records in a single transaction.
func (r *VisitRepository) InsertBatch(ctx context.Context, records []models.VisitRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", report.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tbl_visits (person_id, roi_id, counter_id, cam_id,
			duration_seconds, age_group, gender, visit_time, event_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare statement: %v", report.ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx, rec.PersonID, rec.ROIID, rec.CounterID, rec.CamID,
			rec.DurationSeconds, string(rec.AgeGroup), string(rec.Gender),
			rec.VisitTime.Format(models.TimeLayout), nullableInt(rec.EventID))
		if err != nil {
			return fmt.Errorf("%w: failed to insert visit: %v", report.ErrStoreUnavailable, err)
		}
	}
	return tx.Commit()
}

// scanVisit reads one row, normalizing the categorical columns. Unrecognized
// bracket or gender text is surfaced as a validation failure rather than
// silently grouped under a default bucket.
func scanVisit(rows *sql.Rows) (models.VisitRecord, error) {
	var rec models.VisitRecord
	var ageRaw, genderRaw, timeRaw string
	var eventID sql.NullInt64

	err := rows.Scan(&rec.ID, &rec.PersonID, &rec.ROIID, &rec.CounterID, &rec.CamID,
		&rec.DurationSeconds, &ageRaw, &genderRaw, &timeRaw, &eventID)
	if err != nil {
		return rec, fmt.Errorf("%w: failed to scan visit: %v", report.ErrStoreUnavailable, err)
	}

	if rec.AgeGroup, err = models.ParseAgeGroup(ageRaw); err != nil {
		return rec, fmt.Errorf("%w: visit %d: %v", report.ErrValidation, rec.ID, err)
	}
	if rec.Gender, err = models.ParseGender(genderRaw); err != nil {
		return rec, fmt.Errorf("%w: visit %d: %v", report.ErrValidation, rec.ID, err)
	}
	if rec.VisitTime, err = time.ParseInLocation(models.TimeLayout, timeRaw, time.Local); err != nil {
		return rec, fmt.Errorf("%w: visit %d: malformed visit_time %q", report.ErrValidation, rec.ID, timeRaw)
	}
	if eventID.Valid {
		v := int(eventID.Int64)
		rec.EventID = &v
	}
	return rec, nil
}

// inCondition builds a placeholder IN clause over all stored spellings of a
// categorical value.
func inCondition(column string, values []string) (string, []interface{}) {
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return column + " IN (" + strings.Join(placeholders, ", ") + ")", args
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
