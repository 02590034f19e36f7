package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/report"
)

// CatalogRepository serves the read-mostly reference tables: counters,
// cameras, ROIs, and grouping events.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCounters returns all counting zones ordered by counter id.
func (r *CatalogRepository) ListCounters(ctx context.Context) ([]models.Counter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, counter_id, COALESCE(counter_name, ''), COALESCE(counter_cam_id, 0),
			num_of_rois, COALESCE(counter_desc, '')
		FROM tbl_counters ORDER BY counter_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query counters: %v", report.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	counters := make([]models.Counter, 0)
	for rows.Next() {
		var c models.Counter
		if err := rows.Scan(&c.ID, &c.CounterID, &c.Name, &c.CamID, &c.NumOfROIs, &c.Description); err != nil {
			return nil, fmt.Errorf("%w: failed to scan counter: %v", report.ErrStoreUnavailable, err)
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

// GetCounter returns one counting zone by its counter id.
func (r *CatalogRepository) GetCounter(ctx context.Context, counterID int) (*models.Counter, error) {
	var c models.Counter
	err := r.db.QueryRowContext(ctx, `
		SELECT id, counter_id, COALESCE(counter_name, ''), COALESCE(counter_cam_id, 0),
			num_of_rois, COALESCE(counter_desc, '')
		FROM tbl_counters WHERE counter_id = ?
	`, counterID).Scan(&c.ID, &c.CounterID, &c.Name, &c.CamID, &c.NumOfROIs, &c.Description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: counter %d", report.ErrNoData, counterID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query counter: %v", report.ErrStoreUnavailable, err)
	}
	return &c, nil
}

// ListCameras returns all cameras ordered by camera id.
func (r *CatalogRepository) ListCameras(ctx context.Context) ([]models.Camera, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cam_id, COALESCE(cam_name, ''), COALESCE(cam_ip, ''), COALESCE(cam_mac, ''),
			cam_enable, COALESCE(cam_rtsp, ''), COALESCE(cam_desc, '')
		FROM tbl_cameras ORDER BY cam_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query cameras: %v", report.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	cameras := make([]models.Camera, 0)
	for rows.Next() {
		var c models.Camera
		var enabled int
		if err := rows.Scan(&c.ID, &c.CamID, &c.Name, &c.IP, &c.MAC, &enabled, &c.RTSP, &c.Description); err != nil {
			return nil, fmt.Errorf("%w: failed to scan camera: %v", report.ErrStoreUnavailable, err)
		}
		c.Enabled = enabled == 1
		cameras = append(cameras, c)
	}
	return cameras, rows.Err()
}

// ListROIs returns all regions of interest ordered by roi id.
func (r *CatalogRepository) ListROIs(ctx context.Context) ([]models.ROI, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, roi_id, COALESCE(counter_roi_id, 0), COALESCE(roi_coor, ''), COALESCE(roi_desc, '')
		FROM tbl_rois ORDER BY roi_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query rois: %v", report.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	rois := make([]models.ROI, 0)
	for rows.Next() {
		var roi models.ROI
		if err := rows.Scan(&roi.ID, &roi.ROIID, &roi.CounterID, &roi.Coordinates, &roi.Description); err != nil {
			return nil, fmt.Errorf("%w: failed to scan roi: %v", report.ErrStoreUnavailable, err)
		}
		rois = append(rois, roi)
	}
	return rois, rows.Err()
}

// ListEvents returns all grouping events ordered by event id.
func (r *CatalogRepository) ListEvents(ctx context.Context) ([]models.GroupEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, COALESCE(event_name, ''), COALESCE(event_desc, '')
		FROM tbl_events ORDER BY event_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query events: %v", report.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	events := make([]models.GroupEvent, 0)
	for rows.Next() {
		var e models.GroupEvent
		if err := rows.Scan(&e.ID, &e.EventID, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("%w: failed to scan event: %v", report.ErrStoreUnavailable, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventNames returns the event id to display name mapping used when
// flattening export rows.
func (r *CatalogRepository) EventNames(ctx context.Context) (map[int]string, error) {
	events, err := r.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(events))
	for _, e := range events {
		names[e.EventID] = e.Name
	}
	return names, nil
}
