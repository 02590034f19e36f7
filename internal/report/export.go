package report

import (
	"context"
	"strconv"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// ExportColumns is the fixed column contract for tabular exports. Serializers
// must emit these columns in this order even when there are no data rows.
var ExportColumns = []string{
	"seq", "counter_id", "cam_id", "person_id", "duration_seconds",
	"gender", "age_group", "roi_id", "visit_time", "event_name",
}

// BuildRows flattens records into export rows with 1-based sequence numbers,
// preserving input order. eventNames maps grouping-event ids to display
// names; records without an event, or with an unknown id, get an empty name.
func BuildRows(records []models.VisitRecord, eventNames map[int]string) []models.ExportRow {
	rows := make([]models.ExportRow, 0, len(records))
	for i, r := range records {
		row := models.ExportRow{
			Seq:             i + 1,
			CounterID:       r.CounterID,
			CamID:           r.CamID,
			PersonID:        r.PersonID,
			DurationSeconds: r.DurationSeconds,
			Gender:          string(r.Gender),
			AgeGroup:        string(r.AgeGroup),
			ROIID:           r.ROIID,
			VisitTime:       r.VisitTime.Format(models.TimeLayout),
		}
		if r.EventID != nil {
			row.EventName = eventNames[*r.EventID]
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportRows queries the window and flattens the result. Row order follows
// the store's query order, which the store keeps stable.
func (e *Engine) ExportRows(ctx context.Context, window models.ReportWindow, eventNames map[int]string) ([]models.ExportRow, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return nil, err
	}
	return BuildRows(records, eventNames), nil
}

// RowStrings renders one row in column order for CSV-style serializers.
func RowStrings(row models.ExportRow) []string {
	return []string{
		strconv.Itoa(row.Seq),
		strconv.Itoa(row.CounterID),
		strconv.Itoa(row.CamID),
		strconv.Itoa(row.PersonID),
		strconv.FormatInt(row.DurationSeconds, 10),
		row.Gender,
		row.AgeGroup,
		strconv.Itoa(row.ROIID),
		row.VisitTime,
		row.EventName,
	}
}
