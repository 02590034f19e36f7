package report

import (
	"context"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// VisitStore is the query contract the reporting core consumes. The core
// never mutates through it.
//
// Query returns the records matching the window, ordered by visit time then
// insertion order. An empty match is an empty slice, never an error; errors
// mean the store itself failed and wrap ErrStoreUnavailable.
//
// LatestTimestamp anchors "today" semantics when historical data spans
// multiple days: it returns the most recent visit time in the store, with
// ok=false when the store holds no records at all.
type VisitStore interface {
	Query(ctx context.Context, window models.ReportWindow) ([]models.VisitRecord, error)
	LatestTimestamp(ctx context.Context) (ts time.Time, ok bool, err error)
}
