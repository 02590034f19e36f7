package report

import (
	"context"

	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/stats"
)

// DwellDistribution summarizes how long visitors stay inside the window's
// matching records: five-number summary plus mean and sample deviation, all
// in seconds. An empty window yields a populated zero like Totals does.
func (e *Engine) DwellDistribution(ctx context.Context, window models.ReportWindow) (models.DistributionResult, error) {
	records, err := e.store.Query(ctx, window)
	if err != nil {
		return models.DistributionResult{}, err
	}

	durations := make([]float64, len(records))
	for i, r := range records {
		durations[i] = float64(r.DurationSeconds)
	}

	min, q1, median, q3, max := stats.FiveNumberSummary(durations)
	return models.DistributionResult{
		Count:  len(records),
		Min:    Round2(min),
		P25:    Round2(q1),
		Median: Round2(median),
		P75:    Round2(q3),
		Max:    Round2(max),
		Mean:   Round2(stats.Mean(durations)),
		StdDev: Round2(stats.StdDev(durations)),
	}, nil
}
