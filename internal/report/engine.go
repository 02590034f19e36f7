package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// Direction selects which extreme a ranking operation returns.
type Direction string

const (
	DirectionMost  Direction = "most"
	DirectionLeast Direction = "least"
)

// ParseDirection validates a caller-supplied ranking direction. The scope of
// a ranking (all history vs. latest day) is likewise always explicit in the
// operation the caller picks; nothing here infers a default.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionMost, DirectionLeast:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: direction must be %q or %q", ErrValidation, DirectionMost, DirectionLeast)
}

// Engine runs the aggregation operations over a visit store. It holds no
// cross-call state: every method is a read-only reduction and independent
// calls may run concurrently.
type Engine struct {
	store  VisitStore
	policy Policy
}

// NewEngine validates the policy once so per-call paths don't have to.
func NewEngine(store VisitStore, policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, policy: policy}, nil
}

// Policy returns the aggregation policy the engine was built with.
func (e *Engine) Policy() Policy { return e.policy }

// zoneAgg is one zone's tally inside a single grouped aggregation pass.
type zoneAgg struct {
	counterID     int
	count         int
	totalDuration int64
}

// aggregateByZone groups records by counting zone in one pass. The result is
// ordered by ascending counter id, which doubles as the deterministic
// secondary sort key for every ranking.
func aggregateByZone(records []models.VisitRecord) []zoneAgg {
	byZone := make(map[int]*zoneAgg)
	for _, r := range records {
		a, ok := byZone[r.CounterID]
		if !ok {
			a = &zoneAgg{counterID: r.CounterID}
			byZone[r.CounterID] = a
		}
		a.count++
		a.totalDuration += r.DurationSeconds
	}

	aggs := make([]zoneAgg, 0, len(byZone))
	for _, a := range byZone {
		aggs = append(aggs, *a)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].counterID < aggs[j].counterID })
	return aggs
}

// extremalZone picks the busiest or quietest zone from a grouped pass.
// Ties on count resolve to the lowest counter id so repeated calls over an
// unchanged store return identical results.
func extremalZone(aggs []zoneAgg, dir Direction) zoneAgg {
	best := aggs[0]
	for _, a := range aggs[1:] {
		if dir == DirectionMost && a.count > best.count {
			best = a
		}
		if dir == DirectionLeast && a.count < best.count {
			best = a
		}
	}
	return best
}

// Round2 rounds to two decimal places, the precision contract for averages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// averageDuration is total/count rounded to two decimals, defined as 0 when
// count is zero.
func averageDuration(total int64, count int) float64 {
	if count == 0 {
		return 0
	}
	return Round2(float64(total) / float64(count))
}
