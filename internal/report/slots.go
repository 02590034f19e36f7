package report

import (
	"fmt"
	"time"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

// Policy carries the aggregation knobs that used to live as hidden constants:
// the operating-hour window, the slot width, and the start hour applied to
// demographic date ranges. It is threaded into every call path so callers and
// tests can vary it.
type Policy struct {
	DayStart       time.Duration // offset from midnight, e.g. 8h for 08:00
	DayEnd         time.Duration // offset from midnight, e.g. 22h for 22:00
	SlotWidth      time.Duration
	RangeStartHour int // hour of day forced onto demographic range starts
}

// DefaultPolicy matches the site's observed operating convention:
// 08:00-22:00 in 30-minute slots, demographic ranges starting at 08:00.
func DefaultPolicy() Policy {
	return Policy{
		DayStart:       8 * time.Hour,
		DayEnd:         22 * time.Hour,
		SlotWidth:      30 * time.Minute,
		RangeStartHour: 8,
	}
}

// Validate rejects policies that cannot produce a slot list.
func (p Policy) Validate() error {
	if p.SlotWidth <= 0 {
		return fmt.Errorf("%w: slot width must be positive", ErrValidation)
	}
	if p.DayEnd <= p.DayStart {
		return fmt.Errorf("%w: operating hours end must be after start", ErrValidation)
	}
	if p.RangeStartHour < 0 || p.RangeStartHour > 23 {
		return fmt.Errorf("%w: range start hour must be within 0-23", ErrValidation)
	}
	return nil
}

// GenerateSlots partitions one calendar day's operating hours into contiguous
// half-open slots. When the width does not evenly divide the span the final
// slot is truncated to the operating end rather than rejected. Records outside
// operating hours fall in no slot and are therefore excluded from slot-scoped
// aggregations by construction.
func GenerateSlots(date time.Time, p Policy) []models.TimeSlot {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	open := midnight.Add(p.DayStart)
	close := midnight.Add(p.DayEnd)

	var slots []models.TimeSlot
	for start := open; start.Before(close); start = start.Add(p.SlotWidth) {
		end := start.Add(p.SlotWidth)
		if end.After(close) {
			end = close
		}
		slots = append(slots, models.TimeSlot{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04")),
		})
	}
	return slots
}
