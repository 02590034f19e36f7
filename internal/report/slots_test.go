package report

import (
	"testing"
	"time"
)

func TestGenerateSlotsDefaultPolicy(t *testing.T) {
	day := time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local)
	slots := GenerateSlots(day, DefaultPolicy())

	if len(slots) != 28 {
		t.Fatalf("want 28 slots for 08:00-22:00 at 30m, got %d", len(slots))
	}
	if slots[0].Label != "08:00-08:30" {
		t.Errorf("first label = %q", slots[0].Label)
	}
	if slots[27].Label != "21:30-22:00" {
		t.Errorf("last label = %q", slots[27].Label)
	}

	// Slots are contiguous and half-open.
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End) {
			t.Errorf("gap between slot %d and %d", i-1, i)
		}
	}
	if !slots[0].Contains(slots[0].Start) {
		t.Error("slot should contain its start")
	}
	if slots[0].Contains(slots[0].End) {
		t.Error("slot should not contain its end")
	}
}

func TestSlotsPartitionOperatingHours(t *testing.T) {
	// Every in-hours instant belongs to exactly one slot, so per-slot counts
	// always sum to the operating-hour total. Boundary instants included.
	day := time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local)
	slots := GenerateSlots(day, DefaultPolicy())

	instants := []time.Time{
		day.Add(8 * time.Hour),                    // opening instant
		day.Add(8*time.Hour + 30*time.Minute),     // slot boundary
		day.Add(13*time.Hour + 17*time.Minute),    // mid-slot
		day.Add(22*time.Hour - time.Second),       // last second
	}
	for _, ts := range instants {
		owners := 0
		for _, s := range slots {
			if s.Contains(ts) {
				owners++
			}
		}
		if owners != 1 {
			t.Errorf("%v contained by %d slots, want exactly 1", ts, owners)
		}
	}

	// The closing instant and out-of-hours times belong to none.
	for _, ts := range []time.Time{day.Add(22 * time.Hour), day.Add(7 * time.Hour)} {
		for _, s := range slots {
			if s.Contains(ts) {
				t.Errorf("%v must fall in no slot", ts)
			}
		}
	}
}

func TestGenerateSlotsTruncatesFinalSlot(t *testing.T) {
	p := Policy{
		DayStart:       9 * time.Hour,
		DayEnd:         10*time.Hour + 45*time.Minute,
		SlotWidth:      30 * time.Minute,
		RangeStartHour: 8,
	}
	day := time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local)
	slots := GenerateSlots(day, p)

	if len(slots) != 4 {
		t.Fatalf("want 4 slots, got %d", len(slots))
	}
	last := slots[3]
	if last.Label != "10:30-10:45" {
		t.Errorf("truncated slot label = %q", last.Label)
	}
	if got := last.End.Sub(last.Start); got != 15*time.Minute {
		t.Errorf("truncated slot width = %v", got)
	}
}
