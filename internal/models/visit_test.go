package models

import (
	"testing"
	"time"
)

func TestParseAgeGroup(t *testing.T) {
	tests := []struct {
		in      string
		want    AgeGroup
		wantErr bool
	}{
		{"adult", AgeAdult, false},
		{"Teenager", AgeTeenager, false},
		{" young ", AgeYoung, false},
		{"SENIOR", AgeSenior, false},
		{"0", AgeTeenager, false},
		{"1", AgeAdult, false},
		{"2", AgeSenior, false},
		{"child", "", true},
		{"3", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAgeGroup(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAgeGroup(%q): want error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAgeGroup(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAgeGroup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"male", GenderMale, false},
		{"Female", GenderFemale, false},
		{"m", GenderMale, false},
		{"F", GenderFemale, false},
		{"x", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGender(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseGender(%q): want error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseGender(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGender(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStorageValuesCoverLegacyCodes(t *testing.T) {
	ageTests := []struct {
		group  AgeGroup
		legacy string
	}{
		{AgeTeenager, "0"},
		{AgeAdult, "1"},
		{AgeSenior, "2"},
	}
	for _, tt := range ageTests {
		values := tt.group.StorageValues()
		if !containsString(values, string(tt.group)) || !containsString(values, tt.legacy) {
			t.Errorf("%s.StorageValues() = %v, want canonical and %q", tt.group, values, tt.legacy)
		}
	}
	// Young never had a numeric code.
	if values := AgeYoung.StorageValues(); len(values) != 1 || values[0] != "young" {
		t.Errorf("young.StorageValues() = %v", values)
	}

	if values := GenderMale.StorageValues(); !containsString(values, "male") || !containsString(values, "m") {
		t.Errorf("male.StorageValues() = %v", values)
	}
	if values := GenderFemale.StorageValues(); !containsString(values, "female") || !containsString(values, "f") {
		t.Errorf("female.StorageValues() = %v", values)
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func TestReportWindowMatches(t *testing.T) {
	ts := time.Date(2024, 9, 19, 10, 0, 0, 0, time.Local)
	ev := 3
	rec := VisitRecord{
		CounterID: 1, CamID: 2, AgeGroup: AgeAdult, Gender: GenderMale,
		VisitTime: ts, EventID: &ev,
	}

	counter := 1
	otherCounter := 9
	female := GenderFemale
	otherEvent := 4

	tests := []struct {
		name   string
		window ReportWindow
		want   bool
	}{
		{"empty window matches all", ReportWindow{}, true},
		{"inclusive start", ReportWindow{Start: ts}, true},
		{"inclusive end", ReportWindow{End: ts}, true},
		{"before start", ReportWindow{Start: ts.Add(time.Second)}, false},
		{"after end", ReportWindow{End: ts.Add(-time.Second)}, false},
		{"counter match", ReportWindow{Counter: &counter}, true},
		{"counter mismatch", ReportWindow{Counter: &otherCounter}, false},
		{"gender mismatch", ReportWindow{Gender: &female}, false},
		{"event match", ReportWindow{Event: &ev}, true},
		{"event mismatch", ReportWindow{Event: &otherEvent}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Matches(rec); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReportWindowEventFilterNilEventID(t *testing.T) {
	ev := 3
	rec := VisitRecord{CounterID: 1, VisitTime: time.Now()}
	if (ReportWindow{Event: &ev}).Matches(rec) {
		t.Error("record with no event must not match an event filter")
	}
}

func TestTimeSlotContains(t *testing.T) {
	start := time.Date(2024, 9, 19, 10, 0, 0, 0, time.Local)
	slot := TimeSlot{Start: start, End: start.Add(30 * time.Minute)}

	if !slot.Contains(start) {
		t.Error("start is inside")
	}
	if !slot.Contains(start.Add(29 * time.Minute)) {
		t.Error("interior point is inside")
	}
	if slot.Contains(start.Add(30 * time.Minute)) {
		t.Error("end is outside")
	}
	if slot.Contains(start.Add(-time.Second)) {
		t.Error("before start is outside")
	}
}
