package ingest

import (
	"testing"

	"github.com/padidar/visitor-analytics-go/internal/models"
)

func TestDecodeEvent(t *testing.T) {
	payload := []byte(`{
		"person_id": 42, "roi_id": 3, "counter_id": 2, "cam_id": 1,
		"duration_seconds": 95, "age_group": "adult", "gender": "f",
		"timestamp": "2024-09-19 10:15:00", "event_id": 7
	}`)

	rec, err := decodeEvent(payload)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if rec.PersonID != 42 || rec.CounterID != 2 || rec.DurationSeconds != 95 {
		t.Errorf("decoded record = %+v", rec)
	}
	if rec.Gender != models.GenderFemale {
		t.Errorf("gender = %q, want normalized female", rec.Gender)
	}
	if rec.EventID == nil || *rec.EventID != 7 {
		t.Errorf("event id = %v", rec.EventID)
	}
	if rec.VisitTime.Format(models.TimeLayout) != "2024-09-19 10:15:00" {
		t.Errorf("visit time = %v", rec.VisitTime)
	}
}

func TestDecodeEventRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"missing ids", `{"person_id":0,"counter_id":1,"cam_id":1,"duration_seconds":10,"age_group":"adult","gender":"male","timestamp":"2024-09-19 10:00:00"}`},
		{"negative duration", `{"person_id":1,"counter_id":1,"cam_id":1,"duration_seconds":-5,"age_group":"adult","gender":"male","timestamp":"2024-09-19 10:00:00"}`},
		{"unknown age group", `{"person_id":1,"counter_id":1,"cam_id":1,"duration_seconds":10,"age_group":"toddler","gender":"male","timestamp":"2024-09-19 10:00:00"}`},
		{"unknown gender", `{"person_id":1,"counter_id":1,"cam_id":1,"duration_seconds":10,"age_group":"adult","gender":"x","timestamp":"2024-09-19 10:00:00"}`},
		{"bad timestamp", `{"person_id":1,"counter_id":1,"cam_id":1,"duration_seconds":10,"age_group":"adult","gender":"male","timestamp":"19/09/2024"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeEvent([]byte(tt.payload)); err == nil {
				t.Error("want rejection")
			}
		})
	}
}
