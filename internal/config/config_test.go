package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VISITOR_AUTH_JWTSECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Report.SlotWidthMinutes != 30 || cfg.Report.RangeStartHour != 8 {
		t.Errorf("report defaults = %+v", cfg.Report)
	}
	if cfg.Ingest.Enabled {
		t.Error("ingest must default to disabled")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := Load("")
	if !errors.Is(err, ErrEmptyJWTSecret) {
		t.Errorf("want ErrEmptyJWTSecret, got %v", err)
	}
}

func TestLoadRejectsIngestWithoutBrokers(t *testing.T) {
	t.Setenv("VISITOR_AUTH_JWTSECRET", "test-secret")
	t.Setenv("VISITOR_INGEST_ENABLED", "true")

	_, err := Load("")
	if !errors.Is(err, ErrEmptyIngestBrokers) {
		t.Errorf("want ErrEmptyIngestBrokers, got %v", err)
	}
}

func TestReportConfigPolicy(t *testing.T) {
	rc := ReportConfig{
		OperatingStart:   "09:30",
		OperatingEnd:     "21:00",
		SlotWidthMinutes: 15,
		RangeStartHour:   9,
	}
	p, err := rc.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if p.DayStart != 9*time.Hour+30*time.Minute {
		t.Errorf("day start = %v", p.DayStart)
	}
	if p.DayEnd != 21*time.Hour {
		t.Errorf("day end = %v", p.DayEnd)
	}
	if p.SlotWidth != 15*time.Minute {
		t.Errorf("slot width = %v", p.SlotWidth)
	}
}

func TestReportConfigPolicyRejectsBadClock(t *testing.T) {
	tests := []ReportConfig{
		{OperatingStart: "8am", OperatingEnd: "22:00", SlotWidthMinutes: 30, RangeStartHour: 8},
		{OperatingStart: "08:00", OperatingEnd: "25:00", SlotWidthMinutes: 30, RangeStartHour: 8},
		{OperatingStart: "22:00", OperatingEnd: "08:00", SlotWidthMinutes: 30, RangeStartHour: 8},
		{OperatingStart: "08:00", OperatingEnd: "22:00", SlotWidthMinutes: 0, RangeStartHour: 8},
	}
	for _, rc := range tests {
		if _, err := rc.Policy(); !errors.Is(err, ErrInvalidReportPolicy) {
			t.Errorf("%+v: want ErrInvalidReportPolicy, got %v", rc, err)
		}
	}
}
