package worker

import (
	"testing"
	"time"
)

func TestParseStatDate(t *testing.T) {
	day, ok := parseStatDate("2026-08-31")
	if !ok {
		t.Fatalf("expected valid stat date")
	}
	if day.Year() != 2026 || day.Month() != time.August || day.Day() != 31 {
		t.Fatalf("unexpected parsed date: %v", day)
	}
}

func TestParseStatDateEmptyDefaultsToYesterday(t *testing.T) {
	day, ok := parseStatDate("   ")
	if !ok {
		t.Fatalf("expected empty stat date to fall back")
	}
	want := time.Now().AddDate(0, 0, -1)
	if day.Format("2006-01-02") != want.Format("2006-01-02") {
		t.Fatalf("expected yesterday, got %v", day)
	}
}

func TestParseStatDateInvalid(t *testing.T) {
	if _, ok := parseStatDate("31/08/2026"); ok {
		t.Fatalf("expected invalid stat date to be rejected")
	}
}
