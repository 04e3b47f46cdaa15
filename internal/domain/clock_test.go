package domain_test

import (
	"testing"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

func TestDayKey_IsValid(t *testing.T) {
	valid := []domain.DayKey{"2026-08-31", "2000-01-01", "2024-02-29"}
	for _, d := range valid {
		if !d.IsValid() {
			t.Errorf("%s should be valid", d)
		}
	}

	invalid := []domain.DayKey{"", "2026-8-31", "31-08-2026", "2026-13-01", "2026-02-30", "garbage"}
	for _, d := range invalid {
		if d.IsValid() {
			t.Errorf("%s should be invalid", d)
		}
	}
}

func TestDayKey_DaysSince(t *testing.T) {
	d := domain.DayKey("2026-08-31")

	got, err := d.DaysSince("2026-08-28")
	if err != nil {
		t.Fatalf("days since: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}

	// Negative distance when the other day is later
	got, err = domain.DayKey("2026-08-28").DaysSince(d)
	if err != nil {
		t.Fatalf("days since: %v", err)
	}
	if got != -3 {
		t.Errorf("expected -3, got %d", got)
	}

	if _, err := d.DaysSince("not-a-day"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestDayKey_AddDays(t *testing.T) {
	d := domain.DayKey("2026-08-31")
	if got := d.AddDays(1); got != "2026-09-01" {
		t.Errorf("expected month rollover, got %s", got)
	}
	if got := d.AddDays(-1); got != "2026-08-30" {
		t.Errorf("expected 2026-08-30, got %s", got)
	}
}

func TestDayKeyOf_Timezone(t *testing.T) {
	loc, err := time.LoadLocation(domain.ReferenceTimezone)
	if err != nil {
		t.Skip("tz database unavailable")
	}

	// 23:30 UTC on Aug 30 is already Aug 31 in Warsaw (UTC+2 in summer).
	instant := time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC)
	if got := domain.DayKeyOf(instant, loc); got != "2026-08-31" {
		t.Errorf("expected 2026-08-31 in reference tz, got %s", got)
	}
	if got := domain.DayKeyOf(instant, time.UTC); got != "2026-08-30" {
		t.Errorf("expected 2026-08-30 in UTC, got %s", got)
	}
}
