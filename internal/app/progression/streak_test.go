package progression_test

import (
	"testing"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/app/progression"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

var streakNow = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func advance(t *testing.T, p *domain.LearnerProfile, day domain.DayKey) progression.StreakUpdate {
	t.Helper()
	update, err := progression.AdvanceStreak(p, day, streakNow)
	if err != nil {
		t.Fatalf("advance %s: %v", day, err)
	}
	return update
}

func TestAdvanceStreak_FirstDay(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)

	update := advance(t, p, "2026-08-01")
	if update.Streak != 1 || update.Event != progression.StreakFirst {
		t.Errorf("expected streak 1 / first, got %d / %s", update.Streak, update.Event)
	}
}

func TestAdvanceStreak_ConsecutiveDays(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)
	day := domain.DayKey("2026-08-01")

	for i := 0; i < 5; i++ {
		advance(t, p, day.AddDays(i))
	}
	if p.Streak != 5 {
		t.Errorf("expected 5 consecutive, got %d", p.Streak)
	}
}

func TestAdvanceStreak_SameDayIdempotent(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)

	advance(t, p, "2026-08-01")
	update := advance(t, p, "2026-08-01")
	if update.Event != progression.StreakSameDay || p.Streak != 1 {
		t.Errorf("expected same-day no-op, got %s / streak %d", update.Event, p.Streak)
	}
}

func TestAdvanceStreak_GapResets(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)

	advance(t, p, "2026-08-01")
	update := advance(t, p, "2026-08-05")
	if update.Streak != 1 || update.Event != progression.StreakReset {
		t.Errorf("expected reset to 1, got %d / %s", update.Streak, update.Event)
	}
}

func TestAdvanceStreak_FreezeRescuesOneDay(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)
	p.Freezes = 1

	advance(t, p, "2026-08-01")
	advance(t, p, "2026-08-02")

	// Aug 3 missed; a freeze bridges it.
	update := advance(t, p, "2026-08-04")
	if update.Event != progression.StreakFreeze {
		t.Fatalf("expected freeze event, got %s", update.Event)
	}
	if update.Streak != 3 || p.Streak != 3 {
		t.Errorf("expected streak 3 after freeze, got %d", p.Streak)
	}
	if update.SavedDay != "2026-08-03" {
		t.Errorf("expected saved day 2026-08-03, got %s", update.SavedDay)
	}
	if p.Freezes != 0 {
		t.Errorf("freeze not consumed, stock %d", p.Freezes)
	}
}

func TestAdvanceStreak_NoFreezeResets(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)

	advance(t, p, "2026-08-01")
	advance(t, p, "2026-08-02")
	update := advance(t, p, "2026-08-04")
	if update.Streak != 1 || update.Event != progression.StreakReset {
		t.Errorf("expected reset without freeze, got %d / %s", update.Streak, update.Event)
	}
}

func TestAdvanceStreak_TwoDayGapNeverFrozen(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)
	p.Freezes = 5

	advance(t, p, "2026-08-01")
	update := advance(t, p, "2026-08-04") // two missed days
	if update.Event != progression.StreakReset {
		t.Errorf("freeze must only cover a single missed day, got %s", update.Event)
	}
	if p.Freezes != 5 {
		t.Errorf("freeze consumed on an unbridgeable gap, stock %d", p.Freezes)
	}
}

func TestAdvanceStreak_ClockSkewKeepsStreak(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)

	advance(t, p, "2026-08-02")
	advance(t, p, "2026-08-03")

	// A day in the past must not wipe the streak.
	update := advance(t, p, "2026-08-01")
	if update.Streak != 2 {
		t.Errorf("expected streak preserved on skew, got %d", update.Streak)
	}
}

func TestAdvanceStreak_InvalidDay(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", streakNow)
	if _, err := progression.AdvanceStreak(p, "garbage", streakNow); err == nil {
		t.Error("expected error for malformed day key")
	}
}
