package domain_test

import (
	"testing"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestMarkCompleted_Idempotent(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", testNow)

	if !p.MarkCompleted("mat-01", testNow) {
		t.Error("first completion should report true")
	}
	if p.MarkCompleted("mat-01", testNow) {
		t.Error("second completion should report false")
	}
	if len(p.CompletedTasks) != 1 {
		t.Errorf("expected 1 completed task, got %d", len(p.CompletedTasks))
	}
}

func TestAddXP_DailyCap(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", testNow)
	day := domain.DayKey("2026-08-31")

	if got := p.AddXP(50, day, 120, testNow); got != 50 {
		t.Errorf("expected 50 granted, got %d", got)
	}
	if got := p.AddXP(50, day, 120, testNow); got != 50 {
		t.Errorf("expected 50 granted, got %d", got)
	}
	// Only 20 of the cap remain.
	if got := p.AddXP(50, day, 120, testNow); got != 20 {
		t.Errorf("expected 20 granted at cap, got %d", got)
	}
	// Cap reached: grants clamp to zero but the counter holds.
	if got := p.AddXP(10, day, 120, testNow); got != 0 {
		t.Errorf("expected 0 granted past cap, got %d", got)
	}
	if p.XP != 120 || p.XPGainedToday != 120 {
		t.Errorf("expected XP=120 gained=120, got XP=%d gained=%d", p.XP, p.XPGainedToday)
	}

	// New day resets the counter.
	if got := p.AddXP(10, day.AddDays(1), 120, testNow); got != 10 {
		t.Errorf("expected fresh cap on new day, got %d", got)
	}
}

func TestAddXP_Uncapped(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", testNow)
	if got := p.AddXP(500, "2026-08-31", 0, testNow); got != 500 {
		t.Errorf("expected full grant when uncapped, got %d", got)
	}
}

func TestAddGems_IgnoresNonPositive(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", testNow)
	p.AddGems(3, testNow)
	p.AddGems(0, testNow)
	p.AddGems(-5, testNow)
	if p.Gems != 3 {
		t.Errorf("expected 3 gems, got %d", p.Gems)
	}
}

func TestLevelCurve(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 0},
		{4, 0},
		{5, 1},  // XPForLevel(1) = 5
		{10, 1},
		{11, 2},    // XPForLevel(2) = 11
		{1380, 60}, // softcap threshold
	}
	for _, c := range cases {
		if got := domain.LevelForXP(c.xp); got != c.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.level)
		}
	}
}

func TestLevelCurve_Softcap(t *testing.T) {
	threshold := domain.XPForLevel(60)

	// Past the softcap, XP counts at 40%: 100 extra raw XP is only 40
	// effective, short of level 61.
	if got := domain.LevelForXP(threshold + 100); got != 60 {
		t.Errorf("expected 60 just past softcap, got %d", got)
	}
	if got := domain.LevelForXP(threshold + 110); got != 61 {
		t.Errorf("expected 61, got %d", got)
	}
}

func TestLevelCurve_Monotone(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20000; xp += 37 {
		lvl := domain.LevelForXP(xp)
		if lvl < prev {
			t.Fatalf("level decreased: %d XP -> level %d (was %d)", xp, lvl, prev)
		}
		if lvl > domain.MaxLevel {
			t.Fatalf("level %d exceeds max", lvl)
		}
		prev = lvl
	}
}

func TestClone_Independent(t *testing.T) {
	p := domain.NewLearnerProfile("l1", "Romi", testNow)
	p.MarkCompleted("mat-01", testNow)

	cp := p.Clone()
	cp.MarkCompleted("mat-02", testNow)

	if p.HasCompleted("mat-02") {
		t.Error("clone mutation leaked into original")
	}
}
