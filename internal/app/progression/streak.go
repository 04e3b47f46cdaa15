package progression

import (
	"fmt"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Streak Tracker ─────────────────────────────────────────────────────────

// StreakEvent describes what happened to the streak on a recorded day.
type StreakEvent string

const (
	// StreakFirst — first active day ever.
	StreakFirst StreakEvent = "first"
	// StreakContinue — consecutive day, streak extended.
	StreakContinue StreakEvent = "continue"
	// StreakFreeze — one missed day rescued by a freeze.
	StreakFreeze StreakEvent = "freeze"
	// StreakReset — gap too large, streak back to 1.
	StreakReset StreakEvent = "reset"
	// StreakSameDay — already counted today, no-op.
	StreakSameDay StreakEvent = "same_day"
)

// StreakUpdate reports the streak after recording a day of activity.
type StreakUpdate struct {
	Streak   int           `json:"streak"`
	Event    StreakEvent   `json:"event"`
	SavedDay domain.DayKey `json:"saved_day,omitempty"`
}

// AdvanceStreak records activity on `today` against the profile's
// last-active day and mutates the streak fields accordingly.
//
// Rules:
//   - same day: no-op (idempotent re-entry)
//   - next day: streak +1
//   - gap of exactly one missed day: a freeze, if the learner owns one and
//     the gap day was not already rescued, is consumed and the streak
//     continues
//   - anything else: reset to 1
//
// The tracker only counts days. It never grants XP or gems — milestones
// become claimable through the reward ledger.
func AdvanceStreak(p *domain.LearnerProfile, today domain.DayKey, now time.Time) (StreakUpdate, error) {
	if !today.IsValid() {
		return StreakUpdate{}, fmt.Errorf("advance streak: %w", domain.ErrInvalidPeriodKey)
	}

	if p.LastActiveDay == today {
		return StreakUpdate{Streak: p.Streak, Event: StreakSameDay}, nil
	}

	if p.LastActiveDay == "" {
		p.Streak = 1
		p.LastActiveDay = today
		p.UpdatedAt = now
		return StreakUpdate{Streak: 1, Event: StreakFirst}, nil
	}

	diff, err := today.DaysSince(p.LastActiveDay)
	if err != nil {
		return StreakUpdate{}, fmt.Errorf("advance streak: %w", err)
	}

	switch {
	case diff == 1:
		p.Streak++
		p.LastActiveDay = today
		p.UpdatedAt = now
		return StreakUpdate{Streak: p.Streak, Event: StreakContinue}, nil

	case diff == 2:
		gap := today.AddDays(-1)
		if _, used := p.FreezeUsedDays[gap]; p.Freezes > 0 && !used {
			p.Freezes--
			p.FreezeUsedDays[gap] = struct{}{}
			p.Streak++
			p.LastActiveDay = today
			p.UpdatedAt = now
			return StreakUpdate{Streak: p.Streak, Event: StreakFreeze, SavedDay: gap}, nil
		}
		p.Streak = 1
		p.LastActiveDay = today
		p.UpdatedAt = now
		return StreakUpdate{Streak: 1, Event: StreakReset}, nil

	case diff > 2:
		p.Streak = 1
		p.LastActiveDay = today
		p.UpdatedAt = now
		return StreakUpdate{Streak: 1, Event: StreakReset}, nil

	default:
		// diff <= 0: clock went backwards. Keep the streak, don't punish.
		if p.Streak < 1 {
			p.Streak = 1
		}
		p.LastActiveDay = today
		p.UpdatedAt = now
		return StreakUpdate{Streak: p.Streak, Event: StreakSameDay}, nil
	}
}

// freezeDropPercent is the lootbox chance of an extra freeze day.
const freezeDropPercent = 25

// milestoneFreezeDrop decides whether a claimed milestone lootbox also
// yields a freeze. Deterministic per (learner, milestone, day), so
// re-rolling by retrying the claim is impossible.
func milestoneFreezeDrop(learnerID string, days int, day domain.DayKey) bool {
	seed := fmt.Sprintf("freeze_drop::%s::%d::%s", learnerID, days, day)
	return rollPercent(seed) < freezeDropPercent
}
