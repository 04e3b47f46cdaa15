package domain

import "time"

// ─── Reward Ledger Types ────────────────────────────────────────────────────
// One generic mechanism replaces every per-feature "already done today"
// flag: a claim keyed by (learner, kind, period) exists at most once, and
// its existence is the sole source of truth for "already granted".

// RewardKind names a one-time-per-period reward.
type RewardKind string

const (
	// RewardDaily is the daily-challenge completion bonus; period = day key.
	RewardDaily RewardKind = "daily"
	// RewardTask is a task's intrinsic reward; period = task ID, so each
	// task pays out exactly once per learner, ever.
	RewardTask RewardKind = "task"
	// RewardStreak is a streak-milestone lootbox; period = "streak-N".
	RewardStreak RewardKind = "streak"
	// RewardSection is the whole-corridor daily bonus; period = "day::corridor".
	RewardSection RewardKind = "section"
)

// RewardAmount is what a claim pays out.
type RewardAmount struct {
	XP   int `json:"xp"`
	Gems int `json:"gems"`
}

// RewardClaim is the persisted grant record.
type RewardClaim struct {
	LearnerID string     `json:"learner_id"`
	Kind      RewardKind `json:"kind"`
	PeriodKey string     `json:"period_key"`
	GrantedAt time.Time  `json:"granted_at"`
}

// ClaimResult reports the outcome of a claim attempt. Granted is true only
// for the single call that recorded the claim; replays carry the same
// amount with Granted false.
type ClaimResult struct {
	Granted bool         `json:"granted"`
	Amount  RewardAmount `json:"amount"`
	Badge   string       `json:"badge,omitempty"`
	Freeze  bool         `json:"freeze,omitempty"`
}

// DefaultRewardAmounts are the static definitions for kinds whose payout
// does not come from the task catalog.
var DefaultRewardAmounts = map[RewardKind]RewardAmount{
	RewardDaily:   {XP: 5},
	RewardSection: {XP: 12, Gems: 1},
}

// ─── Streak Milestones ──────────────────────────────────────────────────────

// StreakMilestone pairs a consecutive-day count with its lootbox.
type StreakMilestone struct {
	Days  int    `json:"days"`
	XP    int    `json:"xp"`
	Badge string `json:"badge"`
	Emoji string `json:"emoji"`
}

// StreakMilestones is the static milestone table, ascending by days.
// Keep IDs stable — learners' claimed badges reference them.
var StreakMilestones = []StreakMilestone{
	{Days: 3, XP: 5, Badge: "streak_3", Emoji: "🔥"},
	{Days: 7, XP: 10, Badge: "streak_7", Emoji: "🏅"},
	{Days: 14, XP: 20, Badge: "streak_14", Emoji: "💎"},
	{Days: 30, XP: 40, Badge: "streak_30", Emoji: "👑"},
}

// MilestoneForStreak returns the milestone hit exactly at the given
// streak length, if any.
func MilestoneForStreak(days int) (StreakMilestone, bool) {
	for _, m := range StreakMilestones {
		if m.Days == days {
			return m, true
		}
	}
	return StreakMilestone{}, false
}
