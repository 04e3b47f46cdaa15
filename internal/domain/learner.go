// Package domain holds the progression engine's core types.
// Everything here is pure — no storage, no HTTP, no clock reads.
package domain

import "time"

// ─── Learner Profile ────────────────────────────────────────────────────────

// LearnerProfile is the engine-owned record of one learner.
// Mutated only through engine operations; completed tasks, XP and gems
// only ever grow.
type LearnerProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassCode string `json:"class_code,omitempty"`

	XP   int `json:"xp"`
	Gems int `json:"gems"`

	// CompletedTasks is append-only. Unlock state is always recomputed
	// from this set, never cached as a flag.
	CompletedTasks map[string]struct{} `json:"-"`

	LastActiveDay DayKey `json:"last_active_day,omitempty"`
	Streak        int    `json:"streak"`

	// Freezes is the stock of streak-freeze days; FreezeUsedDays records
	// which gap days a freeze already rescued.
	Freezes        int                 `json:"freezes"`
	FreezeUsedDays map[DayKey]struct{} `json:"-"`

	Badges   map[string]struct{} `json:"-"`
	Stickers map[string]struct{} `json:"-"`

	// XPDay / XPGainedToday implement the daily anti-farm XP cap.
	XPDay         DayKey `json:"xp_day,omitempty"`
	XPGainedToday int    `json:"xp_gained_today"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLearnerProfile creates an empty profile with all sets initialized.
func NewLearnerProfile(id, name string, now time.Time) *LearnerProfile {
	return &LearnerProfile{
		ID:             id,
		Name:           name,
		CompletedTasks: make(map[string]struct{}),
		FreezeUsedDays: make(map[DayKey]struct{}),
		Badges:         make(map[string]struct{}),
		Stickers:       make(map[string]struct{}),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// HasCompleted reports whether the learner finished the given task.
func (p *LearnerProfile) HasCompleted(taskID string) bool {
	_, ok := p.CompletedTasks[taskID]
	return ok
}

// MarkCompleted adds a task to the completed set.
// Returns false if it was already there (the set never shrinks).
func (p *LearnerProfile) MarkCompleted(taskID string, now time.Time) bool {
	if p.HasCompleted(taskID) {
		return false
	}
	p.CompletedTasks[taskID] = struct{}{}
	p.UpdatedAt = now
	return true
}

// GrantBadge adds a badge. Idempotent.
func (p *LearnerProfile) GrantBadge(id string, now time.Time) {
	if _, ok := p.Badges[id]; ok {
		return
	}
	p.Badges[id] = struct{}{}
	p.UpdatedAt = now
}

// GrantSticker adds a sticker. Idempotent.
func (p *LearnerProfile) GrantSticker(id string, now time.Time) {
	if _, ok := p.Stickers[id]; ok {
		return
	}
	p.Stickers[id] = struct{}{}
	p.UpdatedAt = now
}

// AddGems increases the gem balance. Negative amounts are ignored —
// gems are monotonically non-decreasing.
func (p *LearnerProfile) AddGems(amount int, now time.Time) {
	if amount <= 0 {
		return
	}
	p.Gems += amount
	p.UpdatedAt = now
}

// AddXP increases XP subject to the daily cap and returns the amount
// actually granted. A cap of 0 or less means uncapped.
// The counters advance even when the grant clamps to zero, so callers
// can surface "limit reached".
func (p *LearnerProfile) AddXP(amount int, today DayKey, cap int, now time.Time) int {
	if amount <= 0 {
		return 0
	}

	allowed := amount
	if cap > 0 {
		if p.XPDay != today {
			p.XPDay = today
			p.XPGainedToday = 0
		}
		remaining := cap - p.XPGainedToday
		if remaining < 0 {
			remaining = 0
		}
		if allowed > remaining {
			allowed = remaining
		}
		p.XPGainedToday += allowed
	}

	p.XP += allowed
	p.UpdatedAt = now
	return allowed
}

// Clone returns a deep copy, so ranking reads never alias live state.
func (p *LearnerProfile) Clone() *LearnerProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.CompletedTasks = cloneSet(p.CompletedTasks)
	cp.Badges = cloneSet(p.Badges)
	cp.Stickers = cloneSet(p.Stickers)
	cp.FreezeUsedDays = make(map[DayKey]struct{}, len(p.FreezeUsedDays))
	for k := range p.FreezeUsedDays {
		cp.FreezeUsedDays[k] = struct{}{}
	}
	return &cp
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// ─── Level Curve ────────────────────────────────────────────────────────────

const (
	// MaxLevel caps the progression at 100.
	MaxLevel = 100
	// softcapLevel is where XP starts weighing less.
	softcapLevel = 60
	// softcapWeight is how much XP beyond the softcap counts.
	softcapWeight = 0.40
)

// XPForLevel returns the cumulative XP required to reach a level.
// Curve: 0.30·L² + 5·L, smooth to ~60, softcapped after.
func XPForLevel(level int) int {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return int(0.30*float64(level*level)) + 5*level
}

// LevelForXP converts raw XP to a level 0..100.
// XP above the level-60 threshold counts at 40% so the last stretch
// to 100 stays slow.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	effective := xp
	capXP := XPForLevel(softcapLevel)
	if xp > capXP {
		effective = capXP + int(float64(xp-capXP)*softcapWeight)
	}

	lo, hi := 0, MaxLevel
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if XPForLevel(mid) <= effective {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
