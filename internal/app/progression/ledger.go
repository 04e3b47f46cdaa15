package progression

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Reward Ledger ──────────────────────────────────────────────────────────
// At-most-once granting for every (learner, kind, period) key. The store's
// RecordClaim must be atomic with respect to concurrent callers — it is the
// single concurrency-critical step in the whole engine.

// ClaimStore persists reward claims.
type ClaimStore interface {
	// RecordClaim inserts the claim if absent. Returns true only for the
	// call that actually recorded it. Must be atomic per key.
	RecordClaim(claim domain.RewardClaim) (bool, error)
	// GetClaim returns an existing claim record, or nil if never granted.
	GetClaim(learnerID string, kind domain.RewardKind, periodKey string) (*domain.RewardClaim, error)
	// ClaimCount returns how many claims a learner holds for a kind.
	ClaimCount(learnerID string, kind domain.RewardKind) (int, error)
}

// Ledger enforces one grant per reward key and resolves amounts from the
// static definitions and the task catalog.
type Ledger struct {
	store   ClaimStore
	catalog *domain.Catalog
}

// NewLedger creates a reward ledger over the given claim store.
func NewLedger(store ClaimStore, catalog *domain.Catalog) *Ledger {
	return &Ledger{store: store, catalog: catalog}
}

// Amount resolves what a (kind, period) claim pays, without claiming.
// Fails with ErrUnknownReward for undefined kinds and ErrInvalidPeriodKey
// for malformed periods.
func (l *Ledger) Amount(kind domain.RewardKind, periodKey string) (domain.RewardAmount, error) {
	switch kind {
	case domain.RewardDaily:
		if !domain.DayKey(periodKey).IsValid() {
			return domain.RewardAmount{}, domain.ErrInvalidPeriodKey
		}
		return domain.DefaultRewardAmounts[domain.RewardDaily], nil

	case domain.RewardTask:
		task, err := l.catalog.TaskByID(periodKey)
		if err != nil {
			return domain.RewardAmount{}, err
		}
		return domain.RewardAmount{XP: task.XP, Gems: task.Gems}, nil

	case domain.RewardStreak:
		milestone, err := ParseStreakPeriod(periodKey)
		if err != nil {
			return domain.RewardAmount{}, err
		}
		return domain.RewardAmount{XP: milestone.XP}, nil

	case domain.RewardSection:
		if _, _, err := ParseSectionPeriod(periodKey); err != nil {
			return domain.RewardAmount{}, err
		}
		return domain.DefaultRewardAmounts[domain.RewardSection], nil

	default:
		return domain.RewardAmount{}, fmt.Errorf("%w: %q", domain.ErrUnknownReward, kind)
	}
}

// Claim atomically records the claim and returns whether this call was the
// one that granted it. Replays return the same amount with Granted false.
func (l *Ledger) Claim(learnerID string, kind domain.RewardKind, periodKey string, now time.Time) (domain.ClaimResult, error) {
	amount, err := l.Amount(kind, periodKey)
	if err != nil {
		return domain.ClaimResult{}, err
	}

	granted, err := l.store.RecordClaim(domain.RewardClaim{
		LearnerID: learnerID,
		Kind:      kind,
		PeriodKey: periodKey,
		GrantedAt: now,
	})
	if err != nil {
		return domain.ClaimResult{}, fmt.Errorf("record claim: %w", err)
	}

	return domain.ClaimResult{Granted: granted, Amount: amount}, nil
}

// Status returns the existing claim record (nil if never granted) together
// with the amount the key pays. Read-only; never records.
func (l *Ledger) Status(learnerID string, kind domain.RewardKind, periodKey string) (*domain.RewardClaim, domain.RewardAmount, error) {
	amount, err := l.Amount(kind, periodKey)
	if err != nil {
		return nil, domain.RewardAmount{}, err
	}
	claim, err := l.store.GetClaim(learnerID, kind, periodKey)
	if err != nil {
		return nil, domain.RewardAmount{}, fmt.Errorf("load claim: %w", err)
	}
	return claim, amount, nil
}

// Count returns how many claims the learner holds for a kind.
func (l *Ledger) Count(learnerID string, kind domain.RewardKind) (int, error) {
	return l.store.ClaimCount(learnerID, kind)
}

// ─── Period Keys ────────────────────────────────────────────────────────────

// StreakPeriodKey builds the period key for a milestone ("streak-7").
func StreakPeriodKey(days int) string {
	return fmt.Sprintf("streak-%d", days)
}

// ParseStreakPeriod resolves a "streak-N" period to its milestone.
func ParseStreakPeriod(periodKey string) (domain.StreakMilestone, error) {
	rest, ok := strings.CutPrefix(periodKey, "streak-")
	if !ok {
		return domain.StreakMilestone{}, domain.ErrInvalidPeriodKey
	}
	days, err := strconv.Atoi(rest)
	if err != nil {
		return domain.StreakMilestone{}, domain.ErrInvalidPeriodKey
	}
	milestone, ok := domain.MilestoneForStreak(days)
	if !ok {
		return domain.StreakMilestone{}, fmt.Errorf("%w: no milestone at %d days", domain.ErrUnknownReward, days)
	}
	return milestone, nil
}

// SectionPeriodKey builds the period key for a corridor's daily bonus.
func SectionPeriodKey(day domain.DayKey, corridorID string) string {
	return fmt.Sprintf("%s::%s", day, corridorID)
}

// ParseSectionPeriod splits a "day::corridor" period key.
func ParseSectionPeriod(periodKey string) (domain.DayKey, string, error) {
	day, corridor, ok := strings.Cut(periodKey, "::")
	if !ok || corridor == "" || !domain.DayKey(day).IsValid() {
		return "", "", domain.ErrInvalidPeriodKey
	}
	return domain.DayKey(day), corridor, nil
}
