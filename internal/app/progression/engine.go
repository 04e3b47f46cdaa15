package progression

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/metrics"
)

// ─── Engine Facade ──────────────────────────────────────────────────────────
// The engine never initiates work on its own; every operation is a
// request/response call from the presentation layer. Per-learner state is
// serialized by a per-learner lock so a task completion and a reward claim
// arriving together cannot interleave.

// ProfileStore persists learner profiles and classes.
type ProfileStore interface {
	GetProfile(id string) (*domain.LearnerProfile, error)
	PutProfile(p *domain.LearnerProfile) error
	ListProfiles() ([]*domain.LearnerProfile, error)

	CreateClass(c domain.Class) error
	GetClass(code string) (*domain.Class, error)
}

// Options tunes the engine.
type Options struct {
	// DailyXPCap limits XP gained per learner per day. 0 disables the cap.
	DailyXPCap int
	// GlobalDaily serves the same challenge to every learner instead of a
	// per-learner pick.
	GlobalDaily bool
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{DailyXPCap: 120}
}

// Engine is the progression engine facade.
type Engine struct {
	store   ProfileStore
	ledger  *Ledger
	catalog *domain.Catalog
	clock   domain.Clock
	opts    Options

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New wires the engine.
func New(store ProfileStore, ledger *Ledger, catalog *domain.Catalog, clock domain.Clock, opts Options) *Engine {
	return &Engine{
		store:   store,
		ledger:  ledger,
		catalog: catalog,
		clock:   clock,
		opts:    opts,
		locks:   make(map[string]*sync.Mutex),
	}
}

// learnerLock returns the mutex serializing one learner's mutations.
func (e *Engine) learnerLock(learnerID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[learnerID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[learnerID] = l
	}
	return l
}

// ─── Learners ───────────────────────────────────────────────────────────────

// Register creates a new learner profile.
func (e *Engine) Register(name string) (*domain.LearnerProfile, error) {
	if name == "" {
		return nil, domain.ErrInvalidLearner
	}
	p := domain.NewLearnerProfile(uuid.NewString(), name, e.clock.Now())
	if err := e.store.PutProfile(p); err != nil {
		return nil, fmt.Errorf("register learner: %w", err)
	}
	return p, nil
}

// Profile returns a learner's profile.
func (e *Engine) Profile(learnerID string) (*domain.LearnerProfile, error) {
	return e.store.GetProfile(learnerID)
}

// ─── Task Completion ────────────────────────────────────────────────────────

// CompleteTask marks a task complete and pays its intrinsic reward.
// Idempotent: re-completing returns the unchanged profile. The reward is
// routed through the ledger under (learner, task, taskID), so even a
// lost write between claim and profile save can never double-pay.
func (e *Engine) CompleteTask(learnerID, taskID string) (*domain.LearnerProfile, error) {
	task, err := e.catalog.TaskByID(taskID)
	if err != nil {
		return nil, err
	}

	l := e.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	p, err := e.store.GetProfile(learnerID)
	if err != nil {
		return nil, err
	}

	if p.HasCompleted(taskID) {
		metrics.TaskReplays.Inc()
		return p, nil
	}

	now := e.clock.Now()
	today := e.clock.Today()
	p.MarkCompleted(taskID, now)

	res, err := e.ledger.Claim(learnerID, domain.RewardTask, taskID, now)
	if err != nil {
		return nil, err
	}
	if res.Granted {
		e.applyAmount(p, res.Amount, today)
	}

	update, err := AdvanceStreak(p, today, now)
	if err != nil {
		return nil, err
	}
	metrics.StreakEvents.WithLabelValues(string(update.Event)).Inc()
	metrics.TasksCompleted.WithLabelValues(task.Corridor).Inc()

	if err := e.store.PutProfile(p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// RecordActivity marks the learner active today and returns the streak.
func (e *Engine) RecordActivity(learnerID string) (StreakUpdate, error) {
	l := e.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	p, err := e.store.GetProfile(learnerID)
	if err != nil {
		return StreakUpdate{}, err
	}

	update, err := AdvanceStreak(p, e.clock.Today(), e.clock.Now())
	if err != nil {
		return StreakUpdate{}, err
	}
	metrics.StreakEvents.WithLabelValues(string(update.Event)).Inc()

	if update.Event != StreakSameDay {
		if err := e.store.PutProfile(p); err != nil {
			return StreakUpdate{}, fmt.Errorf("save profile: %w", err)
		}
	}
	return update, nil
}

// ─── Daily Challenge ────────────────────────────────────────────────────────

// TodaysChallenge returns today's challenge task. With a learner ID the
// pick is salted per learner; pass "" (or run in global mode) for the
// shared daily task.
func (e *Engine) TodaysChallenge(learnerID string) (domain.Task, error) {
	salt := learnerID
	if e.opts.GlobalDaily {
		salt = ""
	}
	task, err := SelectWeighted(string(e.clock.Today()), e.catalog.Tasks, salt)
	if err != nil {
		return domain.Task{}, err
	}
	metrics.ChallengesServed.Inc()
	return task, nil
}

// ─── Reward Claims ──────────────────────────────────────────────────────────

// ClaimReward claims a one-time reward for the learner. Exactly one call
// per (learner, kind, period) ever grants; all others replay the amount
// with Granted false. Safe to retry on transient store errors.
// Every kind carries an eligibility check before the ledger is touched, so
// a claim can never record a key the learner has not actually earned.
func (e *Engine) ClaimReward(learnerID string, kind domain.RewardKind, periodKey string) (domain.ClaimResult, error) {
	l := e.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	p, err := e.store.GetProfile(learnerID)
	if err != nil {
		return domain.ClaimResult{}, err
	}

	now := e.clock.Now()
	today := e.clock.Today()

	var milestone domain.StreakMilestone
	switch kind {
	case domain.RewardStreak:
		// A milestone lootbox is only claimable once the streak reaches it.
		milestone, err = ParseStreakPeriod(periodKey)
		if err != nil {
			return domain.ClaimResult{}, err
		}
		if p.Streak < milestone.Days {
			return domain.ClaimResult{}, fmt.Errorf("%w: streak %d of %d days",
				domain.ErrMilestoneNotReached, p.Streak, milestone.Days)
		}

	case domain.RewardTask:
		// The intrinsic reward belongs to completion, not to asking.
		if !p.HasCompleted(periodKey) {
			return domain.ClaimResult{}, fmt.Errorf("%w: task %s not completed",
				domain.ErrNotEligible, periodKey)
		}

	case domain.RewardSection:
		day, corridor, err := ParseSectionPeriod(periodKey)
		if err != nil {
			return domain.ClaimResult{}, err
		}
		if day != today {
			return domain.ClaimResult{}, fmt.Errorf("%w: section bonus for %s claimed on %s",
				domain.ErrNotEligible, day, today)
		}
		if err := e.corridorCleared(p, corridor); err != nil {
			return domain.ClaimResult{}, err
		}
	}

	res, err := e.ledger.Claim(learnerID, kind, periodKey, now)
	if err != nil {
		return domain.ClaimResult{}, err
	}
	if !res.Granted {
		metrics.ClaimsReplayed.WithLabelValues(string(kind)).Inc()
		if kind == domain.RewardStreak {
			res.Badge = milestone.Badge
		}
		return res, nil
	}
	metrics.ClaimsGranted.WithLabelValues(string(kind)).Inc()

	e.applyAmount(p, res.Amount, today)

	if kind == domain.RewardStreak {
		p.GrantBadge(milestone.Badge, now)
		p.GrantSticker("sticker_lootbox", now)
		res.Badge = milestone.Badge
		if milestoneFreezeDrop(learnerID, milestone.Days, today) {
			p.Freezes++
			res.Freeze = true
		}
	}

	if err := e.store.PutProfile(p); err != nil {
		return domain.ClaimResult{}, fmt.Errorf("save profile: %w", err)
	}
	return res, nil
}

// corridorCleared checks that every catalog task of the corridor is in the
// learner's completed set.
func (e *Engine) corridorCleared(p *domain.LearnerProfile, corridorID string) error {
	found := false
	for _, t := range e.catalog.Tasks {
		if t.Corridor != corridorID {
			continue
		}
		found = true
		if !p.HasCompleted(t.ID) {
			return fmt.Errorf("%w: task %s in corridor %s not completed",
				domain.ErrNotEligible, t.ID, corridorID)
		}
	}
	if !found {
		return domain.ErrCorridorNotFound
	}
	return nil
}

// ClaimStatus reports whether a reward was already claimed and what it
// pays, without claiming it.
func (e *Engine) ClaimStatus(learnerID string, kind domain.RewardKind, periodKey string) (bool, domain.RewardAmount, error) {
	claim, amount, err := e.ledger.Status(learnerID, kind, periodKey)
	if err != nil {
		return false, domain.RewardAmount{}, err
	}
	return claim != nil, amount, nil
}

// ClaimCount returns how many rewards of a kind the learner has collected.
func (e *Engine) ClaimCount(learnerID string, kind domain.RewardKind) (int, error) {
	return e.ledger.Count(learnerID, kind)
}

// applyAmount credits a reward to the profile under the daily XP cap.
func (e *Engine) applyAmount(p *domain.LearnerProfile, amount domain.RewardAmount, today domain.DayKey) {
	granted := p.AddXP(amount.XP, today, e.opts.DailyXPCap, e.clock.Now())
	if granted > 0 {
		metrics.XPGranted.Add(float64(granted))
	} else if amount.XP > 0 {
		metrics.XPCapHits.Inc()
	}
	p.AddGems(amount.Gems, e.clock.Now())
}

// ─── Unlock State ───────────────────────────────────────────────────────────

// UnlockState is the learner's derived unlock snapshot.
type UnlockState struct {
	Corridors []string `json:"corridors"`
	Supermoce []string `json:"supermoce"`
}

// UnlockedState recomputes the learner's unlocked corridors and supermoce
// from the completed-task set.
func (e *Engine) UnlockedState(learnerID string) (UnlockState, error) {
	p, err := e.store.GetProfile(learnerID)
	if err != nil {
		return UnlockState{}, err
	}
	return UnlockState{
		Corridors: UnlockedCorridors(p.CompletedTasks, e.catalog.Corridors),
		Supermoce: UnlockedSupermoce(p.CompletedTasks, e.catalog.Supermoce),
	}, nil
}

// ─── Rankings ───────────────────────────────────────────────────────────────

// Leaderboard returns the class leaderboard over a snapshot of all
// profiles. Benign staleness is fine; callers must not assume strict
// real-time accuracy.
func (e *Engine) Leaderboard() ([]domain.RankingEntry, error) {
	profiles, err := e.store.ListProfiles()
	if err != nil {
		return nil, err
	}
	return Rank(profiles), nil
}

// TopLearners returns the hall-of-fame rows.
func (e *Engine) TopLearners() ([]domain.HallOfFameRow, error) {
	profiles, err := e.store.ListProfiles()
	if err != nil {
		return nil, err
	}
	return HallOfFame(profiles), nil
}

// ─── Classes ────────────────────────────────────────────────────────────────

// classCodeAlphabet omits I, O, 0, 1 for readability.
const (
	classCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	classCodeLen      = 6
	classCodeRetries  = 20
)

// CreateClass mints a fresh class code for a teacher to hand out.
func (e *Engine) CreateClass(label, createdBy string) (domain.Class, error) {
	if label == "" {
		label = "Klasa"
	}
	for i := 0; i < classCodeRetries; i++ {
		code, err := randomClassCode()
		if err != nil {
			return domain.Class{}, err
		}
		c := domain.Class{Code: code, Label: label, CreatedBy: createdBy}
		err = e.store.CreateClass(c)
		if err == nil {
			return c, nil
		}
		if err != domain.ErrClassCodeTaken {
			return domain.Class{}, fmt.Errorf("create class: %w", err)
		}
	}
	return domain.Class{}, domain.ErrClassCodeTaken
}

// JoinClass puts the learner into a class for the group leaderboard.
func (e *Engine) JoinClass(learnerID, code string) (*domain.LearnerProfile, error) {
	if _, err := e.store.GetClass(code); err != nil {
		return nil, err
	}

	l := e.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	p, err := e.store.GetProfile(learnerID)
	if err != nil {
		return nil, err
	}
	p.ClassCode = code
	p.UpdatedAt = e.clock.Now()
	if err := e.store.PutProfile(p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

func randomClassCode() (string, error) {
	buf := make([]byte, classCodeLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(classCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("class code: %w", err)
		}
		buf[i] = classCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
