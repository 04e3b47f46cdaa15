// Package metrics provides Prometheus metrics for the progression engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tasks ──────────────────────────────────────────────────────────────────

// TasksCompleted counts first-time task completions by corridor.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "tasks_completed_total",
	Help:      "Total first-time task completions.",
}, []string{"corridor"})

// TaskReplays counts idempotent re-completions of already-done tasks.
var TaskReplays = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "task_replays_total",
	Help:      "Completions of tasks the learner had already finished.",
})

// ─── Rewards ────────────────────────────────────────────────────────────────

// ClaimsGranted counts reward claims that actually granted, by kind.
var ClaimsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "claims_granted_total",
	Help:      "Reward claims that granted (first claim for their key).",
}, []string{"kind"})

// ClaimsReplayed counts idempotent claim replays, by kind.
var ClaimsReplayed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "claims_replayed_total",
	Help:      "Reward claims answered from an existing grant record.",
}, []string{"kind"})

// XPGranted counts XP actually applied to profiles (after the daily cap).
var XPGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "xp_granted_total",
	Help:      "XP applied to learner profiles.",
})

// XPCapHits counts grants clamped to zero by the daily cap.
var XPCapHits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "xp_cap_hits_total",
	Help:      "XP grants fully clamped by the daily cap.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakEvents counts streak transitions by event type.
var StreakEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "streak_events_total",
	Help:      "Streak transitions (first, continue, freeze, reset, same_day).",
}, []string{"event"})

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengesServed counts daily-challenge lookups.
var ChallengesServed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kopalnia",
	Name:      "challenges_served_total",
	Help:      "Daily challenge selections served.",
})
