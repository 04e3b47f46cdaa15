package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Learner errors
	ErrLearnerNotFound = errors.New("learner not found")
	ErrLearnerExists   = errors.New("learner already registered")
	ErrInvalidLearner  = errors.New("learner id must not be empty")

	// Catalog errors
	ErrTaskNotFound     = errors.New("task not found in catalog")
	ErrCorridorNotFound = errors.New("corridor not found in catalog")
	ErrSupermocNotFound = errors.New("supermoc not found in catalog")

	// Selector errors
	ErrEmptyPool = errors.New("candidate pool is empty")

	// Reward ledger errors
	ErrUnknownReward       = errors.New("reward kind has no definition")
	ErrInvalidPeriodKey    = errors.New("period key is malformed")
	ErrNegativeAmount      = errors.New("reward amount must not be negative")
	ErrMilestoneNotReached = errors.New("streak milestone not reached yet")
	ErrNotEligible         = errors.New("reward requirements not met")

	// Class errors
	ErrClassNotFound  = errors.New("class code not found")
	ErrClassCodeTaken = errors.New("class code already in use")
)
