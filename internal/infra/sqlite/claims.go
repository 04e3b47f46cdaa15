package sqlite

import (
	"database/sql"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Reward Claims ──────────────────────────────────────────────────────────

// RecordClaim inserts the claim if absent. Returns true only for the call
// that recorded it — the INSERT OR IGNORE against the composite primary
// key is the atomic check-and-record; two concurrent claims for the same
// key resolve to exactly one insert.
func (d *DB) RecordClaim(claim domain.RewardClaim) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO reward_claims (learner_id, kind, period_key, granted_at)
		 VALUES (?, ?, ?, ?)`,
		claim.LearnerID, string(claim.Kind), claim.PeriodKey, claim.GrantedAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly granted
}

// GetClaim returns an existing claim record, or nil if never granted.
func (d *DB) GetClaim(learnerID string, kind domain.RewardKind, periodKey string) (*domain.RewardClaim, error) {
	var grantedAt int64
	claim := domain.RewardClaim{LearnerID: learnerID, Kind: kind, PeriodKey: periodKey}
	err := d.db.QueryRow(
		`SELECT granted_at FROM reward_claims WHERE learner_id = ? AND kind = ? AND period_key = ?`,
		learnerID, string(kind), periodKey,
	).Scan(&grantedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	claim.GrantedAt = time.Unix(grantedAt, 0)
	return &claim, nil
}

// ClaimCount returns how many claims a learner holds for a kind.
func (d *DB) ClaimCount(learnerID string, kind domain.RewardKind) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM reward_claims WHERE learner_id = ? AND kind = ?`,
		learnerID, string(kind),
	).Scan(&count)
	return count, err
}
