// Package progression implements the Kopalnia Wiedzy progression engine:
// deterministic daily selection, corridor/supermoc unlocks, streaks,
// the reward ledger and class rankings.
package progression

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Deterministic Selector ─────────────────────────────────────────────────
// The pick for a (period, pool, salt) triple must survive process restarts
// and repeated calls, so the only entropy is the hash of the inputs.
// Candidates are sorted by ID first: permuting the input order must not
// change the result.

// seedFor hashes periodKey and salt into a stable 64-bit seed.
func seedFor(periodKey, salt string) uint64 {
	h := sha256.Sum256([]byte(periodKey + "::" + salt))
	return binary.BigEndian.Uint64(h[:8])
}

// sortedByID returns a copy of candidates ordered by task ID.
func sortedByID(candidates []domain.Task) []domain.Task {
	out := make([]domain.Task, len(candidates))
	copy(out, candidates)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Select picks one task for the period. Same inputs, same task — always.
// Salt carries the learner ID for per-learner picks; empty salt gives the
// global daily mode.
func Select(periodKey string, candidates []domain.Task, salt string) (domain.Task, error) {
	if len(candidates) == 0 {
		return domain.Task{}, domain.ErrEmptyPool
	}
	pool := sortedByID(candidates)
	idx := seedFor(periodKey, salt) % uint64(len(pool))
	return pool[idx], nil
}

// SelectWeighted picks one task with probability proportional to its
// weight, still fully deterministic: the seed indexes into the cumulative
// weight distribution.
func SelectWeighted(periodKey string, candidates []domain.Task, salt string) (domain.Task, error) {
	if len(candidates) == 0 {
		return domain.Task{}, domain.ErrEmptyPool
	}
	pool := sortedByID(candidates)

	total := 0
	for _, t := range pool {
		total += t.EffectiveWeight()
	}

	target := int(seedFor(periodKey, salt) % uint64(total))
	for _, t := range pool {
		target -= t.EffectiveWeight()
		if target < 0 {
			return t, nil
		}
	}
	// Unreachable: cumulative weights cover [0, total).
	return pool[len(pool)-1], nil
}

// rollPercent derives a stable 0..99 roll from a seed text. Used for the
// milestone freeze drop so reruns cannot farm it.
func rollPercent(seedText string) int {
	h := sha256.Sum256([]byte(seedText))
	return int(binary.BigEndian.Uint64(h[:8]) % 100)
}
