package progression

import (
	"sort"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Ranking Aggregator ─────────────────────────────────────────────────────
// Pure, read-only reductions over profile snapshots. Recomputed fresh on
// every call; profile counts are small enough that incremental maintenance
// would only buy staleness bugs.

// Rank reduces profiles into a class leaderboard: one entry per class
// code, total XP summed over members, sorted descending by total with
// ties broken by ascending class code. Learners without a class are
// not ranked.
func Rank(profiles []*domain.LearnerProfile) []domain.RankingEntry {
	totals := make(map[string]*domain.RankingEntry)
	for _, p := range profiles {
		if p == nil || p.ClassCode == "" {
			continue
		}
		e, ok := totals[p.ClassCode]
		if !ok {
			e = &domain.RankingEntry{GroupID: p.ClassCode}
			totals[p.ClassCode] = e
		}
		e.TotalXP += p.XP
		e.Learners++
	}

	out := make([]domain.RankingEntry, 0, len(totals))
	for _, e := range totals {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalXP != out[j].TotalXP {
			return out[i].TotalXP > out[j].TotalXP
		}
		return out[i].GroupID < out[j].GroupID
	})
	return out
}

// hallOfFameLimit caps the per-learner leaderboard.
const hallOfFameLimit = 50

// HallOfFame builds the per-learner leaderboard: level first, XP as
// tiebreaker, learner ID for full stability.
func HallOfFame(profiles []*domain.LearnerProfile) []domain.HallOfFameRow {
	rows := make([]domain.HallOfFameRow, 0, len(profiles))
	for _, p := range profiles {
		if p == nil {
			continue
		}
		rows = append(rows, domain.HallOfFameRow{
			LearnerID: p.ID,
			Name:      p.Name,
			Level:     domain.LevelForXP(p.XP),
			XP:        p.XP,
			Streak:    p.Streak,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Level != rows[j].Level {
			return rows[i].Level > rows[j].Level
		}
		if rows[i].XP != rows[j].XP {
			return rows[i].XP > rows[j].XP
		}
		return rows[i].LearnerID < rows[j].LearnerID
	})
	if len(rows) > hallOfFameLimit {
		rows = rows[:hallOfFameLimit]
	}
	return rows
}
