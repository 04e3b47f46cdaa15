package progression

import (
	"sort"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Unlock Evaluator ───────────────────────────────────────────────────────
// Unlock state is recomputed from the completed-task set on every call.
// There is deliberately no cached "unlocked" flag anywhere: a flag can go
// stale, a recomputation cannot. Growth of the completed set can only grow
// the unlocked set (subset test is monotone).

// prereqsMet reports whether every prerequisite is in the completed set.
// A prerequisite naming an unknown task can never be satisfied, so the
// corridor simply stays locked — fail closed, not an error.
func prereqsMet(prereqs []string, completed map[string]struct{}) bool {
	for _, id := range prereqs {
		if _, ok := completed[id]; !ok {
			return false
		}
	}
	return true
}

// UnlockedCorridors returns the IDs of corridors whose prerequisite set is
// a subset of completed, sorted for stable output. Corridors with no
// prerequisites are always included.
func UnlockedCorridors(completed map[string]struct{}, corridors []domain.Corridor) []string {
	var out []string
	for _, c := range corridors {
		if prereqsMet(c.Prerequisites, completed) {
			out = append(out, c.ID)
		}
	}
	sort.Strings(out)
	return out
}

// UnlockedSupermoce returns the IDs of unlocked supermoce. Same rule shape
// as corridors.
func UnlockedSupermoce(completed map[string]struct{}, supermoce []domain.Supermoc) []string {
	var out []string
	for _, s := range supermoce {
		if prereqsMet(s.Prerequisites, completed) {
			out = append(out, s.ID)
		}
	}
	sort.Strings(out)
	return out
}
