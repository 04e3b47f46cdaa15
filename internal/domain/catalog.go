package domain

// ─── Catalog Types ──────────────────────────────────────────────────────────
// The static content catalog: tasks, corridors, supermoce. Authored outside
// the engine and loaded read-only at startup.

// Task is one learning task.
type Task struct {
	ID       string `json:"id"`
	Corridor string `json:"corridor"`
	Question string `json:"q,omitempty"`
	XP       int    `json:"xp"`
	Gems     int    `json:"gems,omitempty"`
	// Weight biases daily-challenge selection. 0 means uniform (1).
	Weight int `json:"weight,omitempty"`
}

// EffectiveWeight returns the selection weight, defaulting to uniform.
func (t Task) EffectiveWeight() int {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

// Corridor is a content area of the mine, gated by prerequisite tasks.
// An empty prerequisite set means unlocked from the start.
type Corridor struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Prerequisites []string `json:"prerequisites"`
}

// Supermoc is a named skill badge unlocked by a set of tasks and quizzes.
// Same unlock shape as a corridor.
type Supermoc struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Emoji         string   `json:"emoji,omitempty"`
	Prerequisites []string `json:"prerequisites"`
}

// Catalog bundles the static content the engine evaluates against.
type Catalog struct {
	Tasks     []Task     `json:"tasks"`
	Corridors []Corridor `json:"corridors"`
	Supermoce []Supermoc `json:"supermoce"`

	byID map[string]Task
}

// Index builds the task lookup. Call once after loading.
func (c *Catalog) Index() {
	c.byID = make(map[string]Task, len(c.Tasks))
	for _, t := range c.Tasks {
		c.byID[t.ID] = t
	}
}

// TaskByID looks up a task. Returns ErrTaskNotFound for unknown IDs.
func (c *Catalog) TaskByID(id string) (Task, error) {
	if c.byID == nil {
		c.Index()
	}
	t, ok := c.byID[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

// ─── Classes ────────────────────────────────────────────────────────────────

// Class is a teacher-created group joined via a short code.
type Class struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	CreatedBy string `json:"created_by"`
}

// ─── Ranking ────────────────────────────────────────────────────────────────

// RankingEntry is one row of the class leaderboard: total XP across
// the group's members. Derived, never persisted.
type RankingEntry struct {
	GroupID  string `json:"group_id"`
	TotalXP  int    `json:"total_xp"`
	Learners int    `json:"learners"`
}

// HallOfFameRow is one row of the per-learner hall of fame,
// sorted by level, then XP.
type HallOfFameRow struct {
	LearnerID string `json:"learner_id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	XP        int    `json:"xp"`
	Streak    int    `json:"streak"`
}
