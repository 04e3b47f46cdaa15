package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Learner Profiles ───────────────────────────────────────────────────────

// PutProfile upserts the learner row and appends any new set members.
// The set tables are append-only, matching the domain invariant that
// completed tasks, badges and stickers never shrink.
func (d *DB) PutProfile(p *domain.LearnerProfile) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO learners (id, name, class_code, xp, gems, last_active_day, streak, freezes, xp_day, xp_gained_today, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			class_code=excluded.class_code,
			xp=excluded.xp,
			gems=excluded.gems,
			last_active_day=excluded.last_active_day,
			streak=excluded.streak,
			freezes=excluded.freezes,
			xp_day=excluded.xp_day,
			xp_gained_today=excluded.xp_gained_today,
			updated_at=excluded.updated_at`,
		p.ID, p.Name, p.ClassCode, p.XP, p.Gems, string(p.LastActiveDay),
		p.Streak, p.Freezes, string(p.XPDay), p.XPGainedToday,
		p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert learner: %w", err)
	}

	appendSet := func(table, column string, members map[string]struct{}, withTime bool) error {
		for m := range members {
			var err error
			if withTime {
				_, err = tx.Exec(
					`INSERT OR IGNORE INTO `+table+` (learner_id, `+column+`, completed_at) VALUES (?, ?, ?)`,
					p.ID, m, p.UpdatedAt.Unix(),
				)
			} else {
				_, err = tx.Exec(
					`INSERT OR IGNORE INTO `+table+` (learner_id, `+column+`) VALUES (?, ?)`,
					p.ID, m,
				)
			}
			if err != nil {
				return fmt.Errorf("append %s: %w", table, err)
			}
		}
		return nil
	}

	if err := appendSet("completed_tasks", "task_id", p.CompletedTasks, true); err != nil {
		return err
	}
	if err := appendSet("learner_badges", "badge", p.Badges, false); err != nil {
		return err
	}
	if err := appendSet("learner_stickers", "sticker", p.Stickers, false); err != nil {
		return err
	}
	for day := range p.FreezeUsedDays {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO freeze_days (learner_id, day) VALUES (?, ?)`,
			p.ID, string(day),
		); err != nil {
			return fmt.Errorf("append freeze_days: %w", err)
		}
	}

	return tx.Commit()
}

// GetProfile loads a learner with all set memberships.
func (d *DB) GetProfile(id string) (*domain.LearnerProfile, error) {
	row := d.db.QueryRow(
		`SELECT id, name, class_code, xp, gems, last_active_day, streak, freezes, xp_day, xp_gained_today, created_at, updated_at
		 FROM learners WHERE id = ?`, id,
	)
	p, err := scanLearner(row)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrLearnerNotFound
	}
	if err := d.loadSets(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProfiles returns every learner with sets loaded, ordered by XP
// descending.
func (d *DB) ListProfiles() ([]*domain.LearnerProfile, error) {
	rows, err := d.db.Query(
		`SELECT id, name, class_code, xp, gems, last_active_day, streak, freezes, xp_day, xp_gained_today, created_at, updated_at
		 FROM learners ORDER BY xp DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.LearnerProfile
	for rows.Next() {
		p, err := scanLearner(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if err := d.loadSets(p); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// loadSets fills the profile's append-only sets from their tables.
func (d *DB) loadSets(p *domain.LearnerProfile) error {
	var err error
	p.CompletedTasks, err = d.readSet(`SELECT task_id FROM completed_tasks WHERE learner_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("load completed tasks: %w", err)
	}
	p.Badges, err = d.readSet(`SELECT badge FROM learner_badges WHERE learner_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("load badges: %w", err)
	}
	p.Stickers, err = d.readSet(`SELECT sticker FROM learner_stickers WHERE learner_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("load stickers: %w", err)
	}

	days, err := d.readSet(`SELECT day FROM freeze_days WHERE learner_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("load freeze days: %w", err)
	}
	p.FreezeUsedDays = make(map[domain.DayKey]struct{}, len(days))
	for day := range days {
		p.FreezeUsedDays[domain.DayKey(day)] = struct{}{}
	}
	return nil
}

func (d *DB) readSet(query, learnerID string) (map[string]struct{}, error) {
	rows, err := d.db.Query(query, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, err
		}
		out[member] = struct{}{}
	}
	return out, rows.Err()
}

func scanLearner(s scanner) (*domain.LearnerProfile, error) {
	var p domain.LearnerProfile
	var lastActive, xpDay string
	var createdAt, updatedAt int64

	err := s.Scan(&p.ID, &p.Name, &p.ClassCode, &p.XP, &p.Gems, &lastActive,
		&p.Streak, &p.Freezes, &xpDay, &p.XPGainedToday, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	p.LastActiveDay = domain.DayKey(lastActive)
	p.XPDay = domain.DayKey(xpDay)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// ─── Classes ────────────────────────────────────────────────────────────────

// CreateClass inserts a class. Fails with ErrClassCodeTaken on collision.
func (d *DB) CreateClass(c domain.Class) error {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO classes (code, label, created_by, created_at) VALUES (?, ?, ?, ?)`,
		c.Code, c.Label, c.CreatedBy, time.Now().Unix(),
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrClassCodeTaken
	}
	return nil
}

// GetClass looks up a class by code.
func (d *DB) GetClass(code string) (*domain.Class, error) {
	var c domain.Class
	err := d.db.QueryRow(
		`SELECT code, label, created_by FROM classes WHERE code = ?`, code,
	).Scan(&c.Code, &c.Label, &c.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, domain.ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
