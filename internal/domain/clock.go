package domain

import (
	"regexp"
	"time"
)

// ─── Clock ──────────────────────────────────────────────────────────────────

// ReferenceTimezone is the single calendar the whole mine runs on.
// Every learner shares the same day boundary, so daily locks and streaks
// can never skew between timezones.
const ReferenceTimezone = "Europe/Warsaw"

// DayKeyFormat is the layout of a calendar day key.
const DayKeyFormat = "2006-01-02"

// DayKey identifies one calendar day in the reference timezone ("2026-08-31").
type DayKey string

var dayKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValid reports whether the key is a well-formed calendar day.
func (d DayKey) IsValid() bool {
	if !dayKeyRe.MatchString(string(d)) {
		return false
	}
	_, err := time.Parse(DayKeyFormat, string(d))
	return err == nil
}

// Time parses the day key at midnight UTC. Only valid keys parse.
func (d DayKey) Time() (time.Time, error) {
	return time.Parse(DayKeyFormat, string(d))
}

// DaysSince returns the calendar distance from earlier to d.
// Positive when d is later; both keys must be valid.
func (d DayKey) DaysSince(earlier DayKey) (int, error) {
	a, err := earlier.Time()
	if err != nil {
		return 0, ErrInvalidPeriodKey
	}
	b, err := d.Time()
	if err != nil {
		return 0, ErrInvalidPeriodKey
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// AddDays returns the day key n days after d.
func (d DayKey) AddDays(n int) DayKey {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DayKey(t.AddDate(0, 0, n).Format(DayKeyFormat))
}

// DayKeyOf converts an instant to its calendar day in the given location.
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	return DayKey(t.In(loc).Format(DayKeyFormat))
}

// Clock supplies the current instant and the current reference day.
// Injected everywhere instead of a process-wide "today", so tests can
// replay arbitrary day sequences.
type Clock interface {
	Now() time.Time
	Today() DayKey
}

// referenceClock is the production clock pinned to the reference timezone.
type referenceClock struct {
	loc *time.Location
}

// NewReferenceClock returns the wall clock in the reference timezone.
// Falls back to UTC if the tz database is unavailable.
func NewReferenceClock() Clock {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &referenceClock{loc: loc}
}

func (c *referenceClock) Now() time.Time { return time.Now().In(c.loc) }

func (c *referenceClock) Today() DayKey { return DayKeyOf(time.Now(), c.loc) }
