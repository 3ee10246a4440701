package level

import "time"

// Result is the outcome of processing an answer: the new level and the
// new last-tested date to persist.
type Result struct {
	Level      Level
	LastTested time.Time
}

// civil truncates a timestamp to its calendar date in UTC.
func civil(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysSince returns whole calendar days from lastTested to today, or an
// InvalidDateError when lastTested lies in the future.
func daysSince(lastTested, today time.Time) (int, error) {
	from, to := civil(lastTested), civil(today)
	if from.After(to) {
		return 0, &InvalidDateError{LastTested: lastTested, Today: today}
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// IsTestable reports whether a term at the given level may be tested
// today. Never-tested terms are always testable, as is the lowest level,
// which has no minimum wait. The MinDays boundary is inclusive.
func (t *Table) IsTestable(name string, lastTested *time.Time, today time.Time) (bool, error) {
	lvl, err := t.Lookup(name)
	if err != nil {
		return false, err
	}
	if lastTested == nil {
		return true, nil
	}
	elapsed, err := daysSince(*lastTested, today)
	if err != nil {
		return false, err
	}
	return elapsed >= lvl.MinDays, nil
}

// IsExpired reports whether a term has outlived its level's retention
// window. Expiry is strictly greater-than: a term tested exactly MaxDays
// ago is not yet expired. The lowest level and levels without a window
// never expire.
func (t *Table) IsExpired(name string, lastTested *time.Time, today time.Time) (bool, error) {
	lvl, err := t.Lookup(name)
	if err != nil {
		return false, err
	}
	if lastTested == nil || lvl.Rank == 0 || !lvl.Expires() {
		return false, nil
	}
	elapsed, err := daysSince(*lastTested, today)
	if err != nil {
		return false, err
	}
	return elapsed > *lvl.MaxDays, nil
}

// EffectiveLevel returns the level a term counts as today: the stored
// level, or the lowest level if the term has expired. Stored state is not
// mutated; the demotion becomes permanent only when the next answer is
// recorded.
func (t *Table) EffectiveLevel(name string, lastTested *time.Time, today time.Time) (Level, error) {
	lvl, err := t.Lookup(name)
	if err != nil {
		return Level{}, err
	}
	expired, err := t.IsExpired(name, lastTested, today)
	if err != nil {
		return Level{}, err
	}
	if expired {
		return t.Lowest(), nil
	}
	return lvl, nil
}

// ProcessAnswer applies a test answer and returns the state to persist.
// Expired terms fall back to the lowest level regardless of the answer.
// A wrong answer always resets to the lowest level. A correct answer
// advances only when the level's dwell time has elapsed; answering
// correctly too soon keeps the level but still refreshes the date. The
// last-tested date is set to today on every path.
func (t *Table) ProcessAnswer(name string, lastTested *time.Time, today time.Time, correct bool) (Result, error) {
	lvl, err := t.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	now := civil(today)

	expired, err := t.IsExpired(name, lastTested, today)
	if err != nil {
		return Result{}, err
	}
	if expired || !correct {
		return Result{Level: t.Lowest(), LastTested: now}, nil
	}

	testable, err := t.IsTestable(name, lastTested, today)
	if err != nil {
		return Result{}, err
	}
	if !testable {
		return Result{Level: lvl, LastTested: now}, nil
	}

	next, err := t.Next(name)
	if err != nil {
		return Result{}, err
	}
	return Result{Level: next, LastTested: now}, nil
}
