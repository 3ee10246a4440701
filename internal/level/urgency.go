package level

import (
	"fmt"
	"time"
)

// Expiry-distance sentinels. They push terms that have no real deadline
// to the back of the queue while keeping the ordering total: terms on a
// level without a retention window sit behind anything with a deadline,
// floor-level terms behind those, and terms still inside their dwell time
// strictly last.
const (
	daysNoExpiry = 500
	daysFloor    = 999_999
	daysWaiting  = 1_000_000
)

// Urgency is a comparable test priority. Smaller sorts first. The primary
// key is days remaining until the term expires; on a tie the lower rank
// (less mastered term) wins.
type Urgency struct {
	DaysUntilExpiry int `json:"days_until_expiry"`
	Rank            int `json:"rank"`
}

// Compare returns -1, 0 or 1 as u is more urgent than, equal to, or less
// urgent than other.
func (u Urgency) Compare(other Urgency) int {
	switch {
	case u.DaysUntilExpiry < other.DaysUntilExpiry:
		return -1
	case u.DaysUntilExpiry > other.DaysUntilExpiry:
		return 1
	case u.Rank < other.Rank:
		return -1
	case u.Rank > other.Rank:
		return 1
	default:
		return 0
	}
}

// Less reports whether u is strictly more urgent than other.
func (u Urgency) Less(other Urgency) bool {
	return u.Compare(other) < 0
}

// Deferred reports whether the urgency marks a term still inside its
// dwell time, which test sessions skip entirely.
func (u Urgency) Deferred() bool {
	return u.DaysUntilExpiry >= daysWaiting
}

func (u Urgency) String() string {
	return fmt.Sprintf("Urgency(expiry_in=%d, rank=%d)", u.DaysUntilExpiry, u.Rank)
}

// Urgency computes the test priority for a term. The rank comes from the
// effective (expiry-adjusted) level; the expiry distance from the stored
// level's window, clamped at zero so expired terms land at the most
// urgent extreme. Floor-level terms and terms still inside their dwell
// time get sentinel distances that sort them last.
func (t *Table) Urgency(name string, lastTested *time.Time, today time.Time) (Urgency, error) {
	lvl, err := t.Lookup(name)
	if err != nil {
		return Urgency{}, err
	}
	if lvl.Rank == 0 {
		return Urgency{DaysUntilExpiry: daysFloor, Rank: 0}, nil
	}
	if lastTested == nil {
		// A never-tested term should not carry an advanced level; treat
		// it as due now rather than guessing an age.
		return Urgency{DaysUntilExpiry: 0, Rank: lvl.Rank}, nil
	}
	elapsed, err := daysSince(*lastTested, today)
	if err != nil {
		return Urgency{}, err
	}
	if elapsed < lvl.MinDays {
		return Urgency{DaysUntilExpiry: daysWaiting, Rank: lvl.Rank}, nil
	}
	if !lvl.Expires() {
		return Urgency{DaysUntilExpiry: daysNoExpiry, Rank: lvl.Rank}, nil
	}
	remaining := *lvl.MaxDays - elapsed
	if remaining < 0 {
		remaining = 0
	}
	eff, err := t.EffectiveLevel(name, lastTested, today)
	if err != nil {
		return Urgency{}, err
	}
	return Urgency{DaysUntilExpiry: remaining, Rank: eff.Rank}, nil
}
